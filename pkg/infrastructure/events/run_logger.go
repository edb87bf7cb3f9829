package events

import (
	"github.com/vsinha/takeoff/pkg/infrastructure/logger"
)

// RunLogger writes every recorded estimate run to the log. Failed runs are
// logged at warn level.
type RunLogger struct {
	log *logger.Logger
}

func NewRunLogger(log *logger.Logger) *RunLogger {
	if log == nil {
		log = logger.NewNop()
	}
	return &RunLogger{log: log}
}

// EventTypes lists the events a RunLogger subscribes to
func (h *RunLogger) EventTypes() []string {
	return []string{EstimateCompletedEvent, EstimateFailedEvent}
}

func (h *RunLogger) CanHandle(eventType string) bool {
	return eventType == EstimateCompletedEvent || eventType == EstimateFailedEvent
}

func (h *RunLogger) Handle(event Event) error {
	switch data := event.Data().(type) {
	case EstimateCompleted:
		h.log.Info("estimate completed",
			"proposal", event.StreamID(),
			"version", event.Version(),
			"run_id", data.RunID,
			"proposal_total", data.ProposalTotal.StringFixed(2),
			"lines", data.LineCount,
			"warnings", len(data.Warnings),
		)
	case EstimateFailed:
		h.log.Warn("estimate failed",
			"proposal", event.StreamID(),
			"version", event.Version(),
			"error", data.Error,
		)
	}
	return nil
}
