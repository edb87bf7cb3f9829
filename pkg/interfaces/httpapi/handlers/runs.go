package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/takeoff/pkg/infrastructure/events"
	"github.com/vsinha/takeoff/pkg/interfaces/httpapi/response"
)

// RunResponse is one recorded estimate run
type RunResponse struct {
	ProposalID    string    `json:"proposal_id"`
	Version       int       `json:"version"`
	Type          string    `json:"type"`
	RunID         string    `json:"run_id,omitempty"`
	ProposalTotal *float64  `json:"proposal_total,omitempty"`
	LineCount     int       `json:"line_count,omitempty"`
	Warnings      []string  `json:"warnings,omitempty"`
	Error         string    `json:"error,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// RunHandler serves the estimate run history of a proposal
type RunHandler struct {
	store events.EventStore
}

func NewRunHandler(store events.EventStore) *RunHandler {
	return &RunHandler{store: store}
}

func (h *RunHandler) ListRuns(c *gin.Context) {
	proposalID := c.Param("proposal_id")
	stream, err := h.store.ReadEvents(proposalID, 1)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, err)
		return
	}

	response.RespondOK(c, gin.H{"proposal_id": proposalID, "runs": toRunResponses(stream)})
}

// ListAllRuns returns runs of every proposal in record order. The optional
// "from" query parameter is the 0-based position to resume from; "next" in the
// response is the position to pass on the following call.
func (h *RunHandler) ListAllRuns(c *gin.Context) {
	from := 0
	if raw := c.Query("from"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondError(c, http.StatusBadRequest, response.CodeInvalidInput,
				fmt.Errorf("from must be a non-negative integer, got %q", raw))
			return
		}
		from = n
	}

	all, err := h.store.ReadAllEvents(from)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, err)
		return
	}
	response.RespondOK(c, gin.H{"runs": toRunResponses(all), "next": from + len(all)})
}

func toRunResponses(stream []events.Event) []RunResponse {
	runs := make([]RunResponse, 0, len(stream))
	for _, e := range stream {
		run := RunResponse{ProposalID: e.StreamID(), Version: e.Version(), Type: e.Type(), RecordedAt: e.Timestamp()}
		switch data := e.Data().(type) {
		case events.EstimateCompleted:
			total := data.ProposalTotal.InexactFloat64()
			run.RunID = data.RunID
			run.ProposalTotal = &total
			run.LineCount = data.LineCount
			run.Warnings = data.Warnings
		case events.EstimateFailed:
			run.Error = data.Error
		}
		runs = append(runs, run)
	}
	return runs
}
