package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/entities"
)

const (
	EstimateCompletedEvent = "estimate.completed"
	EstimateFailedEvent    = "estimate.failed"
)

type EstimateCompleted struct {
	RunID         string              `json:"run_id"`
	ProposalID    entities.ProposalID `json:"proposal_id"`
	ProposalTotal decimal.Decimal     `json:"proposal_total"`
	LineCount     int                 `json:"line_count"`
	Warnings      []string            `json:"warnings,omitempty"`
}

type EstimateFailed struct {
	ProposalID entities.ProposalID `json:"proposal_id"`
	Error      string              `json:"error"`
}

func NewEstimateCompletedEvent(completed EstimateCompleted, at time.Time) Event {
	return NewEvent(EstimateCompletedEvent, string(completed.ProposalID), completed, at)
}

func NewEstimateFailedEvent(proposalID entities.ProposalID, err error, at time.Time) Event {
	return NewEvent(EstimateFailedEvent, string(proposalID), EstimateFailed{
		ProposalID: proposalID,
		Error:      err.Error(),
	}, at)
}
