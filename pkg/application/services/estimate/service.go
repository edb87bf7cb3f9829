// Package estimate runs the full quantity and cost roll-up for proposals.
package estimate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/takeoff/pkg/application/dto"
	"github.com/vsinha/takeoff/pkg/application/services/costing"
	"github.com/vsinha/takeoff/pkg/application/services/rebar"
	"github.com/vsinha/takeoff/pkg/application/services/volume"
	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
	"github.com/vsinha/takeoff/pkg/domain/services"
	"github.com/vsinha/takeoff/pkg/infrastructure/events"
	"github.com/vsinha/takeoff/pkg/infrastructure/logger"
)

// ErrInvalidHierarchy wraps hierarchy validation failures
var ErrInvalidHierarchy = errors.New("invalid work item hierarchy")

const defaultConcurrency = 4

var tracer = otel.Tracer("github.com/vsinha/takeoff/pkg/application/services/estimate")

// Input is everything needed to estimate one proposal
type Input struct {
	ProposalID entities.ProposalID
	WorkItems  []entities.WorkItem
	Selections []entities.MaterialSelection
}

// Service prices proposals against a resource catalog
type Service struct {
	resources   repositories.ResourceRepository
	validator   *services.HierarchyValidator
	concurrency int
	now         func() time.Time
	eventStore  events.EventStore
	log         *logger.Logger
}

// Option configures a Service
type Option func(*Service)

// WithConcurrency bounds the number of proposals EstimateAll computes at once
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithClock replaces the clock used for ComputedAt
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithEventStore records every run as an event on the proposal's stream
func WithEventStore(store events.EventStore) Option {
	return func(s *Service) {
		s.eventStore = store
	}
}

// WithLogger sets the logger used for failures that do not fail the estimate
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a new estimate service
func NewService(resources repositories.ResourceRepository, opts ...Option) *Service {
	s := &Service{
		resources:   resources,
		validator:   services.NewHierarchyValidator(),
		concurrency: defaultConcurrency,
		now:         time.Now,
		log:         logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Estimate computes base quantities, priced material lines and roll-ups for one proposal
func (s *Service) Estimate(ctx context.Context, in Input) (*dto.EstimateResult, error) {
	ctx, span := tracer.Start(ctx, "estimate.Estimate")
	defer span.End()
	span.SetAttributes(
		attribute.String("proposal.id", string(in.ProposalID)),
		attribute.Int("work_items", len(in.WorkItems)),
		attribute.Int("selections", len(in.Selections)),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	validation := s.validator.Validate(in.WorkItems, in.Selections)
	if !validation.Valid() {
		err := fmt.Errorf("%w: %s", ErrInvalidHierarchy, validation.Error())
		span.RecordError(err)
		span.SetStatus(codes.Error, "hierarchy validation failed")
		s.record(events.NewEstimateFailedEvent(in.ProposalID, err, s.now()))
		return nil, err
	}

	result := &dto.EstimateResult{
		RunID:      uuid.NewString(),
		ProposalID: in.ProposalID,
		ComputedAt: s.now(),
	}

	quantities := s.baseQuantities(in.WorkItems, result)

	byID := make(map[entities.WorkItemID]entities.WorkItem, len(in.WorkItems))
	for _, item := range in.WorkItems {
		if item.ProposalID != in.ProposalID {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("work item %s belongs to proposal %s, not %s", item.ID, item.ProposalID, in.ProposalID))
		}
		byID[item.ID] = item
	}

	result.Lines = make([]entities.MaterialLine, 0, len(in.Selections))
	for _, sel := range in.Selections {
		item := byID[sel.WorkItemID]
		if item.Takeoff == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("material %s is attached to grouping item %s with no takeoff", sel.ResourceID, item.ID))
		}
		unitCost := s.unitCost(sel, result)
		result.Lines = append(result.Lines, costing.PriceLine(item, sel, quantities[item.ID], unitCost))
	}

	result.ParentTotals = costing.SortedParentTotals(result.Lines)
	result.ProposalTotal = costing.ProposalTotals(result.Lines)[in.ProposalID]
	result.RebarUsage = rebar.SortedUsage(rebar.AggregateByMasterlist(rebar.CollectRows(in.WorkItems)))

	span.SetAttributes(
		attribute.Int("lines", len(result.Lines)),
		attribute.String("proposal.total", result.ProposalTotal.StringFixed(2)),
	)
	s.record(events.NewEstimateCompletedEvent(events.EstimateCompleted{
		RunID:         result.RunID,
		ProposalID:    result.ProposalID,
		ProposalTotal: result.ProposalTotal,
		LineCount:     len(result.Lines),
		Warnings:      result.Warnings,
	}, result.ComputedAt))
	return result, nil
}

func (s *Service) record(event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		s.log.Warn("failed to record estimate run", "event", event.Type(), "proposal", event.StreamID(), "error", err)
	}
}

// baseQuantities measures every work item: volume for simple and custom items,
// total weight for rebar items
func (s *Service) baseQuantities(items []entities.WorkItem, result *dto.EstimateResult) map[entities.WorkItemID]decimal.Decimal {
	weights := rebar.AggregateByWorkItem(rebar.CollectRows(items))
	quantities := make(map[entities.WorkItemID]decimal.Decimal, len(items))

	for _, item := range items {
		kind, measured := item.ComputeType()
		if !measured {
			continue
		}

		iq := dto.ItemQuantity{
			WorkItemID:  item.ID,
			ParentID:    item.ParentID,
			Description: item.Description,
			Unit:        item.Unit,
			ComputeType: kind,
		}
		switch t := item.Takeoff.(type) {
		case entities.RebarTakeoff:
			iq.Quantity = weights[item.ID]
		case entities.CustomTakeoff:
			iq.Quantity, _ = volume.TakeoffVolume(t)
			iq.Floors = volume.SortedFloorTotals(t.Rows)
		default:
			iq.Quantity, _ = volume.TakeoffVolume(t)
		}

		quantities[item.ID] = iq.Quantity
		result.Quantities = append(result.Quantities, iq)
	}
	return quantities
}

// unitCost prefers the selection's own price and falls back to the catalog.
// An unknown resource prices at zero with a warning.
func (s *Service) unitCost(sel entities.MaterialSelection, result *dto.EstimateResult) decimal.Decimal {
	if sel.UnitCost.Valid {
		return sel.UnitCost.Decimal
	}
	if s.resources == nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no resource catalog, %s on %s priced at 0", sel.ResourceID, sel.WorkItemID))
		return decimal.Zero
	}
	res, err := s.resources.GetResource(sel.ResourceID)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("resource %s on %s priced at 0: %v", sel.ResourceID, sel.WorkItemID, err))
		return decimal.Zero
	}
	return res.UnitCost
}

// EstimateAll estimates several proposals concurrently. Results are returned in
// input order. The first failure cancels the proposals not yet started.
func (s *Service) EstimateAll(ctx context.Context, inputs []Input) ([]*dto.EstimateResult, error) {
	ctx, span := tracer.Start(ctx, "estimate.EstimateAll")
	defer span.End()
	span.SetAttributes(attribute.Int("proposals", len(inputs)))

	results := make([]*dto.EstimateResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			res, err := s.Estimate(gctx, in)
			if err != nil {
				return fmt.Errorf("proposal %s: %w", in.ProposalID, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return results, nil
}

// SplitByProposal groups work items and selections into one Input per proposal,
// ordered by proposal id
func SplitByProposal(proposals []entities.ProposalID, items []entities.WorkItem, selections []entities.MaterialSelection) []Input {
	index := make(map[entities.ProposalID]int, len(proposals))
	inputs := make([]Input, len(proposals))
	for i, id := range proposals {
		index[id] = i
		inputs[i].ProposalID = id
	}

	owner := make(map[entities.WorkItemID]entities.ProposalID, len(items))
	for _, item := range items {
		i, ok := index[item.ProposalID]
		if !ok {
			continue
		}
		owner[item.ID] = item.ProposalID
		inputs[i].WorkItems = append(inputs[i].WorkItems, item)
	}
	for _, sel := range selections {
		proposal, ok := owner[sel.WorkItemID]
		if !ok {
			continue
		}
		i := index[proposal]
		inputs[i].Selections = append(inputs[i].Selections, sel)
	}
	return inputs
}
