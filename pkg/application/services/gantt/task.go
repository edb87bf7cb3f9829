package gantt

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

// DurationFromRate returns quantity / rate in weeks. ok is false when rate is
// zero, leaving the duration undetermined.
func DurationFromRate(quantity, rate decimal.Decimal) (decimal.Decimal, bool) {
	if rate.IsZero() {
		return decimal.Zero, false
	}
	return quantity.Div(rate), true
}

// FinishWeek returns the last active week of a task starting at startWeek
func FinishWeek(startWeek int, duration decimal.Decimal) int {
	return entities.FinishWeek(startWeek, duration)
}

// ResolveTask converts raw task input into a GanttTask. An explicit duration
// wins, then quantity / rate, then the week-based finish week. Input with none
// of these resolves to an unscheduled task.
func ResolveTask(in entities.GanttTaskInput) entities.GanttTask {
	start := in.StartWeek.IntOr(1)

	switch {
	case in.Duration.Valid:
		return entities.NewTaskFromDuration(in.ItemNo, in.Description, in.Amount, start, in.Duration)
	case in.Quantity.Valid || in.Rate.Valid:
		duration, ok := DurationFromRate(in.Quantity.OrZero(), in.Rate.OrZero())
		if !ok {
			return entities.NewTaskFromDuration(in.ItemNo, in.Description, in.Amount, start, numeric.Loose{})
		}
		return entities.NewTaskFromDuration(in.ItemNo, in.Description, in.Amount, start, numeric.Of(duration))
	case in.FinishWeek.Valid:
		return entities.NewTaskFromWeeks(in.ItemNo, in.Description, in.Amount, start, in.FinishWeek.IntOr(0))
	default:
		return entities.NewTaskFromDuration(in.ItemNo, in.Description, in.Amount, start, numeric.Loose{})
	}
}

// ResolveTasks resolves every input in order
func ResolveTasks(inputs []entities.GanttTaskInput) []entities.GanttTask {
	tasks := make([]entities.GanttTask, len(inputs))
	for i, in := range inputs {
		tasks[i] = ResolveTask(in)
	}
	return tasks
}
