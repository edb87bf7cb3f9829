package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vsinha/takeoff/pkg/application/dto"
	"github.com/vsinha/takeoff/pkg/application/services/estimate"
	"github.com/vsinha/takeoff/pkg/application/services/gantt"
	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
	"github.com/vsinha/takeoff/pkg/domain/services"
	"github.com/vsinha/takeoff/pkg/infrastructure/logger"
	"github.com/vsinha/takeoff/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/takeoff/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/takeoff/pkg/interfaces/cli/output"
)

// Config holds configuration for the estimate command
type Config struct {
	ScenarioDir string
	OutputDir   string
	Format      string
	StartDate   string
	EndDate     string
	Concurrency int
	Verbose     bool
	Help        bool
	Out         io.Writer // defaults to os.Stdout
}

// EstimateCommand loads a scenario directory, prices every proposal in it and
// schedules the Gantt tasks
type EstimateCommand struct {
	config Config
	log    *logger.Logger
}

// NewEstimateCommand creates a new estimate command with the given configuration
func NewEstimateCommand(config Config, log *logger.Logger) *EstimateCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &EstimateCommand{
		config: config,
		log:    log,
	}
}

// Execute runs the estimate command
func (c *EstimateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	c.log.Info("loading scenario", "dir", c.config.ScenarioDir, "format", c.config.Format)

	masterlistRepo := memory.NewRebarMasterlistRepository(0)
	scenario, err := csv.NewLoader().LoadScenario(c.config.ScenarioDir, masterlistRepo)
	if err != nil {
		return fmt.Errorf("error loading scenario: %w", err)
	}

	c.log.Info("scenario loaded",
		"work_items", len(scenario.WorkItems),
		"rebar_specs", len(scenario.Masterlist),
		"resources", len(scenario.Resources),
		"materials", len(scenario.Selections),
		"schedule_tasks", len(scenario.Schedule),
	)

	resourceRepo := memory.NewResourceRepository()
	if err := resourceRepo.LoadResources(scenario.Resources); err != nil {
		return fmt.Errorf("failed to load resources into repository: %w", err)
	}

	itemPtrs := make([]*entities.WorkItem, len(scenario.WorkItems))
	for i := range scenario.WorkItems {
		itemPtrs[i] = &scenario.WorkItems[i]
	}
	workItemRepo := memory.NewWorkItemRepository(len(itemPtrs))
	if err := workItemRepo.LoadWorkItems(itemPtrs); err != nil {
		return fmt.Errorf("failed to load work items into repository: %w", err)
	}

	// Selections for unknown work items would be dropped by the per-proposal
	// split, so the whole scenario is checked first.
	validation := services.NewHierarchyValidator().Validate(scenario.WorkItems, scenario.Selections)
	if !validation.Valid() {
		return fmt.Errorf("%w: %s", estimate.ErrInvalidHierarchy, validation.Error())
	}
	c.log.Debug("hierarchy validation passed")

	proposals, err := workItemRepo.GetProposals()
	if err != nil {
		return fmt.Errorf("failed to list proposals: %w", err)
	}

	svc := estimate.NewService(resourceRepo,
		estimate.WithConcurrency(c.config.Concurrency),
		estimate.WithLogger(c.log),
	)

	startTime := time.Now()
	results, err := svc.EstimateAll(ctx, estimate.SplitByProposal(proposals, scenario.WorkItems, scenario.Selections))
	if err != nil {
		return fmt.Errorf("error running estimate: %w", err)
	}
	elapsed := time.Since(startTime)

	for _, r := range results {
		c.log.Info("proposal estimated",
			"proposal", r.ProposalID,
			"lines", len(r.Lines),
			"total", r.ProposalTotal.StringFixed(2),
			"warnings", len(r.Warnings),
		)
	}

	report := &output.Report{
		ScenarioDir: c.config.ScenarioDir,
		Estimates:   results,
		Elapsed:     elapsed,
	}

	if scenario.HasSchedule {
		schedule, err := c.buildSchedule(scenario.Schedule, results)
		if err != nil {
			return err
		}
		report.Schedule = schedule
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Out:       c.config.Out,
	}
	if err := output.Generate(report, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	c.log.Info("estimate complete", "proposals", len(results), "elapsed", elapsed)
	return nil
}

// buildSchedule resolves the schedule tasks and spreads them over the
// configured date range. It returns nil when no date range was given.
func (c *EstimateCommand) buildSchedule(inputs []entities.GanttTaskInput, results []*dto.EstimateResult) (*entities.Schedule, error) {
	if c.config.StartDate == "" && c.config.EndDate == "" {
		c.log.Warn("schedule.csv found but no -start/-end given, skipping schedule")
		return nil, nil
	}

	start, err := gantt.ParseDate(c.config.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := gantt.ParseDate(c.config.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	tasks := gantt.ResolveTasks(FillTaskAmounts(inputs, results))
	schedule := gantt.BuildSchedule(tasks, gantt.BuildTimeline(start, end))

	c.log.Info("schedule built",
		"weeks", len(schedule.Timeline.Weeks),
		"tasks", len(schedule.Rows),
		"unscheduled", len(schedule.Unscheduled),
	)
	if len(schedule.Unscheduled) > 0 {
		c.log.Warn("tasks without a usable duration", "items", strings.Join(schedule.Unscheduled, ","))
	}
	return &schedule, nil
}

// FillTaskAmounts gives every task with a blank amount the rolled-up total of
// the parent work item named by its item number. Tasks that name no parent keep
// their blank amount.
func FillTaskAmounts(inputs []entities.GanttTaskInput, results []*dto.EstimateResult) []entities.GanttTaskInput {
	filled := make([]entities.GanttTaskInput, len(inputs))
	copy(filled, inputs)

	for i := range filled {
		if filled[i].Amount.Valid {
			continue
		}
		parentID := entities.WorkItemID(strings.TrimSpace(filled[i].ItemNo))
		for _, r := range results {
			if total, ok := r.ParentTotal(parentID); ok {
				filled[i].Amount = numeric.Of(total)
				break
			}
		}
	}
	return filled
}

// validateInputs validates the command configuration
func (c *EstimateCommand) validateInputs() error {
	if c.config.ScenarioDir == "" {
		return errors.New("must specify a -scenario directory")
	}
	if info, err := os.Stat(c.config.ScenarioDir); err != nil {
		return fmt.Errorf("scenario directory not found: %s", c.config.ScenarioDir)
	} else if !info.IsDir() {
		return fmt.Errorf("scenario path is not a directory: %s", c.config.ScenarioDir)
	}
	if (c.config.StartDate == "") != (c.config.EndDate == "") {
		return errors.New("-start and -end must be given together")
	}
	if !output.SupportedFormat(c.config.Format) {
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	return nil
}

// showHelp displays the help message
func (c *EstimateCommand) showHelp() {
	fmt.Fprint(c.config.Out, `Takeoff CLI - Construction quantity take-off, costing and scheduling

USAGE:
    takeoff -scenario <directory> [options]

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -output <dir>       Output directory for results (required for csv, xlsx, svg)
    -format <fmt>       Output format: text, json, csv, xlsx, svg (default: text)
    -start <date>       Schedule start date, YYYY-MM-DD
    -end <date>         Schedule end date, YYYY-MM-DD
    -concurrency <n>    Proposals estimated in parallel (default: 4)
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── work_items.csv        # Scope-of-work hierarchy (required)
    ├── dimensions.csv        # Dimension rows for simple and custom items
    ├── rebar_masterlist.csv  # Rebar catalog
    ├── rebar.csv             # Rebar rows for rebar items
    ├── resources.csv         # Resource catalog with unit costs
    ├── materials.csv         # Resources selected per work item
    └── schedule.csv          # Gantt tasks (optional)

CSV FILE FORMATS:

work_items.csv:
    work_item_id,parent_id,proposal_id,description,unit,compute_type
    RC,,P1,Reinforced concrete works,,
    FOOTING,RC,P1,Isolated footings,m3,simple

dimensions.csv:
    work_item_id,floor_id,label,length,width,depth,count
    FOOTING,,F-1,2.5,2,0.5,5
    WALL,F1,Grid A,4,0.2,3,1

rebar_masterlist.csv:
    rebar_masterlist_id,diameter_mm,length_m,weight_per_meter
    D12,12,6,0.888

rebar.csv:
    work_item_id,rebar_masterlist_id,quantity,location
    COLUMN,D12,4,C1

resources.csv:
    resource_id,description,unit,unit_cost
    CEMENT,Portland cement,bag,150.75

materials.csv:
    work_item_id,resource_id,multiplier,unit_cost
    FOOTING,CEMENT,2,

schedule.csv:
    item_no,description,amount,start_week,finish_week,duration,quantity,rate
    RC,Reinforced concrete works,,1,,3,,
    PUNCH,Punch list,500,8,9,,,

A blank amount in schedule.csv takes the rolled-up total of the parent work
item with the same id. Task duration comes from the duration column, else
quantity / rate, else start_week..finish_week.

EXAMPLES:
    # Price a scenario
    takeoff -scenario examples/two_storey -verbose

    # Price and schedule over three months
    takeoff -scenario examples/two_storey -start 2025-01-06 -end 2025-03-31

    # Export a workbook
    takeoff -scenario examples/two_storey -format xlsx -output results/ -start 2025-01-06 -end 2025-03-31

    # Render the Gantt chart
    takeoff -scenario examples/two_storey -format svg -output results/ -start 2025-01-06 -end 2025-03-31
`)
}
