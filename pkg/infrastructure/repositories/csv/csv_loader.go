package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
)

// Scenario file names
const (
	WorkItemsFile       = "work_items.csv"
	DimensionsFile      = "dimensions.csv"
	RebarMasterlistFile = "rebar_masterlist.csv"
	RebarFile           = "rebar.csv"
	ResourcesFile       = "resources.csv"
	MaterialsFile       = "materials.csv"
	ScheduleFile        = "schedule.csv"
)

var (
	workItemsHeader       = []string{"work_item_id", "parent_id", "proposal_id", "description", "unit", "compute_type"}
	dimensionsHeader      = []string{"work_item_id", "floor_id", "label", "length", "width", "depth", "count"}
	rebarMasterlistHeader = []string{"rebar_masterlist_id", "diameter_mm", "length_m", "weight_per_meter"}
	rebarHeader           = []string{"work_item_id", "rebar_masterlist_id", "quantity", "location"}
	resourcesHeader       = []string{"resource_id", "description", "unit", "unit_cost"}
	materialsHeader       = []string{"work_item_id", "resource_id", "multiplier", "unit_cost"}
	scheduleHeader        = []string{"item_no", "description", "amount", "start_week", "finish_week", "duration", "quantity", "rate"}
)

// Loader handles loading estimate scenarios from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// WorkItemRecord is a work_items.csv row before its takeoff is attached
type WorkItemRecord struct {
	ID          entities.WorkItemID
	ParentID    entities.WorkItemID
	ProposalID  entities.ProposalID
	Description string
	Unit        string
	ComputeType entities.ComputeType
	Measured    bool // false for grouping items with a blank compute_type
}

// DimensionRecord is a dimensions.csv row
type DimensionRecord struct {
	WorkItemID entities.WorkItemID
	FloorID    entities.FloorID
	Row        entities.DimensionRow
}

// RebarRecord is a rebar.csv row
type RebarRecord struct {
	WorkItemID entities.WorkItemID
	RebarID    entities.RebarID
	Quantity   numeric.Loose
	Location   string
}

// Scenario is the complete content of a scenario directory
type Scenario struct {
	WorkItems   []entities.WorkItem
	Masterlist  []*entities.RebarSpec
	Resources   []*entities.Resource
	Selections  []entities.MaterialSelection
	Schedule    []entities.GanttTaskInput
	HasSchedule bool
}

// LoadScenario loads every scenario file from dir. work_items.csv is required,
// the other files are optional.
func (l *Loader) LoadScenario(dir string, masterlist repositories.RebarMasterlistRepository) (*Scenario, error) {
	scenario := &Scenario{}

	records, err := l.LoadWorkItems(filepath.Join(dir, WorkItemsFile))
	if err != nil {
		return nil, err
	}

	var dims []DimensionRecord
	if err := optional(func() (err error) {
		dims, err = l.LoadDimensions(filepath.Join(dir, DimensionsFile))
		return err
	}); err != nil {
		return nil, err
	}

	if err := optional(func() (err error) {
		scenario.Masterlist, err = l.LoadRebarMasterlist(filepath.Join(dir, RebarMasterlistFile))
		return err
	}); err != nil {
		return nil, err
	}
	if err := masterlist.LoadSpecs(scenario.Masterlist); err != nil {
		return nil, fmt.Errorf("failed to load rebar masterlist: %w", err)
	}

	var rebarRows []RebarRecord
	if err := optional(func() (err error) {
		rebarRows, err = l.LoadRebar(filepath.Join(dir, RebarFile))
		return err
	}); err != nil {
		return nil, err
	}

	if err := optional(func() (err error) {
		scenario.Resources, err = l.LoadResources(filepath.Join(dir, ResourcesFile))
		return err
	}); err != nil {
		return nil, err
	}

	if err := optional(func() (err error) {
		scenario.Selections, err = l.LoadMaterials(filepath.Join(dir, MaterialsFile))
		return err
	}); err != nil {
		return nil, err
	}

	schedulePath := filepath.Join(dir, ScheduleFile)
	if _, statErr := os.Stat(schedulePath); statErr == nil {
		scenario.Schedule, err = l.LoadSchedule(schedulePath)
		if err != nil {
			return nil, err
		}
		scenario.HasSchedule = true
	}

	scenario.WorkItems, err = AssembleWorkItems(records, dims, rebarRows, masterlist)
	if err != nil {
		return nil, err
	}
	return scenario, nil
}

// optional runs load and ignores a missing file
func optional(load func() error) error {
	err := load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadWorkItems loads the scope-of-work hierarchy
func (l *Loader) LoadWorkItems(filename string) ([]WorkItemRecord, error) {
	records, err := readRecords(filename, "work items", workItemsHeader)
	if err != nil {
		return nil, err
	}

	items := make([]WorkItemRecord, 0, len(records))
	for i, record := range records {
		item := WorkItemRecord{
			ID:          entities.WorkItemID(strings.TrimSpace(record[0])),
			ParentID:    entities.WorkItemID(strings.TrimSpace(record[1])),
			ProposalID:  entities.ProposalID(strings.TrimSpace(record[2])),
			Description: record[3],
			Unit:        record[4],
		}
		if strings.TrimSpace(record[5]) != "" {
			item.ComputeType, err = entities.ParseComputeType(record[5])
			if err != nil {
				return nil, fmt.Errorf("work items CSV row %d: %w", i+2, err)
			}
			item.Measured = true
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadDimensions loads dimension rows for simple and custom items
func (l *Loader) LoadDimensions(filename string) ([]DimensionRecord, error) {
	records, err := readRecords(filename, "dimensions", dimensionsHeader)
	if err != nil {
		return nil, err
	}

	dims := make([]DimensionRecord, 0, len(records))
	for _, record := range records {
		dims = append(dims, DimensionRecord{
			WorkItemID: entities.WorkItemID(strings.TrimSpace(record[0])),
			FloorID:    entities.FloorID(strings.TrimSpace(record[1])),
			Row: entities.NewDimensionRow(record[2],
				numeric.Parse(record[3]),
				numeric.Parse(record[4]),
				numeric.Parse(record[5]),
				numeric.Parse(record[6]),
			),
		})
	}
	return dims, nil
}

// LoadRebarMasterlist loads the rebar catalog
func (l *Loader) LoadRebarMasterlist(filename string) ([]*entities.RebarSpec, error) {
	records, err := readRecords(filename, "rebar masterlist", rebarMasterlistHeader)
	if err != nil {
		return nil, err
	}

	specs := make([]*entities.RebarSpec, 0, len(records))
	for i, record := range records {
		spec, err := entities.NewRebarSpec(
			entities.RebarID(strings.TrimSpace(record[0])),
			numeric.Parse(record[1]),
			numeric.Parse(record[2]),
			numeric.Parse(record[3]),
		)
		if err != nil {
			return nil, fmt.Errorf("rebar masterlist CSV row %d: %w", i+2, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// LoadRebar loads rebar selections
func (l *Loader) LoadRebar(filename string) ([]RebarRecord, error) {
	records, err := readRecords(filename, "rebar", rebarHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]RebarRecord, 0, len(records))
	for _, record := range records {
		rows = append(rows, RebarRecord{
			WorkItemID: entities.WorkItemID(strings.TrimSpace(record[0])),
			RebarID:    entities.RebarID(strings.TrimSpace(record[1])),
			Quantity:   numeric.Parse(record[2]),
			Location:   record[3],
		})
	}
	return rows, nil
}

// LoadResources loads the resource price catalog
func (l *Loader) LoadResources(filename string) ([]*entities.Resource, error) {
	records, err := readRecords(filename, "resources", resourcesHeader)
	if err != nil {
		return nil, err
	}

	resources := make([]*entities.Resource, 0, len(records))
	for i, record := range records {
		res, err := entities.NewResource(
			entities.ResourceID(strings.TrimSpace(record[0])),
			record[1],
			record[2],
			numeric.Parse(record[3]),
		)
		if err != nil {
			return nil, fmt.Errorf("resources CSV row %d: %w", i+2, err)
		}
		resources = append(resources, res)
	}
	return resources, nil
}

// LoadMaterials loads material selections. A blank unit_cost defers to the catalog.
func (l *Loader) LoadMaterials(filename string) ([]entities.MaterialSelection, error) {
	records, err := readRecords(filename, "materials", materialsHeader)
	if err != nil {
		return nil, err
	}

	selections := make([]entities.MaterialSelection, 0, len(records))
	for _, record := range records {
		selections = append(selections, entities.NewMaterialSelection(
			entities.WorkItemID(strings.TrimSpace(record[0])),
			entities.ResourceID(strings.TrimSpace(record[1])),
			numeric.Parse(record[2]),
			numeric.Parse(record[3]),
		))
	}
	return selections, nil
}

// LoadSchedule loads Gantt task input
func (l *Loader) LoadSchedule(filename string) ([]entities.GanttTaskInput, error) {
	records, err := readRecords(filename, "schedule", scheduleHeader)
	if err != nil {
		return nil, err
	}

	tasks := make([]entities.GanttTaskInput, 0, len(records))
	for _, record := range records {
		tasks = append(tasks, entities.GanttTaskInput{
			ItemNo:      strings.TrimSpace(record[0]),
			Description: record[1],
			Amount:      numeric.Parse(record[2]),
			StartWeek:   numeric.Parse(record[3]),
			FinishWeek:  numeric.Parse(record[4]),
			Duration:    numeric.Parse(record[5]),
			Quantity:    numeric.Parse(record[6]),
			Rate:        numeric.Parse(record[7]),
		})
	}
	return tasks, nil
}

// AssembleWorkItems attaches dimension and rebar rows to their work items,
// building the takeoff each item's compute type calls for
func AssembleWorkItems(
	records []WorkItemRecord,
	dims []DimensionRecord,
	rebarRows []RebarRecord,
	masterlist repositories.RebarMasterlistRepository,
) ([]entities.WorkItem, error) {
	kinds := make(map[entities.WorkItemID]WorkItemRecord, len(records))
	for _, r := range records {
		kinds[r.ID] = r
	}

	simpleRows := make(map[entities.WorkItemID][]entities.DimensionRow)
	floorRows := make(map[entities.WorkItemID][]entities.FloorDimensionRow)
	for i, d := range dims {
		owner, exists := kinds[d.WorkItemID]
		if !exists {
			return nil, fmt.Errorf("dimensions CSV row %d: unknown work item %s", i+2, d.WorkItemID)
		}
		switch {
		case owner.Measured && owner.ComputeType == entities.Simple:
			simpleRows[d.WorkItemID] = append(simpleRows[d.WorkItemID], d.Row)
		case owner.Measured && owner.ComputeType == entities.Custom:
			floorRows[d.WorkItemID] = append(floorRows[d.WorkItemID], entities.FloorDimensionRow{FloorID: d.FloorID, DimensionRow: d.Row})
		default:
			return nil, fmt.Errorf("dimensions CSV row %d: work item %s does not take dimension rows", i+2, d.WorkItemID)
		}
	}

	rebarByItem := make(map[entities.WorkItemID][]entities.RebarRow)
	for i, r := range rebarRows {
		owner, exists := kinds[r.WorkItemID]
		if !exists {
			return nil, fmt.Errorf("rebar CSV row %d: unknown work item %s", i+2, r.WorkItemID)
		}
		if !owner.Measured || owner.ComputeType != entities.Rebar {
			return nil, fmt.Errorf("rebar CSV row %d: work item %s is not a rebar item", i+2, r.WorkItemID)
		}
		spec, err := masterlist.GetSpec(r.RebarID)
		if err != nil {
			return nil, fmt.Errorf("rebar CSV row %d: %w", i+2, err)
		}
		rebarByItem[r.WorkItemID] = append(rebarByItem[r.WorkItemID], entities.NewRebarRow(r.WorkItemID, *spec, r.Quantity, r.Location))
	}

	items := make([]entities.WorkItem, 0, len(records))
	for _, r := range records {
		var takeoff entities.Takeoff
		if r.Measured {
			switch r.ComputeType {
			case entities.Simple:
				takeoff = entities.SimpleTakeoff{Rows: simpleRows[r.ID]}
			case entities.Custom:
				takeoff = entities.CustomTakeoff{Rows: floorRows[r.ID]}
			case entities.Rebar:
				takeoff = entities.RebarTakeoff{Rows: rebarByItem[r.ID]}
			}
		}

		item, err := entities.NewWorkItem(r.ID, r.ParentID, r.ProposalID, r.Description, r.Unit, takeoff)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// readRecords opens a CSV file, checks its header and returns the data rows.
// A header-only file yields no rows.
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(strings.TrimPrefix(actual[i], "\ufeff"))) != col {
			return false
		}
	}

	return true
}
