package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/takeoff/pkg/application/services/estimate"
	"github.com/vsinha/takeoff/pkg/application/services/gantt"
	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
	"github.com/vsinha/takeoff/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Resource catalog
	resourceRepo := memory.NewResourceRepository()
	setupCatalog(resourceRepo)

	// A small footing and column package for one proposal
	items, selections := setupProposal()

	svc := estimate.NewService(resourceRepo)

	fmt.Println("🏗️  Running estimate for proposal P1...")
	fmt.Println()

	result, err := svc.Estimate(ctx, estimate.Input{
		ProposalID: "P1",
		WorkItems:  items,
		Selections: selections,
	})
	if err != nil {
		fmt.Printf("❌ Estimate failed: %v\n", err)
		return
	}

	fmt.Println("📐 Quantities:")
	for _, q := range result.Quantities {
		fmt.Printf("  %s: %s %s\n", q.WorkItemID, q.Quantity.String(), q.Unit)
	}
	fmt.Println()

	fmt.Println("💰 Material Lines:")
	for _, line := range result.Lines {
		fmt.Printf("  %s / %s: %s x %s = %s\n",
			line.WorkItemID,
			line.ResourceID,
			line.ActualQty.StringFixed(2),
			line.UnitCost.StringFixed(2),
			line.TotalCost.StringFixed(2))
	}
	fmt.Println()

	for _, pt := range result.ParentTotals {
		fmt.Printf("🧮 %s total: %s\n", pt.Key.ParentWorkItemID, pt.Total.StringFixed(2))
	}
	fmt.Printf("Proposal total: %s\n\n", result.ProposalTotal.StringFixed(2))

	// Spread the package over two months
	rcTotal, _ := result.ParentTotal("RC")
	tasks := gantt.ResolveTasks([]entities.GanttTaskInput{
		{ItemNo: "SITE", Description: "Site preparation", Amount: numeric.OfInt(300), StartWeek: numeric.OfInt(1), Duration: numeric.OfInt(2)},
		{ItemNo: "RC", Description: "Reinforced concrete works", Amount: numeric.Of(rcTotal), StartWeek: numeric.OfInt(2), FinishWeek: numeric.OfInt(6)},
	})
	timeline := gantt.BuildTimeline(
		time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	)
	schedule := gantt.BuildSchedule(tasks, timeline)

	fmt.Println("📅 Weekly progress:")
	for i, week := range schedule.Timeline.Weeks {
		fmt.Printf("  %s: %6s%%  cumulative %6s%%\n",
			week.Label,
			schedule.WeekTotals[i].StringFixed(2),
			schedule.CumulativeTotals[i].StringFixed(2))
	}
}

func setupCatalog(repo *memory.ResourceRepository) {
	cement, _ := entities.NewResource("CEMENT", "Portland cement", "bag", numeric.Parse("150.75"))
	steel, _ := entities.NewResource("STEEL", "Deformed bar", "kg", numeric.OfInt(70))
	_ = repo.LoadResources([]*entities.Resource{cement, steel})
}

func setupProposal() ([]entities.WorkItem, []entities.MaterialSelection) {
	d12, _ := entities.NewRebarSpec("D12", numeric.OfInt(12), numeric.OfInt(6), numeric.Parse("0.888"))

	rc, _ := entities.NewWorkItem("RC", "", "P1", "Reinforced concrete works", "", nil)
	footing, _ := entities.NewWorkItem("FOOTING", "RC", "P1", "Isolated footings", "m3", entities.SimpleTakeoff{
		Rows: []entities.DimensionRow{
			entities.NewDimensionRow("F-1", numeric.Parse("2.5"), numeric.OfInt(2), numeric.Parse("0.5"), numeric.OfInt(5)),
		},
	})
	column, _ := entities.NewWorkItem("COLUMN", "RC", "P1", "Column reinforcement", "kg", entities.RebarTakeoff{
		Rows: []entities.RebarRow{
			entities.NewRebarRow("COLUMN", *d12, numeric.OfInt(4), "C1"),
		},
	})

	items := []entities.WorkItem{*rc, *footing, *column}
	selections := []entities.MaterialSelection{
		entities.NewMaterialSelection("FOOTING", "CEMENT", numeric.OfInt(2), numeric.Loose{}),
		entities.NewMaterialSelection("COLUMN", "STEEL", numeric.Parse("1.05"), numeric.Loose{}),
	}
	return items, selections
}
