package aggregate

import (
	"github.com/signalnine/evalagg/internal/evaluation"
	"github.com/signalnine/evalagg/internal/inventory"
)

const allTrays = "all trays"

// Plan is a job resolved against the inventory: what gets aggregated and
// in which order.
type Plan struct {
	Name      string
	Variants  []string
	Trays     []string
	Templates []inventory.Template
	Pairs     []inventory.Pair
}

// NewPlan deduplicates templates by (tray, part) and, for duplex jobs, pairs
// the present and missing templates of each part. Variants keep their
// declaration order.
func NewPlan(name string, variants, trays []string, templates []inventory.Template, duplex bool) Plan {
	p := Plan{
		Name:      name,
		Variants:  variants,
		Trays:     trays,
		Templates: inventory.Dedupe(templates),
	}
	if duplex {
		p.Pairs = inventory.BuildPairs(templates)
	}
	return p
}

// Scope is one job aggregate and the rows plotted in it.
type Scope struct {
	Title string `json:"title"`
	Dir   string `json:"dir"`
	Rows  []Row  `json:"rows"`
}

// JobAggregates writes the job-wide aggregate followed by one aggregate per
// tray of the plan.
func (g *Generator) JobAggregates(plan Plan) ([]Scope, error) {
	g.log.Info("generating job aggregates", "job", plan.Name, "variants", len(plan.Variants), "templates", len(plan.Templates), "pairs", len(plan.Pairs))

	dir := evaluation.JobAggregateDir(g.evalRoot, plan.Name)
	rows, err := g.JobAggregate(dir, plan.Variants, plan.Templates, plan.Pairs, allTrays)
	if err != nil {
		return nil, err
	}
	scopes := []Scope{{Title: allTrays, Dir: dir, Rows: rows}}

	for _, tray := range plan.Trays {
		dir := evaluation.TrayAggregateDir(g.evalRoot, tray, plan.Name)
		templates := inventory.FilterTray(plan.Templates, tray)
		pairs := inventory.FilterPairs(plan.Pairs, tray)
		rows, err := g.JobAggregate(dir, plan.Variants, templates, pairs, tray)
		if err != nil {
			return scopes, err
		}
		scopes = append(scopes, Scope{Title: tray, Dir: dir, Rows: rows})
	}
	return scopes, nil
}
