package schedule

import "time"

// TemplatePhase is one phase blueprint in layout order.
type TemplatePhase struct {
	Key          string
	Name         string
	Duration     int
	DependsOn    []string
	RequiredArea string
	Order        int
}

// PlacedPhase is a blueprint with its computed calendar dates.
type PlacedPhase struct {
	TemplatePhase
	Start time.Time
	End   time.Time
}

// Layout places template phases sequentially from start: each phase spans its
// duration in business days inclusive, and the next phase begins on the
// business day after the previous one ends. Array order is authoritative; the
// Order field is carried through for display only.
func Layout(start time.Time, phases []TemplatePhase) []PlacedPhase {
	placed := make([]PlacedPhase, 0, len(phases))
	cursor := start
	for _, tp := range phases {
		p := PlacedPhase{TemplatePhase: tp, Start: cursor}
		p.End = phaseEndFromStart(p.Start, tp.Duration)
		placed = append(placed, p)
		cursor = AddBusinessDays(p.End, 1)
	}
	return placed
}

// DefaultTemplateName is reported as template_used when no stored template
// matches the project.
const DefaultTemplateName = "standard"

// DefaultTemplate returns the built-in 7-phase delivery template used when
// neither an explicit template id nor a project-type match resolves.
func DefaultTemplate() []TemplatePhase {
	return []TemplatePhase{
		{Key: "activation", Name: "Activation", Duration: 5, Order: 0},
		{Key: "planning", Name: "Planning", Duration: 10, DependsOn: []string{"activation"}, Order: 1},
		{Key: "design", Name: "Design", Duration: 15, DependsOn: []string{"planning"}, RequiredArea: "creativity", Order: 2},
		{Key: "development", Name: "Development", Duration: 30, DependsOn: []string{"design"}, RequiredArea: "software", Order: 3},
		{Key: "qa", Name: "QA", Duration: 10, DependsOn: []string{"development"}, Order: 4},
		{Key: "content", Name: "Content Load", Duration: 7, DependsOn: []string{"qa"}, Order: 5},
		{Key: "production", Name: "Production", Duration: 5, DependsOn: []string{"content"}, Order: 6},
	}
}
