package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrDependencyCycle is returned when phase dependencies do not form a DAG.
var ErrDependencyCycle = errors.New("phase dependencies contain a cycle")

// Phase is the planner's view of a stored schedule phase.
type Phase struct {
	Key       string
	Name      string
	Start     time.Time
	End       time.Time
	Duration  int
	DependsOn []string
}

// Change describes one phase whose dates the cascade moved.
type Change struct {
	PhaseKey  string
	PhaseName string
	OldStart  time.Time
	OldEnd    time.Time
	NewStart  time.Time
	NewEnd    time.Time
	ShiftDays int
}

// phaseEndFromStart places a phase's end date so that the span start..end
// covers exactly duration business days, inclusive: a 5-day phase starting
// Monday ends Friday.
func phaseEndFromStart(start time.Time, duration int) time.Time {
	if duration <= 1 {
		return start
	}
	return AddBusinessDays(start, duration-1)
}

// topoOrder returns the phase keys in dependency order (dependencies before
// dependents) using Kahn's algorithm. Dependencies on unknown keys are
// ignored. A cycle returns ErrDependencyCycle.
func topoOrder(phases []Phase) ([]string, error) {
	indegree := make(map[string]int, len(phases))
	dependents := make(map[string][]string, len(phases))
	known := make(map[string]bool, len(phases))
	for _, p := range phases {
		known[p.Key] = true
	}
	for _, p := range phases {
		indegree[p.Key] = 0
	}
	for _, p := range phases {
		for _, dep := range p.DependsOn {
			if !known[dep] {
				continue
			}
			indegree[p.Key]++
			dependents[dep] = append(dependents[dep], p.Key)
		}
	}

	queue := make([]string, 0, len(phases))
	for _, p := range phases {
		if indegree[p.Key] == 0 {
			queue = append(queue, p.Key)
		}
	}

	order := make([]string, 0, len(phases))
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		order = append(order, key)
		for _, dep := range dependents[key] {
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(phases) {
		return nil, ErrDependencyCycle
	}
	return order, nil
}

// Cascade recomputes the dates of every phase that transitively depends on
// the modified phase. The caller passes the full phase set with the modified
// phase's end date already reflecting the manual edit.
//
// Phases are processed in topological order over the dependency DAG, so each
// dependent sees the final dates of all its dependencies, including diamond
// shapes. A dependent whose recomputed start equals its current start is
// pruned: nothing downstream of it can have moved either, which makes
// reapplying the same edit a no-op.
func Cascade(phases []Phase, modifiedKey string) ([]Change, error) {
	order, err := topoOrder(phases)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*Phase, len(phases))
	for i := range phases {
		p := phases[i]
		byKey[p.Key] = &p
	}
	if _, ok := byKey[modifiedKey]; !ok {
		return nil, fmt.Errorf("phase %q not in phase set", modifiedKey)
	}

	changed := map[string]bool{modifiedKey: true}
	var changes []Change

	for _, key := range order {
		p := byKey[key]
		if key == modifiedKey {
			continue
		}

		touched := false
		var maxEnd time.Time
		for _, dep := range p.DependsOn {
			d, ok := byKey[dep]
			if !ok {
				continue
			}
			if changed[dep] {
				touched = true
			}
			if d.End.After(maxEnd) {
				maxEnd = d.End
			}
		}
		if !touched {
			continue
		}

		newStart := AddBusinessDays(maxEnd, 1)
		shift := BusinessDaysBetween(p.Start, newStart)
		if shift == 0 {
			continue
		}
		newEnd := phaseEndFromStart(newStart, p.Duration)

		changes = append(changes, Change{
			PhaseKey:  p.Key,
			PhaseName: p.Name,
			OldStart:  p.Start,
			OldEnd:    p.End,
			NewStart:  newStart,
			NewEnd:    newEnd,
			ShiftDays: shift,
		})
		p.Start = newStart
		p.End = newEnd
		changed[key] = true
	}

	return changes, nil
}
