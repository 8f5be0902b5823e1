package domain

import "sort"

// TodoGroups is the display split of a todo collection. It is derived for
// presentation only; nothing about the ordering is persisted.
type TodoGroups struct {
	Incomplete []Todo
	Completed  []Todo
}

// GroupForDisplay splits todos into incomplete and completed groups and
// orders each one:
//
//   - incomplete: ascending by due date, items without a due date last
//   - completed: descending by due date, items without a due date first
//
// Within equal due dates the incoming order is preserved (stable sort),
// so freshly appended items stay where the user expects them.
func GroupForDisplay(todos []Todo) TodoGroups {
	var g TodoGroups
	for _, t := range todos {
		if t.Completed {
			g.Completed = append(g.Completed, t)
		} else {
			g.Incomplete = append(g.Incomplete, t)
		}
	}

	sort.SliceStable(g.Incomplete, func(i, j int) bool {
		a, b := g.Incomplete[i].DueDate, g.Incomplete[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	sort.SliceStable(g.Completed, func(i, j int) bool {
		a, b := g.Completed[i].DueDate, g.Completed[j].DueDate
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return a.After(*b)
		}
	})

	return g
}
