// Package tasklist holds the pure collection operations behind the task
// dashboard. The slice is a cache of server state in server order; each
// operation returns a new slice with exactly one change applied, so the
// caller's re-render contract stays explicit. Nothing here issues network
// calls or speculates ahead of a server response.
package tasklist

import "github.com/pakaura/paktui/internal/model"

// Prepend puts a freshly created task at the head of the collection: newest
// arrivals first, no other client-side reordering.
func Prepend(tasks []model.Task, task model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, task)
	return append(out, tasks...)
}

// ReplaceByID swaps the entry matching task.ID for the authoritative server
// record. Order is preserved; an unknown id leaves the collection unchanged.
func ReplaceByID(tasks []model.Task, task model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == task.ID {
			out[i] = task
			break
		}
	}
	return out
}

// RemoveByID filters out the entry with the given id.
func RemoveByID(tasks []model.Task, id string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// ContainsID reports whether an entry with the given id is present.
func ContainsID(tasks []model.Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Stats are the dashboard aggregates. They are recomputed from the full
// collection on every render; personal task lists are small enough that a
// cache would only add invalidation bugs.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Percent   int
}

func ComputeStats(tasks []model.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.Percent = (s.Completed*100 + s.Total/2) / s.Total
	}
	return s
}
