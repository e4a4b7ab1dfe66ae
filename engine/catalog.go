package engine

import (
	"sort"

	"github.com/umardraz9/mlmpk-sub007/models"
)

// Catalog is an arena of task definitions indexed by id, used to resolve the
// unlock graph. Prerequisites form a directed graph: each task carries a set
// of prerequisite ids (today zero or one, explicit or implied by sequence
// order), so multi-prerequisite tasks are a natural extension.
type Catalog struct {
	tasks   map[uint]*models.Task
	ordered []*models.Task
}

// NewCatalog builds a catalog from task definitions, ordered by sequence.
func NewCatalog(tasks []models.Task) *Catalog {
	c := &Catalog{tasks: make(map[uint]*models.Task, len(tasks))}
	for i := range tasks {
		t := &tasks[i]
		c.tasks[t.ID] = t
		c.ordered = append(c.ordered, t)
	}
	sort.SliceStable(c.ordered, func(i, j int) bool {
		if c.ordered[i].SequenceOrder != c.ordered[j].SequenceOrder {
			return c.ordered[i].SequenceOrder < c.ordered[j].SequenceOrder
		}
		return c.ordered[i].ID < c.ordered[j].ID
	})
	return c
}

// Tasks returns the definitions in sequence order.
func (c *Catalog) Tasks() []*models.Task {
	return c.ordered
}

// Prerequisites returns the ids a task depends on. An explicit
// PrerequisiteTaskID overrides the linear order; otherwise the task
// immediately before it in sequence is the prerequisite. The first task has
// none.
func (c *Catalog) Prerequisites(taskID uint) []uint {
	t, ok := c.tasks[taskID]
	if !ok {
		return nil
	}
	if t.PrerequisiteTaskID != nil {
		if _, ok := c.tasks[*t.PrerequisiteTaskID]; ok {
			return []uint{*t.PrerequisiteTaskID}
		}
		return nil
	}
	var prev *models.Task
	for _, cur := range c.ordered {
		if cur.ID == t.ID {
			break
		}
		prev = cur
	}
	if prev == nil {
		return nil
	}
	return []uint{prev.ID}
}

// IsUnlocked reports whether a task is eligible to start given the set of
// task ids the user has already completed.
func (c *Catalog) IsUnlocked(taskID uint, completed map[uint]bool) bool {
	prereqs := c.Prerequisites(taskID)
	for _, id := range prereqs {
		if !completed[id] {
			return false
		}
	}
	return true
}
