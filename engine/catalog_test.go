package engine

import (
	"testing"

	"github.com/umardraz9/mlmpk-sub007/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint) *uint { return &v }

func linearTasks() []models.Task {
	return []models.Task{
		{ID: 1, Name: "Task 1", SequenceOrder: 1, Status: "Active"},
		{ID: 2, Name: "Task 2", SequenceOrder: 2, Status: "Active"},
		{ID: 3, Name: "Task 3", SequenceOrder: 3, Status: "Active"},
	}
}

func TestCatalogFirstTaskHasNoPrerequisites(t *testing.T) {
	c := NewCatalog(linearTasks())
	assert.Empty(t, c.Prerequisites(1))
	assert.True(t, c.IsUnlocked(1, nil))
}

func TestCatalogLinearOrder(t *testing.T) {
	c := NewCatalog(linearTasks())
	require.Equal(t, []uint{1}, c.Prerequisites(2))
	require.Equal(t, []uint{2}, c.Prerequisites(3))

	assert.False(t, c.IsUnlocked(2, map[uint]bool{}))
	assert.True(t, c.IsUnlocked(2, map[uint]bool{1: true}))
	assert.False(t, c.IsUnlocked(3, map[uint]bool{1: true}))
	assert.True(t, c.IsUnlocked(3, map[uint]bool{1: true, 2: true}))
}

func TestCatalogExplicitPrerequisiteOverridesSequence(t *testing.T) {
	tasks := linearTasks()
	// Task 3 depends on task 1 directly, skipping task 2.
	tasks[2].PrerequisiteTaskID = ptr(1)
	c := NewCatalog(tasks)
	require.Equal(t, []uint{1}, c.Prerequisites(3))
	assert.True(t, c.IsUnlocked(3, map[uint]bool{1: true}))
}

func TestCatalogDanglingPrerequisiteIgnored(t *testing.T) {
	tasks := linearTasks()
	tasks[1].PrerequisiteTaskID = ptr(99)
	c := NewCatalog(tasks)
	assert.Empty(t, c.Prerequisites(2))
	assert.True(t, c.IsUnlocked(2, nil))
}

func TestCatalogOrdersBySequence(t *testing.T) {
	tasks := []models.Task{
		{ID: 5, SequenceOrder: 3, Status: "Active"},
		{ID: 7, SequenceOrder: 1, Status: "Active"},
		{ID: 6, SequenceOrder: 2, Status: "Active"},
	}
	c := NewCatalog(tasks)
	ordered := c.Tasks()
	require.Len(t, ordered, 3)
	assert.Equal(t, uint(7), ordered[0].ID)
	assert.Equal(t, uint(6), ordered[1].ID)
	assert.Equal(t, uint(5), ordered[2].ID)

	// Sequence implies the chain 7 -> 6 -> 5.
	assert.Equal(t, []uint{7}, c.Prerequisites(6))
	assert.Equal(t, []uint{6}, c.Prerequisites(5))
}

func TestCatalogUnknownTask(t *testing.T) {
	c := NewCatalog(linearTasks())
	assert.Empty(t, c.Prerequisites(42))
}
