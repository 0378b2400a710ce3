package export

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpetrenko/todo-service/internal/models"
)

func TestTasksDocument(t *testing.T) {
	userID := uuid.New()
	desc := "details"
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: uuid.New(), Title: "Buy milk", Description: &desc, Completed: false, UserID: userID, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Title: "Ship release", Completed: true, UserID: userID, CreatedAt: now, UpdatedAt: now},
	}

	doc := TasksDocument(userID.String(), tasks)
	root := doc.SelectElement("tasks")
	require.NotNil(t, root)
	assert.Equal(t, userID.String(), root.SelectAttrValue("user_id", ""))
	assert.Equal(t, "2", root.SelectAttrValue("count", ""))

	elements := root.SelectElements("task")
	require.Len(t, elements, 2)

	first := elements[0]
	assert.Equal(t, tasks[0].ID.String(), first.SelectAttrValue("id", ""))
	assert.Equal(t, "false", first.SelectAttrValue("completed", ""))
	assert.Equal(t, "Buy milk", first.SelectElement("title").Text())
	assert.Equal(t, "details", first.SelectElement("description").Text())
	assert.Equal(t, "2026-03-14T09:30:00Z", first.SelectElement("created_at").Text())

	// description element is omitted when the task has none
	second := elements[1]
	assert.Equal(t, "true", second.SelectAttrValue("completed", ""))
	assert.Nil(t, second.SelectElement("description"))
}

func TestTasksDocument_Empty(t *testing.T) {
	userID := uuid.NewString()

	doc := TasksDocument(userID, nil)
	root := doc.SelectElement("tasks")
	require.NotNil(t, root)
	assert.Equal(t, "0", root.SelectAttrValue("count", ""))
	assert.Empty(t, root.SelectElements("task"))

	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
}
