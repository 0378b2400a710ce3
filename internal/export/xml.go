// Package export renders a user's tasks as an XML document.
package export

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/vpetrenko/todo-service/internal/models"
)

// TasksDocument builds the export document. Titles and descriptions are
// already sanitized at write time, so they are safe as element text.
func TasksDocument(userID string, tasks []models.Task) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("tasks")
	root.CreateAttr("user_id", userID)
	root.CreateAttr("count", strconv.Itoa(len(tasks)))

	for _, task := range tasks {
		el := root.CreateElement("task")
		el.CreateAttr("id", task.ID.String())
		el.CreateAttr("completed", strconv.FormatBool(task.Completed))
		el.CreateElement("title").SetText(task.Title)
		if task.Description != nil {
			el.CreateElement("description").SetText(*task.Description)
		}
		el.CreateElement("created_at").SetText(task.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
		el.CreateElement("updated_at").SetText(task.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}

	doc.Indent(2)
	return doc
}
