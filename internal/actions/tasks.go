package actions

import (
	"context"
	"fmt"

	"github.com/gwork/gwork-cli/internal/nav"
)

var tasksService = service{
	name: "Tasks",
	actions: []Action{
		{Name: "Task Lists", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.tasks.ListTaskLists(ctx, 20, "")
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, t := range arr(val, "items") {
				title := str(t, "title")
				if title == "" {
					title = "Untitled"
				}
				items = append(items, nav.Item{ID: str(t, "id"), Title: title, Subtitle: str(t, "updated")})
			}
			st.ShowItems(items, str(val, "nextPageToken"))
			return fmt.Sprintf("%d task lists", len(items)), nil
		}},
		{
			Name:   "View Tasks",
			Fields: []nav.Field{field("Task List ID", "paste task list ID", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				listID := fieldVal(st, 0)
				val, err := d.tasks.ListTasks(ctx, listID, 50, true, "")
				if err != nil {
					return "", err
				}
				var items []nav.Item
				for _, t := range arr(val, "items") {
					mark := "[ ]"
					if str(t, "status") == "completed" {
						mark = "[x]"
					}
					title := str(t, "title")
					if title == "" {
						title = "Untitled"
					}
					due := str(t, "due")
					if due == "" {
						due = "no due date"
					}
					items = append(items, nav.Item{ID: str(t, "id"), Title: mark + " " + title, Subtitle: due, Ref: listID})
				}
				st.ShowItems(items, str(val, "nextPageToken"))
				return fmt.Sprintf("%d tasks loaded", len(items)), nil
			},
		},
		{
			Name: "Create Task",
			Fields: []nav.Field{
				field("Task List ID", "paste task list ID", true),
				field("Title", "Buy groceries", true),
				field("Notes", "Milk, eggs, bread", false),
				field("Due (RFC3339)", "2026-01-20T00:00:00Z", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.tasks.CreateTask(ctx, fieldVal(st, 0), fieldVal(st, 1), fieldVal(st, 2), fieldVal(st, 3))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "task created", nil
			},
		},
		{
			Name: "Complete/Toggle",
			Fields: []nav.Field{
				field("Task List ID", "paste task list ID", true),
				field("Task ID", "paste task ID", true),
				field("Action (complete/uncomplete)", "complete", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				listID, taskID := fieldVal(st, 0), fieldVal(st, 1)
				if fieldVal(st, 2) == "uncomplete" {
					if _, err := d.tasks.UncompleteTask(ctx, listID, taskID); err != nil {
						return "", err
					}
					st.ReturnToActions()
					return "task reopened", nil
				}
				if _, err := d.tasks.CompleteTask(ctx, listID, taskID); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "task completed", nil
			},
		},
		{
			Name: "Move Task",
			Fields: []nav.Field{
				field("Task List ID", "paste task list ID", true),
				field("Task ID", "paste task ID", true),
				field("Parent Task ID (optional)", "", false),
				field("Previous Task ID (optional)", "", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				_, err := d.tasks.MoveTask(ctx, fieldVal(st, 0), fieldVal(st, 1), fieldVal(st, 2), fieldVal(st, 3))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "task moved", nil
			},
		},
		{
			Name:   "New Task List",
			Fields: []nav.Field{field("Title", "Errands", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.tasks.CreateTaskList(ctx, fieldVal(st, 0))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "task list created: " + str(val, "id"), nil
			},
		},
		{
			Name:   "Clear Completed",
			Fields: []nav.Field{field("Task List ID", "paste task list ID", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.tasks.ClearCompleted(ctx, fieldVal(st, 0)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "completed tasks cleared", nil
			},
		},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		if it.Ref == "" {
			// Task-list rows carry no parent list; nothing deeper to show.
			return "", nil
		}
		val, err := d.tasks.GetTask(ctx, it.Ref, it.ID)
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "task loaded", nil
	},
	remove: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		if it.Ref == "" {
			if _, err := d.tasks.DeleteTaskList(ctx, it.ID); err != nil {
				return "", err
			}
			st.RemoveSelectedItem()
			return "task list deleted", nil
		}
		if _, err := d.tasks.DeleteTask(ctx, it.Ref, it.ID); err != nil {
			return "", err
		}
		st.RemoveSelectedItem()
		return "task deleted", nil
	},
}
