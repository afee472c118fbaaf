package gapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const tasksBase = "https://tasks.googleapis.com/tasks/v1"

type Tasks struct {
	c Doer
}

func NewTasks(c Doer) Tasks { return Tasks{c: c} }

func (t Tasks) ListTaskLists(ctx context.Context, maxResults int, pageToken string) (map[string]any, error) {
	v := url.Values{"maxResults": {strconv.Itoa(maxResults)}}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return t.c.Get(ctx, tasksBase+"/users/@me/lists"+query(v))
}

func (t Tasks) CreateTaskList(ctx context.Context, title string) (map[string]any, error) {
	return t.c.Post(ctx, tasksBase+"/users/@me/lists", map[string]any{"title": title})
}

func (t Tasks) DeleteTaskList(ctx context.Context, id string) (map[string]any, error) {
	return t.c.Delete(ctx, fmt.Sprintf("%s/users/@me/lists/%s", tasksBase, id))
}

func (t Tasks) ListTasks(ctx context.Context, taskListID string, maxResults int, showCompleted bool, pageToken string) (map[string]any, error) {
	v := url.Values{
		"maxResults":    {strconv.Itoa(maxResults)},
		"showCompleted": {strconv.FormatBool(showCompleted)},
		"showHidden":    {strconv.FormatBool(showCompleted)},
	}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return t.c.Get(ctx, fmt.Sprintf("%s/lists/%s/tasks%s", tasksBase, taskListID, query(v)))
}

func (t Tasks) GetTask(ctx context.Context, taskListID, taskID string) (map[string]any, error) {
	return t.c.Get(ctx, fmt.Sprintf("%s/lists/%s/tasks/%s", tasksBase, taskListID, taskID))
}

func (t Tasks) CreateTask(ctx context.Context, taskListID, title, notes, due string) (map[string]any, error) {
	body := map[string]any{"title": title}
	if notes != "" {
		body["notes"] = notes
	}
	if due != "" {
		body["due"] = due
	}
	return t.c.Post(ctx, fmt.Sprintf("%s/lists/%s/tasks", tasksBase, taskListID), body)
}

func (t Tasks) UpdateTask(ctx context.Context, taskListID, taskID string, updates map[string]any) (map[string]any, error) {
	return t.c.Patch(ctx, fmt.Sprintf("%s/lists/%s/tasks/%s", tasksBase, taskListID, taskID), updates)
}

func (t Tasks) CompleteTask(ctx context.Context, taskListID, taskID string) (map[string]any, error) {
	return t.UpdateTask(ctx, taskListID, taskID, map[string]any{"status": "completed"})
}

func (t Tasks) UncompleteTask(ctx context.Context, taskListID, taskID string) (map[string]any, error) {
	return t.UpdateTask(ctx, taskListID, taskID, map[string]any{"status": "needsAction", "completed": nil})
}

func (t Tasks) DeleteTask(ctx context.Context, taskListID, taskID string) (map[string]any, error) {
	return t.c.Delete(ctx, fmt.Sprintf("%s/lists/%s/tasks/%s", tasksBase, taskListID, taskID))
}

func (t Tasks) MoveTask(ctx context.Context, taskListID, taskID, parent, previous string) (map[string]any, error) {
	v := url.Values{}
	if parent != "" {
		v.Set("parent", parent)
	}
	if previous != "" {
		v.Set("previous", previous)
	}
	return t.c.PostEmpty(ctx, fmt.Sprintf("%s/lists/%s/tasks/%s/move%s", tasksBase, taskListID, taskID, query(v)))
}

func (t Tasks) ClearCompleted(ctx context.Context, taskListID string) (map[string]any, error) {
	return t.c.PostEmpty(ctx, fmt.Sprintf("%s/lists/%s/clear", tasksBase, taskListID))
}
