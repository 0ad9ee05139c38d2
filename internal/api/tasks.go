package api

import (
	"context"

	"github.com/pakaura/paktui/internal/model"
)

// TaskList is the collection response from GET /tasks, in server order.
type TaskList struct {
	Tasks []model.Task `json:"tasks"`
	Count int          `json:"count"`
}

type createTaskRequest struct {
	Title string `json:"title"`
}

// UpdateTaskRequest carries a partial update; nil fields are omitted.
type UpdateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (c *Client) ListTasks(ctx context.Context) (TaskList, error) {
	var list TaskList
	err := c.get(ctx, "/api/v1/tasks", &list)
	return list, err
}

func (c *Client) CreateTask(ctx context.Context, title string) (model.Task, error) {
	var task model.Task
	err := c.post(ctx, "/api/v1/tasks", createTaskRequest{Title: title}, &task)
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (model.Task, error) {
	var task model.Task
	err := c.patch(ctx, "/api/v1/tasks/"+id, req, &task)
	return task, err
}

func (c *Client) CompleteTask(ctx context.Context, id string) (model.Task, error) {
	var task model.Task
	err := c.post(ctx, "/api/v1/tasks/"+id+"/complete", nil, &task)
	return task, err
}

func (c *Client) UncompleteTask(ctx context.Context, id string) (model.Task, error) {
	var task model.Task
	err := c.post(ctx, "/api/v1/tasks/"+id+"/uncomplete", nil, &task)
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/v1/tasks/"+id, nil)
}
