package storage

import (
	"context"
	"errors"

	"focusflow/internal/alert"
	"focusflow/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id string) error
	DeleteTasksByTitle(ctx context.Context, title string) (int, error)
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)

	GetAlertSettings(ctx context.Context) (alert.Settings, error)
	SaveAlertSettings(ctx context.Context, in alert.Settings) error
}
