package task

import (
	"context"

	"github.com/danispp/Task-Management/internal/application/ownership"
	"github.com/danispp/Task-Management/internal/application/ports"
	"github.com/danispp/Task-Management/internal/domain"
	domerrors "github.com/danispp/Task-Management/internal/domain/errors"
)

type DeleteTask struct {
	tx    ports.Transactor
	guard *ownership.Guard
	tasks ports.TaskRepository
}

func NewDeleteTask(tx ports.Transactor, guard *ownership.Guard, tasks ports.TaskRepository) *DeleteTask {
	return &DeleteTask{tx: tx, guard: guard, tasks: tasks}
}

func (uc *DeleteTask) Execute(ctx context.Context, userID domain.UserID, taskID domain.TaskID) error {
	return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.guard.Task(ctx, userID, taskID); err != nil {
			return err
		}
		ok, err := uc.tasks.Delete(ctx, userID, taskID)
		if err != nil {
			return err
		}
		if !ok {
			return domerrors.ErrTaskNotFound
		}
		return nil
	})
}
