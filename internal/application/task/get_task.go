package task

import (
	"context"

	"github.com/danispp/Task-Management/internal/application/ownership"
	"github.com/danispp/Task-Management/internal/domain"
)

type GetTask struct {
	guard *ownership.Guard
}

func NewGetTask(guard *ownership.Guard) *GetTask {
	return &GetTask{guard: guard}
}

func (uc *GetTask) Execute(ctx context.Context, userID domain.UserID, taskID domain.TaskID) (*domain.TaskView, error) {
	return uc.guard.Task(ctx, userID, taskID)
}
