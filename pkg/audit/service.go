package audit

import (
	"context"

	"github.com/eventhub-br/eventhub/pkg/model"
)

// Page is one page of audit entries, newest first.
// swagger:model
type Page struct {
	Entries    []model.AuditEntry `json:"entries"`
	TotalCount int64              `json:"totalCount"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
}

func NewService(repository *repository) *Service {
	return &Service{repository: repository}
}

type Service struct {
	repository *repository
}

// QueryByActor returns the actor's own entries, optionally filtered by
// action. Cross-user audit access is not exposed.
func (s Service) QueryByActor(ctx context.Context, actor *model.User, action string, page, pageSize int) (*Page, error) {
	entries, count, err := s.repository.findByActor(ctx, actor.ID, action, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &Page{
		Entries:    entries,
		TotalCount: count,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}
