package audit

import (
	"context"
	"fmt"

	"github.com/eventhub-br/eventhub/pkg/model"

	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(ctx context.Context, entry *model.AuditEntry) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r repository) findByActor(ctx context.Context, userId uint, action string, page, pageSize int) ([]model.AuditEntry, int64, error) {
	query := r.db.
		WithContext(ctx).
		Model(&model.AuditEntry{}).
		Where("user_id = ?", userId)
	if action != "" {
		query = query.Where("action = ?", action)
	}

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %v", err)
	}

	var entries []model.AuditEntry
	err = query.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find audit entries: %v", err)
	}

	return entries, count, nil
}
