package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventhub-br/eventhub/internal/errdef"
	"github.com/eventhub-br/eventhub/pkg/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(ctx context.Context, e *model.Event) error {
	e.Slug = slug.Make(e.Name)
	return r.db.WithContext(ctx).Create(&e).Error
}

func (r repository) save(ctx context.Context, e *model.Event) error {
	e.Slug = slug.Make(e.Name)
	return r.db.WithContext(ctx).Save(&e).Error
}

func (r repository) findById(ctx context.Context, id uint) (*model.Event, error) {
	var e *model.Event
	err := r.db.
		WithContext(ctx).
		First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find event with id %d", id)
	}
	return e, err
}

func (r repository) findAllActive(ctx context.Context) ([]*model.Event, error) {
	var events []*model.Event

	err := r.db.
		WithContext(ctx).
		Where("active = ?", true).
		Order("starts_at").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all events: %v", err)
	}

	return events, nil
}
