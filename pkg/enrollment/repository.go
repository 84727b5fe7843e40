package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventhub-br/eventhub/internal/errdef"
	"github.com/eventhub-br/eventhub/pkg/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

// enroll admits the user into the event. The event row is locked for the
// duration of the transaction so two concurrent admissions can't both read
// "one seat left", and the composite unique index on (user_id, event_id) is
// the authoritative guard against double enrollment.
func (r repository) enroll(ctx context.Context, userId, eventId uint) (*model.Enrollment, error) {
	var enrollment *model.Enrollment

	errTx := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e *model.Event
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&e, eventId).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errdef.NewNotFound("failed to find event with id %d", eventId)
			}
			return err
		}

		if e.Capacity != nil {
			var count int64
			err := tx.
				Model(&model.Enrollment{}).
				Where("event_id = ?", eventId).
				Count(&count).Error
			if err != nil {
				return fmt.Errorf("failed to count enrollments for event %d: %v", eventId, err)
			}

			if count >= int64(*e.Capacity) {
				return errdef.NewConflict("event %q reached its capacity of %d", e.Name, *e.Capacity)
			}
		}

		enrollment = &model.Enrollment{
			UserID:  userId,
			EventID: eventId,
		}
		err = tx.Create(&enrollment).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errdef.NewDuplicated("user %d is already enrolled in event %d", userId, eventId)
		}
		return err
	})
	if errTx != nil {
		return nil, errTx
	}

	return enrollment, nil
}

func (r repository) exists(ctx context.Context, userId, eventId uint) (bool, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("user_id = ? AND event_id = ?", userId, eventId).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %v", err)
	}
	return count > 0, nil
}

func (r repository) delete(ctx context.Context, userId, eventId uint) error {
	db := r.db.
		WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userId, eventId).
		Delete(&model.Enrollment{})
	if db.Error != nil {
		return fmt.Errorf("failed to delete enrollment: %v", db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find enrollment of user %d in event %d", userId, eventId)
	}

	return nil
}

// findActiveEventsByUser filters inactive events at read time rather than
// denormalizing the active flag onto enrollments.
func (r repository) findActiveEventsByUser(ctx context.Context, userId uint) ([]*model.Event, error) {
	var events []*model.Event

	err := r.db.
		WithContext(ctx).
		Joins("INNER JOIN enrollments ON enrollments.event_id = events.id").
		Where("enrollments.user_id = ? AND events.active = ?", userId, true).
		Order("events.starts_at").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find enrolled events: %v", err)
	}

	return events, nil
}

func (r repository) findConfirmedEventsByUser(ctx context.Context, userId uint) ([]*model.Event, error) {
	var events []*model.Event

	err := r.db.
		WithContext(ctx).
		Joins("INNER JOIN attendances ON attendances.event_id = events.id").
		Where("attendances.user_id = ? AND attendances.present = ? AND events.active = ?", userId, true, true).
		Order("events.starts_at").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find confirmed events: %v", err)
	}

	return events, nil
}
