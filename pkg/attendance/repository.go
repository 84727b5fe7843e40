package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// confirm records a presence decision for an enrolled user. The existing
// attendance row is locked for the duration of the transaction so two
// concurrent decisions for the same pair can't lose an update. When two
// callers race on the very first decision the unique index rejects the
// second insert, which is retried once as an update of the winner's row.
func (r repository) confirm(ctx context.Context, userId, eventId uint, present bool, adminId uint, now time.Time) (*model.Attendance, error) {
	attendance, err := r.tryConfirm(ctx, userId, eventId, present, adminId, now)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		attendance, err = r.tryConfirm(ctx, userId, eventId, present, adminId, now)
	}
	return attendance, err
}

func (r repository) tryConfirm(ctx context.Context, userId, eventId uint, present bool, adminId uint, now time.Time) (*model.Attendance, error) {
	var attendance model.Attendance

	errTx := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the enrollment must exist at the moment of the call, checked
		// inside the transaction so a concurrent cancellation can't slip in
		// between check and write
		var enrolled int64
		err := tx.
			Model(&model.Enrollment{}).
			Where("user_id = ? AND event_id = ?", userId, eventId).
			Count(&enrolled).Error
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %v", err)
		}
		if enrolled == 0 {
			return errdef.NewBadRequest("user %d is not enrolled in event %d", userId, eventId)
		}

		err = tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND event_id = ?", userId, eventId).
			First(&attendance).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			attendance = model.Attendance{
				UserID:  userId,
				EventID: eventId,
			}
		} else if err != nil {
			return err
		}

		attendance.Present = present
		if present {
			attendance.ConfirmedBy = &adminId
			attendance.ConfirmedAt = &now
		} else {
			// only the latest confirming actor and time are retained
			attendance.ConfirmedBy = nil
			attendance.ConfirmedAt = nil
		}

		return tx.Save(&attendance).Error
	})
	if errTx != nil {
		return nil, errTx
	}

	return &attendance, nil
}

// quickRegister creates the user, their enrollment and a confirmed
// attendance as one atomic unit. Either all three rows become visible or
// none of them do.
func (r repository) quickRegister(ctx context.Context, user *model.User, eventId, adminId uint, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&user).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errdef.NewDuplicated("user %q already exists", user.Email)
		}
		if err != nil {
			return err
		}

		enrollment := &model.Enrollment{
			UserID:  user.ID,
			EventID: eventId,
		}
		err = tx.Create(&enrollment).Error
		if err != nil {
			return err
		}

		attendance := &model.Attendance{
			UserID:      user.ID,
			EventID:     eventId,
			Present:     true,
			ConfirmedBy: &adminId,
			ConfirmedAt: &now,
		}
		return tx.Create(&attendance).Error
	})
}

func (r repository) findUserEvents(ctx context.Context, userId uint) ([]UserEvent, error) {
	var rows []UserEvent

	err := r.db.
		WithContext(ctx).
		Table("enrollments").
		Select("events.id AS event_id, events.name, events.starts_at, events.ends_at, events.location, events.category, COALESCE(attendances.present, false) AS present, attendances.confirmed_at").
		Joins("INNER JOIN events ON events.id = enrollments.event_id").
		Joins("LEFT JOIN attendances ON attendances.user_id = enrollments.user_id AND attendances.event_id = enrollments.event_id").
		Where("enrollments.user_id = ?", userId).
		Order("events.starts_at").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events of user %d: %v", userId, err)
	}

	return rows, nil
}

func (r repository) findEventAttendees(ctx context.Context, eventId uint) ([]Attendee, error) {
	var rows []Attendee

	err := r.db.
		WithContext(ctx).
		Table("enrollments").
		Select("users.id AS user_id, users.name, users.email, users.phone, COALESCE(attendances.present, false) AS present, attendances.confirmed_at").
		Joins("INNER JOIN users ON users.id = enrollments.user_id").
		Joins("LEFT JOIN attendances ON attendances.user_id = enrollments.user_id AND attendances.event_id = enrollments.event_id").
		Where("enrollments.event_id = ?", eventId).
		Order("users.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find attendees of event %d: %v", eventId, err)
	}

	return rows, nil
}
