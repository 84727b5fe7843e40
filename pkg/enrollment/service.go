package enrollment

import (
	"context"

	"github.com/eventhub-br/eventhub/internal/errdef"
	"github.com/eventhub-br/eventhub/pkg/audit"
	"github.com/eventhub-br/eventhub/pkg/model"
	"github.com/eventhub-br/eventhub/pkg/notification"
)

func NewService(repository enrollmentRepository, eventService eventService, recorder auditRecorder, notifier notifier) *Service {
	return &Service{
		repository:   repository,
		eventService: eventService,
		recorder:     recorder,
		notifier:     notifier,
	}
}

type enrollmentRepository interface {
	enroll(ctx context.Context, userId, eventId uint) (*model.Enrollment, error)
	exists(ctx context.Context, userId, eventId uint) (bool, error)
	delete(ctx context.Context, userId, eventId uint) error
	findActiveEventsByUser(ctx context.Context, userId uint) ([]*model.Event, error)
	findConfirmedEventsByUser(ctx context.Context, userId uint) ([]*model.Event, error)
}

type eventService interface {
	FindById(ctx context.Context, id uint) (*model.Event, error)
}

type auditRecorder interface {
	Record(actor *model.User, action string, entityType string, entityID uint, details model.JSONMap, meta audit.RequestMeta)
}

type notifier interface {
	Notify(ctx context.Context, message notification.Message)
}

type Service struct {
	repository   enrollmentRepository
	eventService eventService
	recorder     auditRecorder
	notifier     notifier
}

// Enroll admits the user into the event, subject to the event being active,
// the user not already being enrolled and the capacity not being reached.
// The notification and the audit entry are side effects, they never fail the
// enrollment.
func (s Service) Enroll(ctx context.Context, user *model.User, eventId uint, meta audit.RequestMeta) (*model.Event, error) {
	e, err := s.eventService.FindById(ctx, eventId)
	if err != nil {
		return nil, err
	}

	if !e.Active {
		return nil, errdef.NewBadRequest("event %q is not active", e.Name)
	}

	// optimization only, the unique index decides races
	enrolled, err := s.repository.exists(ctx, user.ID, eventId)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, errdef.NewDuplicated("user %d is already enrolled in event %d", user.ID, eventId)
	}

	_, err = s.repository.enroll(ctx, user.ID, eventId)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notification.Message{
		Kind:          notification.KindEnrollmentConfirmed,
		UserName:      user.Name,
		UserEmail:     user.Email,
		EventName:     e.Name,
		EventStartsAt: e.StartsAt,
		EventLocation: e.Location,
	})
	s.recorder.Record(user, model.ActionEventInscription, "Event", e.ID, model.JSONMap{"eventName": e.Name}, meta)

	return e, nil
}

// Cancel removes the enrollment. Any attendance row for the same pair is
// deliberately left untouched.
func (s Service) Cancel(ctx context.Context, user *model.User, eventId uint, meta audit.RequestMeta) error {
	e, err := s.eventService.FindById(ctx, eventId)
	if err != nil {
		return err
	}

	err = s.repository.delete(ctx, user.ID, eventId)
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, notification.Message{
		Kind:      notification.KindEnrollmentCancelled,
		UserName:  user.Name,
		UserEmail: user.Email,
		EventName: e.Name,
	})
	s.recorder.Record(user, model.ActionEventUninscribe, "Event", e.ID, model.JSONMap{"eventName": e.Name}, meta)

	return nil
}

// ListEnrolled returns the active events the user is enrolled in.
func (s Service) ListEnrolled(ctx context.Context, user *model.User) ([]*model.Event, error) {
	return s.repository.findActiveEventsByUser(ctx, user.ID)
}

// ListConfirmed returns the active events the user has a confirmed presence
// at.
func (s Service) ListConfirmed(ctx context.Context, user *model.User) ([]*model.Event, error) {
	return s.repository.findConfirmedEventsByUser(ctx, user.ID)
}
