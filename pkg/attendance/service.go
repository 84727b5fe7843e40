package attendance

import (
	"context"
	"time"

	"github.com/eventhub-br/eventhub/pkg/audit"
	"github.com/eventhub-br/eventhub/pkg/model"
	"github.com/eventhub-br/eventhub/pkg/notification"
)

// temporaryPassword is assigned to quick-registered users. They are
// expected to change it after their first sign in.
const temporaryPassword = "senhatemporaria"

// UserEvent is an event joined with the attendance status of one user.
type UserEvent struct {
	EventID     uint       `json:"eventId"`
	Name        string     `json:"name"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      time.Time  `json:"endsAt"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	Present     bool       `json:"present"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
}

// Attendee is a user enrolled in an event joined with their attendance
// status. Users who never had a presence decision appear as not present.
type Attendee struct {
	UserID      uint       `json:"userId"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Present     bool       `json:"present"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
}

type attendanceRepository interface {
	confirm(ctx context.Context, userId, eventId uint, present bool, adminId uint, now time.Time) (*model.Attendance, error)
	quickRegister(ctx context.Context, user *model.User, eventId, adminId uint, now time.Time) error
	findUserEvents(ctx context.Context, userId uint) ([]UserEvent, error)
	findEventAttendees(ctx context.Context, eventId uint) ([]Attendee, error)
}

type eventService interface {
	FindById(ctx context.Context, id uint) (*model.Event, error)
}

type userService interface {
	FindById(ctx context.Context, id uint) (*model.User, error)
	HashPassword(password string) (string, error)
}

type auditRecorder interface {
	Record(actor *model.User, action string, entityType string, entityID uint, details model.JSONMap, meta audit.RequestMeta)
}

type notifier interface {
	Notify(ctx context.Context, message notification.Message)
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(repository attendanceRepository, eventService eventService, userService userService, recorder auditRecorder, notifier notifier) *service {
	return &service{
		repository,
		eventService,
		userService,
		recorder,
		notifier,
	}
}

type service struct {
	repository   attendanceRepository
	eventService eventService
	userService  userService
	recorder     auditRecorder
	notifier     notifier
}

// Confirm records whether a user was present at an event. The decision is
// taken by admin and can be revised any number of times, the latest call
// wins.
func (s service) Confirm(ctx context.Context, admin *model.User, userId, eventId uint, present bool, meta audit.RequestMeta) (*model.Attendance, error) {
	user, err := s.userService.FindById(ctx, userId)
	if err != nil {
		return nil, err
	}

	event, err := s.eventService.FindById(ctx, eventId)
	if err != nil {
		return nil, err
	}

	attendance, err := s.repository.confirm(ctx, user.ID, event.ID, present, admin.ID, time.Now())
	if err != nil {
		return nil, err
	}

	s.recorder.Record(admin, model.ActionAttendanceRegister, "Attendance", attendance.ID, model.JSONMap{
		"userId":  user.ID,
		"eventId": event.ID,
		"present": present,
	}, meta)

	return attendance, nil
}

type QuickRegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Document string
	EventID  uint
}

// QuickRegister signs up a walk-in participant at the venue. The user is
// created with a temporary password and comes out enrolled and confirmed
// present in a single atomic operation.
func (s service) QuickRegister(ctx context.Context, admin *model.User, input QuickRegisterInput, meta audit.RequestMeta) (*model.User, error) {
	event, err := s.eventService.FindById(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	password, err := s.userService.HashPassword(temporaryPassword)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: password,
		Role:     model.RoleUser,
		Active:   true,
		Phone:    stripNonDigits(input.Phone),
		Document: stripNonDigits(input.Document),
	}

	err = s.repository.quickRegister(ctx, user, event.ID, admin.ID, time.Now())
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notification.Message{
		Kind:          notification.KindEnrollmentConfirmed,
		UserName:      user.Name,
		UserEmail:     user.Email,
		EventName:     event.Name,
		EventStartsAt: event.StartsAt,
		EventLocation: event.Location,
	})
	s.recorder.Record(admin, model.ActionUserQuickRegister, "User", user.ID, model.JSONMap{
		"email":   user.Email,
		"eventId": event.ID,
	}, meta)

	return user, nil
}

// ListUserEvents returns every event a user is enrolled in along with
// their attendance status. Events deactivated after enrollment are still
// listed.
func (s service) ListUserEvents(ctx context.Context, userId uint) ([]UserEvent, error) {
	_, err := s.userService.FindById(ctx, userId)
	if err != nil {
		return nil, err
	}
	return s.repository.findUserEvents(ctx, userId)
}

// ListEventAttendees returns every user enrolled in an event along with
// their attendance status.
func (s service) ListEventAttendees(ctx context.Context, eventId uint) ([]Attendee, error) {
	_, err := s.eventService.FindById(ctx, eventId)
	if err != nil {
		return nil, err
	}
	return s.repository.findEventAttendees(ctx, eventId)
}

func stripNonDigits(value string) string {
	digits := make([]rune, 0, len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	return string(digits)
}
