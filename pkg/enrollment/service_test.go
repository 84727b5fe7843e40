package enrollment

import (
	"context"
	"testing"
	"time"

	"github.com/eventhub-br/eventhub/internal/errdef"
	"github.com/eventhub-br/eventhub/pkg/audit"
	"github.com/eventhub-br/eventhub/pkg/model"
	"github.com/eventhub-br/eventhub/pkg/notification"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnroll(t *testing.T) {
	t.Parallel()

	user := &model.User{ID: 7, Name: "Maria", Email: "maria@example.org"}
	meta := audit.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"}

	t.Run("EnrollsAndNotifies", func(t *testing.T) {
		t.Parallel()

		event := &model.Event{ID: 3, Name: "GopherCon", Active: true, StartsAt: time.Now(), Location: "Remote"}
		events := &mockEventService{}
		events.On("FindById", mock.Anything, uint(3)).Return(event, nil)

		repository := &mockRepository{}
		repository.On("exists", mock.Anything, uint(7), uint(3)).Return(false, nil)
		repository.On("enroll", mock.Anything, uint(7), uint(3)).Return(&model.Enrollment{ID: 1, UserID: 7, EventID: 3}, nil)

		notifier := &mockNotifier{}
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(m notification.Message) bool {
			return m.Kind == notification.KindEnrollmentConfirmed && m.UserEmail == "maria@example.org"
		}))

		recorder := &mockRecorder{}
		recorder.On("Record", user, model.ActionEventInscription, "Event", uint(3), mock.Anything, meta)

		service := NewService(repository, events, recorder, notifier)

		enrolledEvent, err := service.Enroll(context.Background(), user, 3, meta)

		require.NoError(t, err)
		require.Equal(t, event, enrolledEvent)
		repository.AssertExpectations(t)
		notifier.AssertExpectations(t)
		recorder.AssertExpectations(t)
	})

	t.Run("FailsIfEventNotFound", func(t *testing.T) {
		t.Parallel()

		events := &mockEventService{}
		events.On("FindById", mock.Anything, uint(99)).Return((*model.Event)(nil), errdef.NewNotFound("event %d not found", 99))

		service := NewService(&mockRepository{}, events, &mockRecorder{}, &mockNotifier{})

		_, err := service.Enroll(context.Background(), user, 99, meta)

		require.ErrorContains(t, err, "event 99 not found")
		require.True(t, errdef.IsNotFound(err))
	})

	t.Run("FailsIfEventInactive", func(t *testing.T) {
		t.Parallel()

		event := &model.Event{ID: 3, Name: "GopherCon", Active: false}
		events := &mockEventService{}
		events.On("FindById", mock.Anything, uint(3)).Return(event, nil)

		service := NewService(&mockRepository{}, events, &mockRecorder{}, &mockNotifier{})

		_, err := service.Enroll(context.Background(), user, 3, meta)

		require.ErrorContains(t, err, "not active")
		require.True(t, errdef.IsBadRequest(err))
	})

	t.Run("FailsIfAlreadyEnrolled", func(t *testing.T) {
		t.Parallel()

		event := &model.Event{ID: 3, Name: "GopherCon", Active: true}
		events := &mockEventService{}
		events.On("FindById", mock.Anything, uint(3)).Return(event, nil)

		repository := &mockRepository{}
		repository.On("exists", mock.Anything, uint(7), uint(3)).Return(true, nil)

		service := NewService(repository, events, &mockRecorder{}, &mockNotifier{})

		_, err := service.Enroll(context.Background(), user, 3, meta)

		require.True(t, errdef.IsDuplicated(err))
		repository.AssertNotCalled(t, "enroll", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PropagatesCapacityConflict", func(t *testing.T) {
		t.Parallel()

		event := &model.Event{ID: 3, Name: "GopherCon", Active: true}
		events := &mockEventService{}
		events.On("FindById", mock.Anything, uint(3)).Return(event, nil)

		repository := &mockRepository{}
		repository.On("exists", mock.Anything, uint(7), uint(3)).Return(false, nil)
		repository.On("enroll", mock.Anything, uint(7), uint(3)).Return((*model.Enrollment)(nil), errdef.NewConflict("event %q reached its capacity of %d", "GopherCon", 100))

		notifier := &mockNotifier{}
		service := NewService(repository, events, &mockRecorder{}, notifier)

		_, err := service.Enroll(context.Background(), user, 3, meta)

		require.True(t, errdef.IsConflict(err))
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func TestCancel(t *testing.T) {
	t.Parallel()

	user := &model.User{ID: 7, Name: "Maria", Email: "maria@example.org"}
	meta := audit.RequestMeta{}

	t.Run("CancelsAndNotifies", func(t *testing.T) {
		t.Parallel()

		event := &model.Event{ID: 3, Name: "GopherCon", Active: true}
		events := &mockEventService{}
		events.On("FindById", mock.Anything, uint(3)).Return(event, nil)

		repository := &mockRepository{}
		repository.On("delete", mock.Anything, uint(7), uint(3)).Return(nil)

		notifier := &mockNotifier{}
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(m notification.Message) bool {
			return m.Kind == notification.KindEnrollmentCancelled
		}))

		recorder := &mockRecorder{}
		recorder.On("Record", user, model.ActionEventUninscribe, "Event", uint(3), mock.Anything, meta)

		service := NewService(repository, events, recorder, notifier)

		err := service.Cancel(context.Background(), user, 3, meta)

		require.NoError(t, err)
		repository.AssertExpectations(t)
		notifier.AssertExpectations(t)
		recorder.AssertExpectations(t)
	})

	t.Run("FailsIfNotEnrolled", func(t *testing.T) {
		t.Parallel()

		event := &model.Event{ID: 3, Name: "GopherCon", Active: true}
		events := &mockEventService{}
		events.On("FindById", mock.Anything, uint(3)).Return(event, nil)

		repository := &mockRepository{}
		repository.On("delete", mock.Anything, uint(7), uint(3)).Return(errdef.NewNotFound("user %d is not enrolled in event %d", 7, 3))

		notifier := &mockNotifier{}
		service := NewService(repository, events, &mockRecorder{}, notifier)

		err := service.Cancel(context.Background(), user, 3, meta)

		require.True(t, errdef.IsNotFound(err))
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) enroll(ctx context.Context, userId, eventId uint) (*model.Enrollment, error) {
	args := m.Called(ctx, userId, eventId)
	return args.Get(0).(*model.Enrollment), args.Error(1)
}

func (m *mockRepository) exists(ctx context.Context, userId, eventId uint) (bool, error) {
	args := m.Called(ctx, userId, eventId)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) delete(ctx context.Context, userId, eventId uint) error {
	args := m.Called(ctx, userId, eventId)
	return args.Error(0)
}

func (m *mockRepository) findActiveEventsByUser(ctx context.Context, userId uint) ([]*model.Event, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *mockRepository) findConfirmedEventsByUser(ctx context.Context, userId uint) ([]*model.Event, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]*model.Event), args.Error(1)
}

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) FindById(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*model.Event), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(actor *model.User, action string, entityType string, entityID uint, details model.JSONMap, meta audit.RequestMeta) {
	m.Called(actor, action, entityType, entityID, details, meta)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, message notification.Message) {
	m.Called(ctx, message)
}
