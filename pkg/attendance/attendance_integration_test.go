package attendance_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/eventhub-br/eventhub/internal/middleware"
	"github.com/eventhub-br/eventhub/pkg/attendance"
	"github.com/eventhub-br/eventhub/pkg/audit"
	"github.com/eventhub-br/eventhub/pkg/enrollment"
	"github.com/eventhub-br/eventhub/pkg/event"
	"github.com/eventhub-br/eventhub/pkg/inttest"
	"github.com/eventhub-br/eventhub/pkg/model"
	"github.com/eventhub-br/eventhub/pkg/notification"
	"github.com/eventhub-br/eventhub/pkg/token"
	"github.com/eventhub-br/eventhub/pkg/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceHandler(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db := inttest.SetupDB(t)
	channel := inttest.SetupRabbitMQ(t)
	publisher, err := notification.NewPublisher(logger, channel)
	require.NoError(t, err, "failed to create publisher")

	auditRecorder := audit.NewRecorder(logger, audit.NewRepository(db))
	t.Cleanup(auditRecorder.Close)

	userService := user.NewService(user.NewRepository(db), publisher)
	eventService := event.NewService(event.NewRepository(db))
	enrollmentService := enrollment.NewService(enrollment.NewRepository(db), eventService, auditRecorder, publisher)
	attendanceService := attendance.NewService(attendance.NewRepository(db), eventService, userService, auditRecorder, publisher)

	err = user.CreateAdminUser(ctx, "admin@eventhub.com.br", "adminadmin1", userService)
	require.NoError(t, err, "failed to create admin user")
	admin, err := userService.FindByEmail(ctx, "admin@eventhub.com.br")
	require.NoError(t, err, "failed to find admin user")

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "failed to generate private key")
	tokenService := token.NewService(privateKey, 900)

	authentication := middleware.NewAuthentication(logger, tokenService, userService)
	authorization := middleware.NewAuthorization(logger)

	client := inttest.SetupHTTPServer(t, func(engine *gin.Engine) {
		group := engine.Group("")
		user.Routes(group, authentication, authorization, user.NewHandler(userService, tokenService, auditRecorder))
		attendance.Routes(group, authentication, authorization, attendance.NewHandler(attendanceService))
	})

	adminTokens, err := tokenService.IssueToken(admin)
	require.NoError(t, err, "failed to issue admin token")
	adminToken := adminTokens.AccessToken

	enrolledUser := func(t *testing.T, name, email string, e *model.Event) *model.User {
		u, err := userService.SignUp(ctx, user.SignUpInput{Name: name, Email: email, Password: "password123"})
		require.NoErrorf(t, err, "failed to sign up %q", email)
		_, err = enrollmentService.Enroll(ctx, u, e.ID, audit.RequestMeta{})
		require.NoErrorf(t, err, "failed to enroll %q", email)
		return u
	}
	createEvent := func(t *testing.T, name string) *model.Event {
		e, err := eventService.Create(ctx, event.CreateEventInput{
			Name:     name,
			StartsAt: time.Now().Add(24 * time.Hour),
			EndsAt:   time.Now().Add(26 * time.Hour),
		})
		require.NoErrorf(t, err, "failed to create event %q", name)
		return e
	}
	confirm := func(t *testing.T, body string, expectedStatus int) model.Attendance {
		responseBody := client.Do(t, http.MethodPost, "/attendances", strings.NewReader(body), expectedStatus,
			inttest.WithAuthToken(adminToken), inttest.WithHeader("Content-Type", "application/json"))
		var a model.Attendance
		if expectedStatus == http.StatusOK {
			require.NoError(t, json.Unmarshal(responseBody, &a))
		}
		return a
	}

	t.Run("AbsentDecisionClearsConfirmation", func(t *testing.T) {
		t.Parallel()

		e := createEvent(t, "Meetup")
		u := enrolledUser(t, "Maria", "maria.toggle@example.org", e)

		present := confirm(t, fmt.Sprintf(`{"userId": %d, "eventId": %d}`, u.ID, e.ID), http.StatusOK)
		require.True(t, present.Present, "a decision without an explicit flag confirms presence")
		require.NotNil(t, present.ConfirmedBy)
		assert.Equal(t, admin.ID, *present.ConfirmedBy)
		require.NotNil(t, present.ConfirmedAt)

		absent := confirm(t, fmt.Sprintf(`{"userId": %d, "eventId": %d, "present": false}`, u.ID, e.ID), http.StatusOK)
		require.False(t, absent.Present)
		assert.Nil(t, absent.ConfirmedBy)
		assert.Nil(t, absent.ConfirmedAt)

		var stored model.Attendance
		err := db.Where("user_id = ? AND event_id = ?", u.ID, e.ID).First(&stored).Error
		require.NoError(t, err)
		assert.Equal(t, present.ID, stored.ID, "decisions mutate the same row")
		assert.False(t, stored.Present)
		assert.Nil(t, stored.ConfirmedBy)
		assert.Nil(t, stored.ConfirmedAt)
	})

	t.Run("QuickRegisterCreatesEnrolledAndConfirmedUser", func(t *testing.T) {
		t.Parallel()

		e := createEvent(t, "Workshop")
		body := fmt.Sprintf(`{
			"name":    "Carlos",
			"email":   "carlos.quick@example.org",
			"phone":   "(11) 98765-4321",
			"eventId": %d
		}`, e.ID)

		var created model.User
		client.PostJSON(t, "/attendances/quick-register", strings.NewReader(body), &created, inttest.WithAuthToken(adminToken))
		require.Equal(t, "carlos.quick@example.org", created.Email)
		require.Empty(t, created.Password)

		var enrollments int64
		require.NoError(t, db.Model(&model.Enrollment{}).Where("user_id = ? AND event_id = ?", created.ID, e.ID).Count(&enrollments).Error)
		assert.Equal(t, int64(1), enrollments)
		var a model.Attendance
		require.NoError(t, db.Where("user_id = ? AND event_id = ?", created.ID, e.ID).First(&a).Error)
		assert.True(t, a.Present)
		require.NotNil(t, a.ConfirmedBy)
		assert.Equal(t, admin.ID, *a.ConfirmedBy)

		var tokens token.Tokens
		client.PostJSON(t, "/tokens", nil, &tokens, inttest.WithBasicAuth("carlos.quick@example.org", "senhatemporaria"))
		assert.NotEmpty(t, tokens.AccessToken, "the temporary password signs the new user in")
	})

	t.Run("QuickRegisterRollsBackOnDuplicateEmail", func(t *testing.T) {
		t.Parallel()

		e := createEvent(t, "Conference")
		existing, err := userService.SignUp(ctx, user.SignUpInput{Name: "Ana", Email: "ana.dup@example.org", Password: "password123"})
		require.NoError(t, err)

		body := fmt.Sprintf(`{"name": "Ana", "email": "ana.dup@example.org", "eventId": %d}`, e.ID)
		client.Do(t, http.MethodPost, "/attendances/quick-register", strings.NewReader(body), http.StatusConflict,
			inttest.WithAuthToken(adminToken), inttest.WithHeader("Content-Type", "application/json"))

		var enrollments, attendances int64
		require.NoError(t, db.Model(&model.Enrollment{}).Where("event_id = ?", e.ID).Count(&enrollments).Error)
		require.NoError(t, db.Model(&model.Attendance{}).Where("event_id = ?", e.ID).Count(&attendances).Error)
		assert.Zero(t, enrollments, "the failed registration leaves no enrollment behind")
		assert.Zero(t, attendances, "the failed registration leaves no attendance behind")

		var users int64
		require.NoError(t, db.Model(&model.User{}).Where("email = ?", existing.Email).Count(&users).Error)
		assert.Equal(t, int64(1), users)
	})
}
