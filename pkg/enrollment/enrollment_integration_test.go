package enrollment_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
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

func TestEnrollmentHandler(t *testing.T) {
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
		enrollment.Routes(group, authentication, enrollment.NewHandler(enrollmentService))
		attendance.Routes(group, authentication, authorization, attendance.NewHandler(attendanceService))
	})

	signUp := func(t *testing.T, name, email string) *model.User {
		u, err := userService.SignUp(ctx, user.SignUpInput{Name: name, Email: email, Password: "password123"})
		require.NoErrorf(t, err, "failed to sign up %q", email)
		return u
	}
	bearerToken := func(t *testing.T, u *model.User) string {
		tokens, err := tokenService.IssueToken(u)
		require.NoErrorf(t, err, "failed to issue token for %q", u.Email)
		return tokens.AccessToken
	}
	createEvent := func(t *testing.T, name string, capacity *int) *model.Event {
		e, err := eventService.Create(ctx, event.CreateEventInput{
			Name:     name,
			StartsAt: time.Now().Add(24 * time.Hour),
			EndsAt:   time.Now().Add(26 * time.Hour),
			Capacity: capacity,
		})
		require.NoErrorf(t, err, "failed to create event %q", name)
		return e
	}

	adminToken := bearerToken(t, admin)

	t.Run("EnrollTwiceReportsConflict", func(t *testing.T) {
		t.Parallel()

		u := signUp(t, "Maria", "maria.enroll@example.org")
		e := createEvent(t, "Meetup", nil)
		userToken := bearerToken(t, u)
		path := fmt.Sprintf("/events/%d/enrollments", e.ID)

		var enrolled model.Enrollment
		client.PostJSON(t, path, nil, &enrolled, inttest.WithAuthToken(userToken))
		require.Equal(t, u.ID, enrolled.UserID)
		require.Equal(t, e.ID, enrolled.EventID)

		client.Do(t, http.MethodPost, path, nil, http.StatusConflict, inttest.WithAuthToken(userToken))

		var count int64
		err := db.Model(&model.Enrollment{}).Where("event_id = ?", e.ID).Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("ConcurrentAdmissionNeverExceedsCapacity", func(t *testing.T) {
		t.Parallel()

		capacity := 1
		e := createEvent(t, "Workshop", &capacity)
		first := signUp(t, "João", "joao.race@example.org")
		second := signUp(t, "Ana", "ana.race@example.org")
		path := fmt.Sprintf("/events/%d/enrollments", e.ID)

		statuses := make(chan int, 2)
		for _, userToken := range []string{bearerToken(t, first), bearerToken(t, second)} {
			go func(userToken string) {
				req, err := http.NewRequest(http.MethodPost, client.ServerURL+path, nil)
				if err != nil {
					statuses <- 0
					return
				}
				req.Header.Set("Authorization", "Bearer "+userToken)
				res, err := client.Client.Do(req)
				if err != nil {
					statuses <- 0
					return
				}
				_ = res.Body.Close()
				statuses <- res.StatusCode
			}(userToken)
		}

		got := []int{<-statuses, <-statuses}
		sort.Ints(got)
		require.Equal(t, []int{http.StatusCreated, http.StatusConflict}, got, "one seat admits exactly one of two racing users")

		var count int64
		err := db.Model(&model.Enrollment{}).Where("event_id = ?", e.ID).Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("AttendanceSurvivesCancellation", func(t *testing.T) {
		t.Parallel()

		u := signUp(t, "Pedro", "pedro.cancel@example.org")
		e := createEvent(t, "Conference", nil)
		userToken := bearerToken(t, u)
		path := fmt.Sprintf("/events/%d/enrollments", e.ID)

		client.Post(t, path, nil, inttest.WithAuthToken(userToken))

		confirmBody := fmt.Sprintf(`{"userId": %d, "eventId": %d, "present": true}`, u.ID, e.ID)
		body := client.Do(t, http.MethodPost, "/attendances", strings.NewReader(confirmBody), http.StatusOK,
			inttest.WithAuthToken(adminToken), inttest.WithHeader("Content-Type", "application/json"))
		var confirmed model.Attendance
		require.NoError(t, json.Unmarshal(body, &confirmed))
		require.True(t, confirmed.Present)

		client.Delete(t, path, inttest.WithAuthToken(userToken))

		var count int64
		err := db.Model(&model.Attendance{}).Where("user_id = ? AND event_id = ?", u.ID, e.ID).Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "the attendance row outlives the enrollment")

		// a new decision needs a live enrollment
		client.Do(t, http.MethodPost, "/attendances", strings.NewReader(confirmBody), http.StatusBadRequest,
			inttest.WithAuthToken(adminToken), inttest.WithHeader("Content-Type", "application/json"))
	})
}
