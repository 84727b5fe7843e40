package audit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/eventhub-br/eventhub/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	actor := &model.User{ID: 7}

	t.Run("PersistsEntriesInOrder", func(t *testing.T) {
		t.Parallel()

		store := &storeSpy{}
		recorder := NewRecorder(logger, store)

		for i := 0; i < 5; i++ {
			recorder.Record(actor, fmt.Sprintf("ACTION_%d", i), "", 0, nil, RequestMeta{})
		}
		recorder.Close()

		entries := store.created()
		require.Len(t, entries, 5)
		for i, entry := range entries {
			assert.Equal(t, fmt.Sprintf("ACTION_%d", i), entry.Action)
			assert.Equal(t, uint(7), entry.UserID)
		}
	})

	t.Run("OmitsEntityWhenNotGiven", func(t *testing.T) {
		t.Parallel()

		store := &storeSpy{}
		recorder := NewRecorder(logger, store)

		recorder.Record(actor, "USER_LOGIN", "", 0, nil, RequestMeta{IPAddress: "10.0.0.1", UserAgent: "curl"})
		recorder.Close()

		entries := store.created()
		require.Len(t, entries, 1)
		assert.Nil(t, entries[0].EntityType)
		assert.Nil(t, entries[0].EntityID)
		assert.Equal(t, "10.0.0.1", entries[0].IPAddress)
		assert.Equal(t, "curl", entries[0].UserAgent)
		assert.NotNil(t, entries[0].Details)
	})

	t.Run("KeepsEntityReference", func(t *testing.T) {
		t.Parallel()

		store := &storeSpy{}
		recorder := NewRecorder(logger, store)

		recorder.Record(actor, "EVENT_INSCRIPTION", "Event", 3, model.JSONMap{"eventName": "GopherCon"}, RequestMeta{})
		recorder.Close()

		entries := store.created()
		require.Len(t, entries, 1)
		require.NotNil(t, entries[0].EntityType)
		assert.Equal(t, "Event", *entries[0].EntityType)
		require.NotNil(t, entries[0].EntityID)
		assert.Equal(t, uint(3), *entries[0].EntityID)
	})

	t.Run("StoreFailureDoesNotPropagate", func(t *testing.T) {
		t.Parallel()

		store := &storeSpy{err: errors.New("connection refused")}
		recorder := NewRecorder(logger, store)

		recorder.Record(actor, "USER_LOGIN", "", 0, nil, RequestMeta{})
		recorder.Close()

		require.Len(t, store.created(), 1)
	})
}

type storeSpy struct {
	mu      sync.Mutex
	entries []*model.AuditEntry
	err     error
}

func (s *storeSpy) create(_ context.Context, entry *model.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return s.err
}

func (s *storeSpy) created() []*model.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries
}
