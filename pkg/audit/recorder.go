// Package audit maintains the append-only trail of sensitive actions.
// Writes happen off the request path through a single worker, which keeps
// entries for the same actor visible in the order their actions were
// accepted. A failed or dropped audit write never fails the action that
// triggered it.
package audit

import (
	"context"
	"log/slog"

	"github.com/eventhub-br/eventhub/pkg/model"

	"github.com/gin-gonic/gin"
)

// RequestMeta carries the origin details recorded alongside an entry.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// GetRequestMeta extracts the origin details of the current request.
func GetRequestMeta(c *gin.Context) RequestMeta {
	return RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

type store interface {
	create(ctx context.Context, entry *model.AuditEntry) error
}

func NewRecorder(logger *slog.Logger, store store) *Recorder {
	r := &Recorder{
		logger:  logger,
		store:   store,
		entries: make(chan *model.AuditEntry, 1024),
		done:    make(chan struct{}),
	}
	go r.work()
	return r
}

type Recorder struct {
	logger  *slog.Logger
	store   store
	entries chan *model.AuditEntry
	done    chan struct{}
}

// Record enqueues one entry and returns immediately. When the buffer is full
// the entry is dropped with an error log instead of blocking the request.
func (r *Recorder) Record(actor *model.User, action string, entityType string, entityID uint, details model.JSONMap, meta RequestMeta) {
	if details == nil {
		details = model.JSONMap{}
	}

	entry := &model.AuditEntry{
		UserID:    actor.ID,
		Action:    action,
		Details:   details,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
	if entityType != "" {
		entry.EntityType = &entityType
		entry.EntityID = &entityID
	}

	select {
	case r.entries <- entry:
	default:
		r.logger.Error("Audit queue full, dropping entry", "action", action, "user", actor.ID)
	}
}

func (r *Recorder) work() {
	defer close(r.done)
	for entry := range r.entries {
		err := r.store.create(context.Background(), entry)
		if err != nil {
			r.logger.Error("Failed to persist audit entry", "action", entry.Action, "user", entry.UserID, "error", err)
		}
	}
}

// Close drains outstanding entries and stops the worker.
func (r *Recorder) Close() {
	close(r.entries)
	<-r.done
}
