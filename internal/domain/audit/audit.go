// Package audit keeps a per-tenant log of writes made through the data
// store resources.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hrerp/internal/platform/datastore"
	"hrerp/internal/platform/querier"
	"hrerp/internal/requestctx"
)

type Event struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Filter struct {
	Action     string
	EntityType string
	EntityID   string
	ActorID    string
}

func (f Filter) filters() []datastore.Filter {
	var out []datastore.Filter
	if f.Action != "" {
		out = append(out, datastore.Eq("action", f.Action))
	}
	if f.EntityType != "" {
		out = append(out, datastore.Eq("entity_type", f.EntityType))
	}
	if f.EntityID != "" {
		out = append(out, datastore.Eq("entity_id", f.EntityID))
	}
	if f.ActorID != "" {
		out = append(out, datastore.Eq("actor_id", f.ActorID))
	}
	return out
}

type Service struct {
	events *datastore.Table[Event]
	logger *slog.Logger
}

func NewService(db querier.Querier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{events: datastore.NewTable(db, eventSchema()), logger: logger}
}

func eventSchema() datastore.Schema[Event] {
	return datastore.Schema[Event]{
		Table: "audit_events",
		Columns: []datastore.Column{
			{Name: "id", Expr: "id::text"},
			{Name: "actor_id", Writable: true},
			{Name: "action", Writable: true},
			{Name: "entity_type", Writable: true},
			{Name: "entity_id", Writable: true},
			{Name: "request_id", Writable: true},
			{Name: "after_json", Writable: true},
			{Name: "created_at"},
		},
		Scan: func(row datastore.Scanner) (Event, error) {
			var e Event
			var after []byte
			err := row.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.RequestID, &after, &e.CreatedAt)
			if len(after) > 0 {
				e.After = after
			}
			return e, err
		},
		Values: func(e Event) []any {
			var after any
			if len(e.After) > 0 {
				after = []byte(e.After)
			}
			return []any{e.ActorID, e.Action, e.EntityType, e.EntityID, e.RequestID, after}
		},
	}
}

// Record stores one event. Actor and request id are taken from ctx when
// the event does not carry them.
func (s *Service) Record(ctx context.Context, tenantID string, e Event) (Event, error) {
	if e.ActorID == "" {
		if user, ok := requestctx.GetUser(ctx); ok {
			e.ActorID = user.UserID
		}
	}
	if e.RequestID == "" {
		e.RequestID = requestctx.GetRequestID(ctx)
	}
	return s.events.Insert(ctx, tenantID, e)
}

// Observer returns a datastore.Observer that records every change. A
// failed insert is logged and does not fail the write it describes.
func (s *Service) Observer() datastore.Observer {
	return func(ctx context.Context, tenantID string, c datastore.Change) {
		e := Event{Action: c.Action, EntityType: c.Table, EntityID: c.ID}
		if c.After != nil {
			payload, err := json.Marshal(c.After)
			if err != nil {
				s.logger.Warn("audit payload encode failed", "table", c.Table, "err", err)
			} else {
				e.After = payload
				if e.EntityID == "" {
					e.EntityID = idOf(payload)
				}
			}
		}
		if _, err := s.Record(ctx, tenantID, e); err != nil {
			s.logger.Warn("audit record failed",
				"table", c.Table,
				"action", c.Action,
				"entity_id", e.EntityID,
				"request_id", requestctx.GetRequestID(ctx),
				"err", err,
			)
		}
	}
}

func (s *Service) List(ctx context.Context, tenantID string, filter Filter, limit, offset int) ([]Event, error) {
	return s.events.List(ctx, tenantID, datastore.Query{
		Filters: filter.filters(),
		OrderBy: []datastore.Order{datastore.Desc("created_at")},
		Limit:   limit,
		Offset:  offset,
	})
}

func (s *Service) Count(ctx context.Context, tenantID string, filter Filter) (int, error) {
	return s.events.Count(ctx, tenantID, filter.filters()...)
}

func idOf(payload []byte) string {
	var row struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &row); err != nil {
		return ""
	}
	return row.ID
}
