package datastore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Validator normalizes and checks a row before it is written. id is empty
// on create.
type Validator[T any] func(ctx context.Context, tenantID, id string, item T) (T, error)

// Change describes a successful write. After is nil for deletes.
type Change struct {
	Action string
	Table  string
	ID     string
	After  any
}

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Observer is told about every write that reached the table.
type Observer func(ctx context.Context, tenantID string, c Change)

// Resource is a Table whose full-row writes pass a validator first.
type Resource[T any] struct {
	table     *Table[T]
	validate  Validator[T]
	observers []Observer
}

func NewResource[T any](table *Table[T], validate Validator[T]) *Resource[T] {
	return &Resource[T]{table: table, validate: validate}
}

func (r *Resource[T]) Table() *Table[T] {
	return r.table
}

// Observe registers fn for later writes. Not safe to call once the
// resource is serving requests.
func (r *Resource[T]) Observe(fn Observer) {
	r.observers = append(r.observers, fn)
}

func (r *Resource[T]) notify(ctx context.Context, tenantID string, c Change) {
	c.Table = r.table.Name()
	for _, fn := range r.observers {
		fn(ctx, tenantID, c)
	}
}

func (r *Resource[T]) List(ctx context.Context, tenantID string, q Query) ([]T, error) {
	return r.table.List(ctx, tenantID, q)
}

func (r *Resource[T]) Get(ctx context.Context, tenantID, id string) (T, error) {
	return r.table.Get(ctx, tenantID, id)
}

func (r *Resource[T]) Create(ctx context.Context, tenantID string, item T) (T, error) {
	item, err := r.check(ctx, tenantID, "", item)
	if err != nil {
		var zero T
		return zero, err
	}
	created, err := r.table.Insert(ctx, tenantID, item)
	if err != nil {
		return created, err
	}
	r.notify(ctx, tenantID, Change{Action: ActionCreate, After: created})
	return created, nil
}

func (r *Resource[T]) Replace(ctx context.Context, tenantID, id string, item T) (T, error) {
	item, err := r.check(ctx, tenantID, id, item)
	if err != nil {
		var zero T
		return zero, err
	}
	updated, err := r.table.Replace(ctx, tenantID, id, item)
	if err != nil {
		return updated, err
	}
	r.notify(ctx, tenantID, Change{Action: ActionUpdate, ID: id, After: updated})
	return updated, nil
}

// Update applies a partial change without running the validator. Callers
// use it for single-column writes they have already checked.
func (r *Resource[T]) Update(ctx context.Context, tenantID, id string, patch Patch) (T, error) {
	updated, err := r.table.Update(ctx, tenantID, id, patch)
	if err != nil {
		return updated, err
	}
	r.notify(ctx, tenantID, Change{Action: ActionUpdate, ID: id, After: updated})
	return updated, nil
}

func (r *Resource[T]) Delete(ctx context.Context, tenantID, id string) error {
	if err := r.table.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	r.notify(ctx, tenantID, Change{Action: ActionDelete, ID: id})
	return nil
}

func (r *Resource[T]) check(ctx context.Context, tenantID, id string, item T) (T, error) {
	if r.validate == nil {
		return item, nil
	}
	return r.validate(ctx, tenantID, id, item)
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every rejected field of a write. It matches
// ErrInvalidValue.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidValue
}

// Issues accumulates field problems; Err returns nil when there are none.
type Issues []FieldError

func (is *Issues) Add(field, reason string) {
	*is = append(*is, FieldError{Field: field, Reason: reason})
}

func (is *Issues) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		is.Add(field, "is required")
	}
}

// UUID flags a reference that is set but is not a UUID. An unset reference
// passes; Required covers that case.
func (is *Issues) UUID(field string, value *string) {
	if value == nil || *value == "" {
		return
	}
	if _, err := uuid.Parse(*value); err != nil {
		is.Add(field, "must be a UUID")
	}
}

func (is *Issues) Enum(field, value string, allowed ...string) {
	for _, candidate := range allowed {
		if value == candidate {
			return
		}
	}
	is.Add(field, "must be one of "+strings.Join(allowed, ", "))
}

func (is *Issues) Range(field string, value, min, max float64) {
	if value < min || value > max {
		is.Add(field, fmt.Sprintf("must be between %g and %g", min, max))
	}
}

func (is *Issues) NonNegative(field string, value float64) {
	if value < 0 {
		is.Add(field, "must not be negative")
	}
}

func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	return &ValidationError{Fields: append([]FieldError(nil), is...)}
}
