package datastore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hrerp/internal/platform/querier"
)

type Scanner interface {
	Scan(dest ...any) error
}

// Column describes one table column. Expr is the select expression
// (defaults to Name); only Writable columns take part in inserts and updates.
// Joined columns are read from another table through Expr, so filters and
// ordering use Expr for them as well. A joined Expr must match the outer
// row's tenant_id, NewTable panics otherwise.
type Column struct {
	Name     string
	Expr     string
	Writable bool
	Joined   bool
}

func (c Column) selectExpr() string {
	if c.Expr != "" {
		return c.Expr
	}
	return c.Name
}

// Schema binds a row type to its table. Values must return one value per
// writable column, in declaration order.
type Schema[T any] struct {
	Table   string
	Columns []Column
	Touch   string
	Scan    func(Scanner) (T, error)
	Values  func(T) []any
}

// Table is the per-entity Data Store client. Every statement is scoped by
// tenant_id.
type Table[T any] struct {
	db       querier.Querier
	schema   Schema[T]
	known    map[string]Column
	writable []Column
	selects  string
}

func NewTable[T any](db querier.Querier, schema Schema[T]) *Table[T] {
	t := &Table[T]{
		db:     db,
		schema: schema,
		known:  make(map[string]Column, len(schema.Columns)),
	}
	exprs := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		if col.Joined && !tenantScoped(schema.Table, col.Expr) {
			panic(fmt.Sprintf("datastore: joined column %s.%s does not match tenant_id", schema.Table, col.Name))
		}
		t.known[col.Name] = col
		exprs = append(exprs, col.selectExpr())
		if col.Writable {
			t.writable = append(t.writable, col)
		}
	}
	t.selects = strings.Join(exprs, ", ")
	return t
}

func tenantScoped(table, expr string) bool {
	return strings.Contains(expr, ".tenant_id = "+table+".tenant_id")
}

func (t *Table[T]) Name() string {
	return t.schema.Table
}

func (t *Table[T]) HasColumn(name string) bool {
	_, ok := t.known[name]
	return ok
}

// resolve maps a column name to the SQL used in WHERE and ORDER BY.
func (t *Table[T]) resolve(name string) (string, bool) {
	col, ok := t.known[name]
	if !ok {
		return "", false
	}
	if col.Joined {
		return col.selectExpr(), true
	}
	return col.Name, true
}

func (t *Table[T]) List(ctx context.Context, tenantID string, q Query) ([]T, error) {
	b := &builder{}
	b.write("SELECT ", t.selects, " FROM ", t.schema.Table, " WHERE tenant_id = ", b.arg(tenantID))
	if err := b.where(q.Filters, t.resolve); err != nil {
		return nil, err
	}
	if err := b.orderBy(q.OrderBy, t.resolve); err != nil {
		return nil, err
	}
	b.page(q.Limit, q.Offset)

	rows, err := t.db.Query(ctx, b.sql.String(), b.args...)
	if err != nil {
		return nil, fmt.Errorf("%s list: %w", t.schema.Table, translate(err))
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := t.schema.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", t.schema.Table, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s list: %w", t.schema.Table, translate(err))
	}
	return out, nil
}

func (t *Table[T]) Count(ctx context.Context, tenantID string, filters ...Filter) (int, error) {
	b := &builder{}
	b.write("SELECT COUNT(1) FROM ", t.schema.Table, " WHERE tenant_id = ", b.arg(tenantID))
	if err := b.where(filters, t.resolve); err != nil {
		return 0, err
	}
	var total int
	if err := t.db.QueryRow(ctx, b.sql.String(), b.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s count: %w", t.schema.Table, translate(err))
	}
	return total, nil
}

func (t *Table[T]) Get(ctx context.Context, tenantID, id string) (T, error) {
	b := &builder{}
	b.write("SELECT ", t.selects, " FROM ", t.schema.Table, " WHERE tenant_id = ", b.arg(tenantID), " AND id = ", b.arg(id))
	return t.scanOne(ctx, "get", b)
}

func (t *Table[T]) Insert(ctx context.Context, tenantID string, item T) (T, error) {
	values := t.schema.Values(item)
	if len(values) != len(t.writable) {
		var zero T
		return zero, fmt.Errorf("%s insert: %d values for %d columns", t.schema.Table, len(values), len(t.writable))
	}
	b := &builder{}
	names := make([]string, 0, len(t.writable)+1)
	params := make([]string, 0, len(t.writable)+1)
	names = append(names, "tenant_id")
	params = append(params, b.arg(tenantID))
	for i, col := range t.writable {
		names = append(names, col.Name)
		params = append(params, b.arg(values[i]))
	}
	b.write("INSERT INTO ", t.schema.Table, " (", strings.Join(names, ", "), ") VALUES (", strings.Join(params, ", "), ") RETURNING ", t.selects)
	return t.scanOne(ctx, "insert", b)
}

// Replace overwrites every writable column of an existing row.
func (t *Table[T]) Replace(ctx context.Context, tenantID, id string, item T) (T, error) {
	values := t.schema.Values(item)
	patch := make(Patch, len(t.writable))
	for i, col := range t.writable {
		patch[col.Name] = values[i]
	}
	return t.Update(ctx, tenantID, id, patch)
}

// Update applies a partial change. Columns are written in name order so the
// generated statement is stable.
func (t *Table[T]) Update(ctx context.Context, tenantID, id string, patch Patch) (T, error) {
	var zero T
	if len(patch) == 0 {
		return zero, ErrEmptyPatch
	}
	columns := make([]string, 0, len(patch))
	for name := range patch {
		col, ok := t.known[name]
		if !ok || !col.Writable {
			return zero, fmt.Errorf("update %q: %w", name, ErrUnknownColumn)
		}
		columns = append(columns, name)
	}
	sort.Strings(columns)

	b := &builder{}
	tenantParam := b.arg(tenantID)
	idParam := b.arg(id)
	sets := make([]string, 0, len(columns)+1)
	for _, name := range columns {
		sets = append(sets, name+" = "+b.arg(patch[name]))
	}
	if t.schema.Touch != "" {
		sets = append(sets, t.schema.Touch+" = now()")
	}
	b.write("UPDATE ", t.schema.Table, " SET ", strings.Join(sets, ", "), " WHERE tenant_id = ", tenantParam, " AND id = ", idParam, " RETURNING ", t.selects)
	return t.scanOne(ctx, "update", b)
}

func (t *Table[T]) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := t.db.Exec(ctx, "DELETE FROM "+t.schema.Table+" WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return fmt.Errorf("%s delete: %w", t.schema.Table, translate(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *Table[T]) scanOne(ctx context.Context, op string, b *builder) (T, error) {
	item, err := t.schema.Scan(t.db.QueryRow(ctx, b.sql.String(), b.args...))
	if err != nil {
		var zero T
		translated := translate(err)
		if translated == ErrNotFound {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("%s %s: %w", t.schema.Table, op, translated)
	}
	return item, nil
}
