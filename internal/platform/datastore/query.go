package datastore

import (
	"fmt"
	"strconv"
	"strings"
)

type Op string

const (
	OpEq     Op = "="
	OpNeq    Op = "<>"
	OpGte    Op = ">="
	OpLte    Op = "<="
	OpIn     Op = "IN"
	OpIsNull Op = "IS NULL"
)

type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(column string, value any) Filter  { return Filter{Column: column, Op: OpEq, Value: value} }
func Neq(column string, value any) Filter { return Filter{Column: column, Op: OpNeq, Value: value} }
func Gte(column string, value any) Filter { return Filter{Column: column, Op: OpGte, Value: value} }
func Lte(column string, value any) Filter { return Filter{Column: column, Op: OpLte, Value: value} }
func In(column string, values any) Filter { return Filter{Column: column, Op: OpIn, Value: values} }
func IsNull(column string) Filter         { return Filter{Column: column, Op: OpIsNull} }

type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Query narrows a List call. Zero Limit means no limit.
type Query struct {
	Filters []Filter
	OrderBy []Order
	Limit   int
	Offset  int
}

func (q Query) Where(filters ...Filter) Query {
	q.Filters = append(append([]Filter{}, q.Filters...), filters...)
	return q
}

func (q Query) Sort(orders ...Order) Query {
	q.OrderBy = append(append([]Order{}, q.OrderBy...), orders...)
	return q
}

// Patch maps column names to new values for a partial update.
type Patch map[string]any

type builder struct {
	sql  strings.Builder
	args []any
}

func (b *builder) write(parts ...string) {
	for _, part := range parts {
		b.sql.WriteString(part)
	}
}

func (b *builder) arg(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) where(filters []Filter, resolve func(string) (string, bool)) error {
	for _, f := range filters {
		column, ok := resolve(f.Column)
		if !ok {
			return fmt.Errorf("filter %q: %w", f.Column, ErrUnknownColumn)
		}
		switch f.Op {
		case OpEq, OpNeq, OpGte, OpLte:
			b.write(" AND ", column, " ", string(f.Op), " ", b.arg(f.Value))
		case OpIn:
			b.write(" AND ", column, " = ANY(", b.arg(f.Value), ")")
		case OpIsNull:
			b.write(" AND ", column, " IS NULL")
		default:
			return fmt.Errorf("filter %q: unsupported operator %q", f.Column, f.Op)
		}
	}
	return nil
}

func (b *builder) orderBy(orders []Order, resolve func(string) (string, bool)) error {
	for i, o := range orders {
		column, ok := resolve(o.Column)
		if !ok {
			return fmt.Errorf("order %q: %w", o.Column, ErrUnknownColumn)
		}
		if i == 0 {
			b.write(" ORDER BY ")
		} else {
			b.write(", ")
		}
		b.write(column)
		if o.Desc {
			b.write(" DESC")
		} else {
			b.write(" ASC")
		}
	}
	return nil
}

func (b *builder) page(limit, offset int) {
	if limit > 0 {
		b.write(" LIMIT ", b.arg(limit))
	}
	if offset > 0 {
		b.write(" OFFSET ", b.arg(offset))
	}
}
