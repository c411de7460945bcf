package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
	"github.com/sahilchouksey/institucion-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidField      = errors.New("invalid field")
	ErrInvalidPagination = errors.New("invalid pagination")
)

// Join is a to-one relation that filters, search terms and projected fields
// may reference as "<alias>__<column>".
type Join struct {
	Alias      string       // e.g. "modalidad"
	Model      model.Entity // joined entity, used to validate column names
	ForeignKey string       // column on the main table
}

// FieldError reports a column that does not exist on the queried entity.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("campo no válido: %s", e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

// FindByID loads a single row in the given scope.
func FindByID[T any, PT interface {
	*T
	model.Entity
}](db *gorm.DB, scope model.Scope, id interface{}, preloads ...string) (PT, error) {
	var entity T
	pt := PT(&entity)

	q := scope.Apply(db.Model(pt), pt.TableName())
	for _, p := range preloads {
		q = q.Preload(p)
	}

	if err := q.Where(quote(pt.TableName(), "id")+" = ?", id).First(pt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s %v: %w", pt.TableName(), id, err)
	}
	return pt, nil
}

// resolver maps user-supplied field names onto quoted, table-qualified
// columns, rejecting anything that is not a real column.
type resolver struct {
	table   string
	columns map[string]bool
	joins   map[string]joinInfo
}

type joinInfo struct {
	Join
	table   string
	columns map[string]bool
}

func newResolver(db *gorm.DB, entity model.Entity, joins []Join) (*resolver, error) {
	cols, err := columnsOf(db, entity)
	if err != nil {
		return nil, err
	}

	r := &resolver{
		table:   entity.TableName(),
		columns: cols,
		joins:   make(map[string]joinInfo, len(joins)),
	}
	for _, j := range joins {
		jc, err := columnsOf(db, j.Model)
		if err != nil {
			return nil, err
		}
		r.joins[j.Alias] = joinInfo{Join: j, table: j.Model.TableName(), columns: jc}
	}
	return r, nil
}

func columnsOf(db *gorm.DB, entity model.Entity) (map[string]bool, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(entity); err != nil {
		return nil, fmt.Errorf("parse schema for %s: %w", entity.TableName(), err)
	}
	return dbNames(stmt.Schema), nil
}

func dbNames(s *schema.Schema) map[string]bool {
	cols := make(map[string]bool, len(s.DBNames))
	for _, name := range s.DBNames {
		cols[name] = true
	}
	return cols
}

// column resolves "nombre" or "modalidad__nombre".
func (r *resolver) column(field string) (string, error) {
	if alias, col, ok := strings.Cut(field, "__"); ok {
		j, found := r.joins[alias]
		if !found || !j.columns[col] {
			return "", &FieldError{Field: field}
		}
		return quote(alias, col), nil
	}
	if !r.columns[field] {
		return "", &FieldError{Field: field}
	}
	return quote(r.table, field), nil
}

func (r *resolver) joinClauses() []string {
	aliases := make([]string, 0, len(r.joins))
	for alias := range r.joins {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	clauses := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		j := r.joins[alias]
		clauses = append(clauses, fmt.Sprintf("LEFT JOIN %s AS %s ON %s = %s",
			pq.QuoteIdentifier(j.table),
			pq.QuoteIdentifier(alias),
			quote(alias, "id"),
			quote(r.table, j.ForeignKey),
		))
	}
	return clauses
}

func quote(table, column string) string {
	return pq.QuoteIdentifier(table) + "." + pq.QuoteIdentifier(column)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quoteTable(name string) string {
	return pq.QuoteIdentifier(name)
}
