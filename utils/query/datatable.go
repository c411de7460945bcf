package query

import (
	"fmt"
	"strings"

	"github.com/sahilchouksey/institucion-api/model"
	"github.com/sahilchouksey/institucion-api/utils/validation"
	"gorm.io/gorm"
)

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Options drives a Datatable listing. The zero value lists the first page
// of active rows in the entity's default order.
type Options struct {
	Fields       []string               // project rows to these columns
	Filters      map[string]interface{} // equality filters, AND-ed
	Exclude      map[string]interface{} // inequality filters, AND-ed
	Search       string
	SearchFields []string // OR-ed case-insensitive substring match
	OrderBy      []string // "-col" sorts descending
	Limit        int      // 0 means no limit
	Offset       int
	Joins        []Join
	Preloads     []string
}

// Result is a page of a listing. Rows is set instead of Data when
// Options.Fields was supplied.
type Result[T any] struct {
	Data  []T
	Rows  []map[string]interface{}
	Count int
	Total int64
}

// Projected reports whether the page holds projected rows
func (r *Result[T]) Projected() bool {
	return r.Rows != nil
}

// ScopeFor picks the base scope of a listing: an explicit estado=false
// filter needs inactive rows to be visible, everything else starts from
// the active scope.
func ScopeFor(filters map[string]interface{}) model.Scope {
	if v, ok := filters["estado"]; ok {
		if b, ok := v.(bool); ok && !b {
			return model.ScopeAll
		}
	}
	return model.ScopeActive
}

// Datatable runs the generic filtered, searchable, paginated listing.
// Total counts matching rows before pagination, Count the rows returned.
func Datatable[T any, PT interface {
	*T
	model.Entity
}](db *gorm.DB, opts Options) (*Result[T], error) {
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, ErrInvalidPagination
	}

	var entity T
	pt := PT(&entity)
	table := pt.TableName()

	r, err := newResolver(db, pt, opts.Joins)
	if err != nil {
		return nil, err
	}

	scope := ScopeFor(opts.Filters)

	// build returns a fresh statement per use so Count and Find never share
	// clauses.
	build := func() (*gorm.DB, error) {
		q := db.Model(pt)
		for _, j := range r.joinClauses() {
			q = q.Joins(j)
		}
		q = scope.Apply(q, quoteTable(table))

		for _, key := range sortedKeys(opts.Filters) {
			col, err := r.column(key)
			if err != nil {
				return nil, err
			}
			q = q.Where(col+" = ?", opts.Filters[key])
		}

		for _, key := range sortedKeys(opts.Exclude) {
			col, err := r.column(key)
			if err != nil {
				return nil, err
			}
			q = q.Where(col+" <> ?", opts.Exclude[key])
		}

		if opts.Search != "" && len(opts.SearchFields) > 0 {
			// sqlite LOWER folds ASCII only; the title-cased term covers
			// accented capitals in stored names.
			lower := "%" + likeEscaper.Replace(strings.ToLower(opts.Search)) + "%"
			title := "%" + likeEscaper.Replace(validation.TitleCase(opts.Search)) + "%"
			clauses := make([]string, 0, 2*len(opts.SearchFields))
			args := make([]interface{}, 0, 2*len(opts.SearchFields))
			for _, field := range opts.SearchFields {
				col, err := r.column(field)
				if err != nil {
					return nil, err
				}
				clauses = append(clauses,
					"LOWER("+col+") LIKE ? ESCAPE '\\'",
					col+" LIKE ? ESCAPE '\\'",
				)
				args = append(args, lower, title)
			}
			q = q.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}
		return q, nil
	}

	countQuery, err := build()
	if err != nil {
		return nil, err
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count %s: %w", table, err)
	}

	q, err := build()
	if err != nil {
		return nil, err
	}

	order, err := orderClauses(r, pt, opts.OrderBy)
	if err != nil {
		return nil, err
	}
	for _, o := range order {
		q = q.Order(o)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	result := &Result[T]{Total: total}

	if len(opts.Fields) > 0 {
		selects := make([]string, 0, len(opts.Fields))
		for _, field := range opts.Fields {
			field = strings.TrimSpace(field)
			col, err := r.column(field)
			if err != nil {
				return nil, err
			}
			selects = append(selects, col+" AS "+quoteTable(field))
		}
		rows := make([]map[string]interface{}, 0)
		if err := q.Select(strings.Join(selects, ", ")).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		result.Rows = rows
		result.Count = len(rows)
		return result, nil
	}

	for _, p := range opts.Preloads {
		q = q.Preload(p)
	}
	data := make([]T, 0)
	if err := q.Find(&data).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	result.Data = data
	result.Count = len(data)
	return result, nil
}

// orderClauses uses the requested order, else the entity's declared order,
// else newest id first.
func orderClauses(r *resolver, entity model.Entity, requested []string) ([]string, error) {
	fields := requested
	if len(fields) == 0 {
		if o, ok := entity.(model.Ordered); ok {
			fields = o.DefaultOrder()
		}
	}
	if len(fields) == 0 {
		fields = []string{"-id"}
	}

	clauses := make([]string, 0, len(fields))
	for _, f := range fields {
		dir := "ASC"
		if strings.HasPrefix(f, "-") {
			dir = "DESC"
			f = f[1:]
		}
		col, err := r.column(f)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, col+" "+dir)
	}
	return clauses, nil
}
