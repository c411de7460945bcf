package base

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institucion-api/serializers"
	"github.com/sahilchouksey/institucion-api/utils/query"
	"github.com/sahilchouksey/institucion-api/utils/response"
	"github.com/sahilchouksey/institucion-api/utils/validation"
)

// List handles GET /. Supports fields, search, limit, offset, estado and
// the resource's own filters.
func (v *ViewSet[T, PT, I]) List(c *fiber.Ctx) error {
	return v.listing(c, nil, serializers.ViewList)
}

// Datatable handles GET /datatable, the same listing in the default view.
func (v *ViewSet[T, PT, I]) Datatable(c *fiber.Ctx) error {
	return v.listing(c, nil, serializers.ViewDefault)
}

// Activas handles GET /activas
func (v *ViewSet[T, PT, I]) Activas(c *fiber.Ctx) error {
	return v.listing(c, map[string]interface{}{"estado": true}, serializers.ViewList)
}

// Inactivas handles GET /inactivas
func (v *ViewSet[T, PT, I]) Inactivas(c *fiber.Ctx) error {
	return v.listing(c, map[string]interface{}{"estado": false}, serializers.ViewList)
}

func (v *ViewSet[T, PT, I]) listing(c *fiber.Ctx, forced map[string]interface{}, view serializers.View) error {
	opts, err := v.Options(c, forced)
	if err != nil {
		var paramErr *ParamError
		if errors.As(err, &paramErr) {
			return response.ValidationError(c, paramErr.Errors)
		}
		return response.BadRequest(c, err.Error())
	}

	result, err := query.Datatable[T, PT](v.db.WithContext(c.UserContext()), opts)
	if err != nil {
		if errors.Is(err, query.ErrInvalidField) || errors.Is(err, query.ErrInvalidPagination) {
			return response.BadRequest(c, err.Error())
		}
		return v.internalError(c, "Failed to list "+v.cfg.Resource, err)
	}

	if result.Projected() {
		return response.Datatable(c, result.Rows, result.Count, result.Total)
	}
	return response.Datatable(c, serializers.Many[T](v.cfg.Serializer, result.Data, view), result.Count, result.Total)
}

// listParams are the query parameters every listing accepts.
type listParams struct {
	Fields string `query:"fields"`
	Search string `query:"search" validate:"max=150"`
	Limit  *int   `query:"limit" validate:"omitempty,min=0"`
	Offset *int   `query:"offset" validate:"omitempty,min=0"`
	Estado string `query:"estado"`
}

// Options builds the listing options from the query string. forced filters
// override whatever the request asked for.
func (v *ViewSet[T, PT, I]) Options(c *fiber.Ctx, forced map[string]interface{}) (query.Options, error) {
	var params listParams
	if err := c.QueryParser(&params); err != nil {
		return query.Options{}, query.ErrInvalidPagination
	}
	if err := v.validator.ValidateStruct(params); err != nil {
		return query.Options{}, &ParamError{Errors: validation.FormatValidationErrors(err)}
	}

	opts := query.Options{
		Fields:       splitFields(params.Fields),
		Search:       strings.TrimSpace(params.Search),
		SearchFields: v.cfg.SearchFields,
		Joins:        v.cfg.Joins,
		Preloads:     v.cfg.Preloads,
		Limit:        v.defaultLimit,
		Filters:      map[string]interface{}{},
	}
	if params.Limit != nil {
		opts.Limit = *params.Limit
	}
	if params.Offset != nil {
		opts.Offset = *params.Offset
	}

	if params.Estado != "" {
		opts.Filters["estado"] = strings.EqualFold(params.Estado, "true")
	}
	if v.cfg.Filters != nil {
		extra, err := v.cfg.Filters(c)
		if err != nil {
			return opts, err
		}
		for k, val := range extra {
			opts.Filters[k] = val
		}
	}
	for k, val := range forced {
		opts.Filters[k] = val
	}
	return opts, nil
}

// ParamError carries per-parameter messages for a rejected query string.
type ParamError struct {
	Errors map[string][]string
}

func (e *ParamError) Error() string {
	return "parámetros de consulta no válidos"
}
