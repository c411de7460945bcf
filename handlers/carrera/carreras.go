package carrera

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institucion-api/forms"
	"github.com/sahilchouksey/institucion-api/handlers/base"
	"github.com/sahilchouksey/institucion-api/model"
	"github.com/sahilchouksey/institucion-api/serializers"
	"github.com/sahilchouksey/institucion-api/utils/query"
	"github.com/sahilchouksey/institucion-api/utils/response"
	"github.com/sahilchouksey/institucion-api/utils/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errModalidadFilter = errors.New("el filtro modalidad debe ser un identificador numérico")

// CarreraHandler handles carrera-related requests
type CarreraHandler struct {
	*base.ViewSet[model.Carrera, *model.Carrera, forms.CarreraInput]
	serializer *serializers.CarreraSerializer
}

// NewCarreraHandler creates a new carrera handler
func NewCarreraHandler(db *gorm.DB, log *zap.Logger, clock serializers.Clock, pageSize int) *CarreraHandler {
	v := validation.NewValidator()
	serializer := serializers.NewCarreraSerializer(clock)

	cfg := base.Config[model.Carrera, forms.CarreraInput]{
		Name:     "Carrera",
		Resource: "carreras",
		NewForm: func(input forms.CarreraInput, instance *model.Carrera) forms.Form[model.Carrera] {
			return forms.NewCarreraForm(db, v, input, instance)
		},
		FillFrom: func(input *forms.CarreraInput, instance *model.Carrera) {
			input.FillFrom(instance)
		},
		Serializer:   serializer,
		FormFields:   forms.CarreraFields(),
		SearchFields: []string{"nombre", "modalidad__nombre"},
		Joins: []query.Join{
			{Alias: "modalidad", Model: &model.Modalidad{}, ForeignKey: "modalidad_id"},
		},
		Preloads: []string{"Modalidad"},
		Filters:  modalidadFilter,
	}

	return &CarreraHandler{
		ViewSet:    base.NewViewSet[model.Carrera, *model.Carrera](db, log, pageSize, cfg),
		serializer: serializer,
	}
}

// modalidadFilter reads ?modalidad=<id>
func modalidadFilter(c *fiber.Ctx) (map[string]interface{}, error) {
	raw := c.Query("modalidad")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errModalidadFilter
	}
	return map[string]interface{}{"modalidad_id": id}, nil
}

// PorModalidad handles GET /api/academico/carreras/por_modalidad
func (h *CarreraHandler) PorModalidad(c *fiber.Ctx) error {
	raw := c.Query("modalidad_id")
	if raw == "" {
		return response.BadRequest(c, "Se requiere modalidad_id")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return response.BadRequest(c, "modalidad_id no válido")
	}

	var carreras []model.Carrera
	q := model.ScopeActive.Apply(h.DB().WithContext(c.UserContext()).Model(&model.Carrera{}), "carreras")
	if err := q.Preload("Modalidad").
		Where("carreras.modalidad_id = ?", id).
		Order("carreras.nombre").
		Find(&carreras).Error; err != nil {
		h.Logger().Error("Failed to list carreras por modalidad", zap.Error(err), zap.Uint64("modalidad_id", id))
		return response.InternalServerError(c, "Failed to fetch carreras")
	}

	return response.Success(c, serializers.Many[model.Carrera](h.serializer, carreras, serializers.ViewDefault))
}
