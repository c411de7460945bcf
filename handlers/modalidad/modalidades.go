package modalidad

import (
	"github.com/sahilchouksey/institucion-api/forms"
	"github.com/sahilchouksey/institucion-api/handlers/base"
	"github.com/sahilchouksey/institucion-api/model"
	"github.com/sahilchouksey/institucion-api/serializers"
	"github.com/sahilchouksey/institucion-api/utils/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgCarrerasActivas   = "No se puede eliminar una modalidad con carreras activas."
	msgCarrerasAsociadas = "No se puede eliminar permanentemente una modalidad con carreras asociadas."
)

// ModalidadHandler handles modalidad-related requests
type ModalidadHandler struct {
	*base.ViewSet[model.Modalidad, *model.Modalidad, forms.ModalidadInput]
}

// NewModalidadHandler creates a new modalidad handler
func NewModalidadHandler(db *gorm.DB, log *zap.Logger, clock serializers.Clock, pageSize int) *ModalidadHandler {
	v := validation.NewValidator()

	cfg := base.Config[model.Modalidad, forms.ModalidadInput]{
		Name:     "Modalidad",
		Resource: "modalidades",
		NewForm: func(input forms.ModalidadInput, instance *model.Modalidad) forms.Form[model.Modalidad] {
			return forms.NewModalidadForm(db, v, input, instance)
		},
		FillFrom: func(input *forms.ModalidadInput, instance *model.Modalidad) {
			input.FillFrom(instance)
		},
		Serializer:       serializers.NewModalidadSerializer(clock),
		FormFields:       forms.ModalidadFields(),
		SearchFields:     []string{"nombre"},
		BeforeDelete:     guardActiveCarreras,
		BeforeHardDelete: guardAnyCarrera,
	}

	return &ModalidadHandler{
		ViewSet: base.NewViewSet[model.Modalidad, *model.Modalidad](db, log, pageSize, cfg),
	}
}

// guardActiveCarreras refuses a soft delete while active carreras still
// point at the modalidad.
func guardActiveCarreras(tx *gorm.DB, m *model.Modalidad) error {
	var count int64
	q := model.ScopeActive.Apply(tx.Model(&model.Carrera{}), "")
	if err := q.Where("modalidad_id = ?", m.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &base.Conflict{Message: msgCarrerasActivas}
	}
	return nil
}

// guardAnyCarrera refuses a hard delete while any carrera, active or not,
// references the modalidad.
func guardAnyCarrera(tx *gorm.DB, m *model.Modalidad) error {
	var count int64
	q := model.ScopeAll.Apply(tx.Model(&model.Carrera{}), "")
	if err := q.Where("modalidad_id = ?", m.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &base.Conflict{Message: msgCarrerasAsociadas}
	}
	return nil
}
