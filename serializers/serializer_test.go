package serializers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sahilchouksey/institucion-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T) Clock {
	t.Helper()
	loc := time.FixedZone("ECT", -5*60*60)
	return NewClock(loc)
}

func sampleModalidad() *model.Modalidad {
	m := &model.Modalidad{Nombre: "Presencial"}
	m.ID = 7
	m.Estado = true
	m.CreatedAt = time.Date(2025, 3, 4, 15, 6, 7, 0, time.UTC)
	m.UpdatedAt = time.Date(2025, 3, 5, 1, 2, 3, 0, time.UTC)
	return m
}

func keys(t *testing.T, v interface{}) []string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestClock_FormatsInLocalZone(t *testing.T) {
	c := fixedClock(t)
	got := c.Format(time.Date(2025, 3, 5, 1, 2, 3, 0, time.UTC))
	require.NotNil(t, got)
	assert.Equal(t, "04/03/2025 20:02:03", *got)
	assert.Nil(t, c.Format(time.Time{}))
}

func TestModalidadSerializer_Views(t *testing.T) {
	s := NewModalidadSerializer(fixedClock(t))
	m := sampleModalidad()

	full := s.Serialize(m, ViewDefault).(ModalidadFull)
	assert.Equal(t, "Presencial", full.Display)
	assert.Equal(t, "7 - Presencial", full.IDDisplay)
	assert.Equal(t, "04/03/2025 10:06:07", *full.CreatedAt)

	assert.ElementsMatch(t, []string{"id", "created_at", "nombre", "estado"}, keys(t, s.Serialize(m, ViewList)))
	assert.ElementsMatch(t, []string{"id", "created_at", "updated_at", "nombre", "estado"}, keys(t, s.Serialize(m, ViewDetail)))
	assert.ElementsMatch(t, []string{"id", "display", "id_display", "created_at", "updated_at", "nombre", "estado"},
		keys(t, s.Serialize(m, ViewDefault)))
}

func TestCarreraSerializer_Views(t *testing.T) {
	s := NewCarreraSerializer(fixedClock(t))
	c := &model.Carrera{Nombre: "Derecho", ModalidadID: 7, Modalidad: *sampleModalidad()}
	c.ID = 3
	c.Estado = true
	c.CreatedAt = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	full := s.Serialize(c, ViewDefault).(CarreraFull)
	assert.Equal(t, "Derecho - Presencial", full.Display)
	assert.Equal(t, "3 - Derecho - Presencial", full.IDDisplay)
	assert.Equal(t, uint(7), full.Modalidad)
	assert.Equal(t, "Presencial", full.ModalidadNombre)

	assert.ElementsMatch(t, []string{"id", "created_at", "modalidad_nombre", "nombre", "estado"},
		keys(t, s.Serialize(c, ViewList)))

	detail := s.Serialize(c, ViewDetail).(CarreraDetail)
	assert.Equal(t, "7 - Presencial", detail.Modalidad.IDDisplay)
	assert.ElementsMatch(t, []string{"id", "created_at", "updated_at", "nombre", "estado", "modalidad"},
		keys(t, detail))
}

func TestMany(t *testing.T) {
	s := NewModalidadSerializer(fixedClock(t))
	items := []model.Modalidad{*sampleModalidad(), *sampleModalidad()}
	out := Many[model.Modalidad](s, items, ViewList)
	assert.Len(t, out, 2)
	_, ok := out[0].(ModalidadList)
	assert.True(t, ok)
}
