package database

import (
	"testing"

	"github.com/sahilchouksey/institucion-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAll_IsIdempotent(t *testing.T) {
	db := OpenTestDB(t)

	require.NoError(t, RunSeeds(db, nil))
	require.NoError(t, RunSeeds(db, nil))

	var modalidades, carreras int64
	require.NoError(t, db.Model(&model.Modalidad{}).Count(&modalidades).Error)
	require.NoError(t, db.Model(&model.Carrera{}).Count(&carreras).Error)

	assert.EqualValues(t, 3, modalidades)
	expected := 0
	for _, list := range DefaultCatalog {
		expected += len(list)
	}
	assert.EqualValues(t, expected, carreras)
}

func TestSeedAll_CarrerasBelongToTheirModalidad(t *testing.T) {
	db := OpenTestDB(t)
	require.NoError(t, RunSeeds(db, nil))

	var derecho model.Carrera
	require.NoError(t, db.Preload("Modalidad").Where("nombre = ?", "Derecho").First(&derecho).Error)
	assert.Equal(t, "Presencial", derecho.Modalidad.Nombre)
	assert.True(t, derecho.Estado)
}
