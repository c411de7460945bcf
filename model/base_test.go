package model_test

import (
	"testing"

	"github.com/sahilchouksey/institucion-api/database"
	"github.com/sahilchouksey/institucion-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSoftDeleteAndRestore(t *testing.T) {
	db := database.OpenTestDB(t)
	m := &model.Modalidad{Nombre: "Presencial"}
	require.NoError(t, db.Create(m).Error)

	require.NoError(t, model.SoftDelete(db, m))
	assert.False(t, m.IsActive())

	var count int64
	require.NoError(t, model.ScopeActive.Apply(db.Model(&model.Modalidad{}), "").Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, model.ScopeAll.Apply(db.Model(&model.Modalidad{}), "").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, model.Restore(db, m))
	assert.True(t, m.IsActive())
	require.NoError(t, model.ScopeActive.Apply(db.Model(&model.Modalidad{}), "").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSoftDelete_RequiresID(t *testing.T) {
	db := database.OpenTestDB(t)
	assert.ErrorIs(t, model.SoftDelete(db, &model.Modalidad{}), gorm.ErrMissingWhereClause)
}

func TestHardDelete_RestrictedByCarreras(t *testing.T) {
	db := database.OpenTestDB(t)
	m := &model.Modalidad{Nombre: "Presencial"}
	require.NoError(t, db.Create(m).Error)
	c := &model.Carrera{Nombre: "Derecho", ModalidadID: m.ID}
	require.NoError(t, db.Omit("Modalidad").Create(c).Error)

	assert.Error(t, model.HardDelete(db, m))

	require.NoError(t, model.HardDelete(db, c))
	require.NoError(t, model.HardDelete(db, m))
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "active", model.ScopeActive.String())
	assert.Equal(t, "all", model.ScopeAll.String())
}

func TestCarreraString(t *testing.T) {
	c := model.Carrera{Nombre: "Derecho", Modalidad: model.Modalidad{Nombre: "Presencial"}}
	assert.Equal(t, "Derecho - Presencial", c.String())
}
