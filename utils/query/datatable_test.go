package query

import (
	"fmt"
	"testing"

	"github.com/sahilchouksey/institucion-api/database"
	"github.com/sahilchouksey/institucion-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var modalidadJoin = Join{Alias: "modalidad", Model: &model.Modalidad{}, ForeignKey: "modalidad_id"}

func seedModalidades(t *testing.T, db *gorm.DB, n int) []model.Modalidad {
	t.Helper()
	out := make([]model.Modalidad, 0, n)
	for i := 0; i < n; i++ {
		m := model.Modalidad{Nombre: fmt.Sprintf("Modalidad %02d", i)}
		require.NoError(t, db.Create(&m).Error)
		out = append(out, m)
	}
	return out
}

func TestDatatable_PaginatesAndCounts(t *testing.T) {
	db := database.OpenTestDB(t)
	seedModalidades(t, db, 25)

	res, err := Datatable[model.Modalidad](db, Options{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Count)
	assert.EqualValues(t, 25, res.Total)
	assert.Len(t, res.Data, 10)
	assert.Equal(t, "Modalidad 00", res.Data[0].Nombre)

	res, err = Datatable[model.Modalidad](db, Options{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Count)
	assert.EqualValues(t, 25, res.Total)
	assert.Equal(t, "Modalidad 20", res.Data[0].Nombre)

	res, err = Datatable[model.Modalidad](db, Options{})
	require.NoError(t, err)
	assert.Equal(t, 25, res.Count)
}

func TestDatatable_EstadoSelectsScope(t *testing.T) {
	db := database.OpenTestDB(t)
	rows := seedModalidades(t, db, 4)
	require.NoError(t, model.SoftDelete(db, &rows[1]))
	require.NoError(t, model.SoftDelete(db, &rows[3]))

	active, err := Datatable[model.Modalidad](db, Options{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, active.Total)

	inactive, err := Datatable[model.Modalidad](db, Options{Filters: map[string]interface{}{"estado": false}})
	require.NoError(t, err)
	require.EqualValues(t, 2, inactive.Total)
	for _, m := range inactive.Data {
		assert.False(t, m.Estado)
	}

	explicit, err := Datatable[model.Modalidad](db, Options{Filters: map[string]interface{}{"estado": true}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, explicit.Total)
}

func TestDatatable_SearchIsCaseInsensitiveOR(t *testing.T) {
	db := database.OpenTestDB(t)
	presencial := model.Modalidad{Nombre: "Presencial"}
	enLinea := model.Modalidad{Nombre: "En Linea"}
	require.NoError(t, db.Create(&presencial).Error)
	require.NoError(t, db.Create(&enLinea).Error)
	for _, c := range []model.Carrera{
		{Nombre: "Derecho", ModalidadID: presencial.ID},
		{Nombre: "Medicina", ModalidadID: presencial.ID},
		{Nombre: "Marketing Digital", ModalidadID: enLinea.ID},
	} {
		c := c
		require.NoError(t, db.Omit("Modalidad").Create(&c).Error)
	}

	opts := Options{
		Search:       "LINEA",
		SearchFields: []string{"nombre", "modalidad__nombre"},
		Joins:        []Join{modalidadJoin},
		Preloads:     []string{"Modalidad"},
	}
	res, err := Datatable[model.Carrera](db, opts)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "Marketing Digital", res.Data[0].Nombre)
	assert.Equal(t, "En Linea", res.Data[0].Modalidad.Nombre)

	opts.Search = "dic"
	res, err = Datatable[model.Carrera](db, opts)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	assert.Equal(t, "Medicina", res.Data[0].Nombre)

	opts.Search = ""
	opts.Filters = map[string]interface{}{"modalidad_id": presencial.ID}
	res, err = Datatable[model.Carrera](db, opts)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
}

func TestDatatable_SearchMatchesWildcardsLiterally(t *testing.T) {
	db := database.OpenTestDB(t)
	seedModalidades(t, db, 3)
	require.NoError(t, db.Create(&model.Modalidad{Nombre: `100% Virtual_A\B`}).Error)

	for term, want := range map[string]int64{
		"_":           1,
		"%":           1,
		`\`:           1,
		"Modalidad_0": 0,
		"d_0":         0,
		"modalidad 0": 3,
	} {
		res, err := Datatable[model.Modalidad](db, Options{Search: term, SearchFields: []string{"nombre"}})
		require.NoError(t, err)
		assert.Equal(t, want, res.Total, "search %q", term)
	}
}

func TestDatatable_SearchFindsAccentedCapitals(t *testing.T) {
	db := database.OpenTestDB(t)
	require.NoError(t, db.Create(&model.Modalidad{Nombre: "Área Libre"}).Error)
	require.NoError(t, db.Create(&model.Modalidad{Nombre: "Presencial"}).Error)

	for _, term := range []string{"ÁREA", "área", "Área libre", "libre"} {
		res, err := Datatable[model.Modalidad](db, Options{Search: term, SearchFields: []string{"nombre"}})
		require.NoError(t, err)
		require.EqualValues(t, 1, res.Total, "search %q", term)
		assert.Equal(t, "Área Libre", res.Data[0].Nombre)
	}
}

func TestDatatable_FieldsProjection(t *testing.T) {
	db := database.OpenTestDB(t)
	seedModalidades(t, db, 3)

	res, err := Datatable[model.Modalidad](db, Options{Fields: []string{"id", "nombre"}, Limit: 2})
	require.NoError(t, err)
	assert.True(t, res.Projected())
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 2, res.Count)
	assert.EqualValues(t, 3, res.Total)
	assert.Len(t, res.Rows[0], 2)
	assert.Equal(t, "Modalidad 00", res.Rows[0]["nombre"])
}

func TestDatatable_RejectsUnknownColumns(t *testing.T) {
	db := database.OpenTestDB(t)

	_, err := Datatable[model.Modalidad](db, Options{Fields: []string{"nombre; DROP TABLE modalidades"}})
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = Datatable[model.Modalidad](db, Options{Filters: map[string]interface{}{"clave": 1}})
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = Datatable[model.Modalidad](db, Options{OrderBy: []string{"-nope"}})
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = Datatable[model.Carrera](db, Options{SearchFields: []string{"modalidad__nombre"}, Search: "x"})
	assert.ErrorIs(t, err, ErrInvalidField, "join alias must be declared")
}

func TestDatatable_RejectsNegativePagination(t *testing.T) {
	db := database.OpenTestDB(t)

	_, err := Datatable[model.Modalidad](db, Options{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidPagination)
	_, err = Datatable[model.Modalidad](db, Options{Offset: -5})
	assert.ErrorIs(t, err, ErrInvalidPagination)
}

func TestDatatable_ExcludeAndOrder(t *testing.T) {
	db := database.OpenTestDB(t)
	rows := seedModalidades(t, db, 3)

	res, err := Datatable[model.Modalidad](db, Options{
		Exclude: map[string]interface{}{"id": rows[0].ID},
		OrderBy: []string{"-nombre"},
	})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "Modalidad 02", res.Data[0].Nombre)
	assert.Equal(t, "Modalidad 01", res.Data[1].Nombre)
}

func TestFindByID_Scopes(t *testing.T) {
	db := database.OpenTestDB(t)
	rows := seedModalidades(t, db, 1)
	require.NoError(t, model.SoftDelete(db, &rows[0]))

	_, err := FindByID[model.Modalidad](db, model.ScopeActive, rows[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := FindByID[model.Modalidad](db, model.ScopeAll, rows[0].ID)
	require.NoError(t, err)
	assert.False(t, found.Estado)

	_, err = FindByID[model.Modalidad](db, model.ScopeAll, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
