package database

import (
	"errors"
	"fmt"

	"github.com/sahilchouksey/institucion-api/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{db: db, log: log}
}

// DefaultCatalog is the catalog inserted by SeedAll, keyed by modalidad.
var DefaultCatalog = map[string][]string{
	"Presencial":     {"Ingeniería De Sistemas", "Derecho", "Medicina"},
	"Semipresencial": {"Administración De Empresas", "Contabilidad Y Auditoría"},
	"En Línea":       {"Educación Básica", "Psicopedagogía"},
}

// SeedAll inserts the default catalog. Rows whose name already exists,
// active or not, are left untouched so seeding can be re-run.
func (s *Seeder) SeedAll() error {
	s.log.Info("starting database seeding")

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, nombre := range []string{"Presencial", "Semipresencial", "En Línea"} {
			modalidad, err := s.seedModalidad(tx, nombre)
			if err != nil {
				return fmt.Errorf("failed to seed modalidad %q: %w", nombre, err)
			}
			for _, carrera := range DefaultCatalog[nombre] {
				if err := s.seedCarrera(tx, carrera, modalidad.ID); err != nil {
					return fmt.Errorf("failed to seed carrera %q: %w", carrera, err)
				}
			}
		}
		s.log.Info("database seeding completed")
		return nil
	})
}

func (s *Seeder) seedModalidad(tx *gorm.DB, nombre string) (*model.Modalidad, error) {
	var m model.Modalidad
	err := tx.Where("LOWER(nombre) = LOWER(?)", nombre).First(&m).Error
	if err == nil {
		s.log.Debug("modalidad already present", zap.String("nombre", nombre))
		return &m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m = model.Modalidad{Nombre: nombre}
	m.Estado = true
	if err := tx.Create(&m).Error; err != nil {
		return nil, err
	}
	s.log.Info("seeded modalidad", zap.String("nombre", nombre), zap.Uint("id", m.ID))
	return &m, nil
}

func (s *Seeder) seedCarrera(tx *gorm.DB, nombre string, modalidadID uint) error {
	var count int64
	if err := tx.Model(&model.Carrera{}).Where("LOWER(nombre) = LOWER(?)", nombre).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	c := model.Carrera{Nombre: nombre, ModalidadID: modalidadID}
	c.Estado = true
	if err := tx.Create(&c).Error; err != nil {
		return err
	}
	s.log.Info("seeded carrera", zap.String("nombre", nombre), zap.Uint("modalidad_id", modalidadID))
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB, log *zap.Logger) error {
	return NewSeeder(db, log).SeedAll()
}
