package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institucion-api/config"
	"github.com/sahilchouksey/institucion-api/database"
	"github.com/sahilchouksey/institucion-api/handlers"
	carrera_handlers "github.com/sahilchouksey/institucion-api/handlers/carrera"
	modalidad_handlers "github.com/sahilchouksey/institucion-api/handlers/modalidad"
	"github.com/sahilchouksey/institucion-api/serializers"
	"github.com/sahilchouksey/institucion-api/utils/auth"
	"github.com/sahilchouksey/institucion-api/utils/middleware"
	"go.uber.org/zap"
)

// Dependencies are what the routes need. JWTManager and Throttle are
// optional; nil switches the admin guard or the write throttle off.
type Dependencies struct {
	Store      *database.GORMStore
	Env        *config.EnvironmentVariable
	Logger     *zap.Logger
	JWTManager *auth.JWTManager
	Throttle   *middleware.WriteThrottle
}

// resource is the handler set every catalog resource exposes
type resource interface {
	List(c *fiber.Ctx) error
	Datatable(c *fiber.Ctx) error
	Activas(c *fiber.Ctx) error
	Inactivas(c *fiber.Ctx) error
	Form(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Retrieve(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	PartialUpdate(c *fiber.Ctx) error
	Destroy(c *fiber.Ctx) error
	Restore(c *fiber.Ctx) error
	HardDelete(c *fiber.Ctx) error
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins: deps.Env.ALLOWED_ORIGINS,
		Logger:         log,
	})

	db := deps.Store.DB()
	clock := serializers.NewClock(deps.Env.TIME_ZONE)
	pageSize := deps.Env.DEFAULT_PAGE_SIZE

	modalidadHandler := modalidad_handlers.NewModalidadHandler(db, log, clock, pageSize)
	carreraHandler := carrera_handlers.NewCarreraHandler(db, log, clock, pageSize)

	// Health check endpoint (public)
	app.Get("/health", handlers.HandleCheckHealth(deps.Store, log))

	// Writes go through the admin guard, then the throttle
	write := []fiber.Handler{
		middleware.AdminGuard(deps.JWTManager),
		deps.Throttle.Handler(),
	}

	api := app.Group("/api/academico")

	modalidades := api.Group("/modalidades")
	registerResource(modalidades, modalidadHandler, write)

	carreras := api.Group("/carreras")
	carreras.Get("/por_modalidad", carreraHandler.PorModalidad) // Public: active carreras of a modalidad
	registerResource(carreras, carreraHandler, write)
}

// registerResource mounts the standard routes. Fixed paths come before
// "/:id" so they are not captured as ids.
func registerResource(group fiber.Router, h resource, write []fiber.Handler) {
	guarded := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, write...), handler)
	}

	group.Get("/", h.List)
	group.Get("/datatable", h.Datatable)
	group.Get("/activas", h.Activas)
	group.Get("/inactivas", h.Inactivas)
	group.Get("/form", h.Form)
	group.Post("/", guarded(h.Create)...)

	group.Get("/:id", h.Retrieve)
	group.Put("/:id", guarded(h.Update)...)
	group.Patch("/:id", guarded(h.PartialUpdate)...)
	group.Delete("/:id", guarded(h.Destroy)...)
	group.Patch("/:id/restore", guarded(h.Restore)...)
	group.Delete("/:id/hard_delete", guarded(h.HardDelete)...)
}
