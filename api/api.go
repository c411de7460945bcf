package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institucion-api/utils/response"
	"go.uber.org/zap"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *zap.Logger
}

func NewAPIServer(listenAddress string, log *zap.Logger) *APIServer {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIServer{
		app:           fiber.New(Config(log)),
		listenAddress: listenAddress,
		log:           log,
	}
}

// Config is the fiber configuration shared by the server and the tests.
func Config(log *zap.Logger) fiber.Config {
	return fiber.Config{
		AppName:      "institucion-api",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return response.Error(c, fe.Code, fe.Message)
			}
			log.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
			return response.InternalServerError(c, "")
		},
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.Info("Starting API Server", zap.String("address", s.listenAddress))

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests.
func (s *APIServer) Shutdown(timeout time.Duration) error {
	s.log.Info("Shutting down API Server")
	return s.app.ShutdownWithTimeout(timeout)
}
