// Package httpapi exposes the billing engine as a JSON API.
package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"rentledger/internal/auth"
	"rentledger/internal/billing"
)

type Server struct {
	app    *fiber.App
	engine *billing.Engine
	auth   *auth.Provider
	log    logrus.FieldLogger
}

// New builds the API. engine must resolve users through auth.ContextIdentity.
func New(engine *billing.Engine, provider *auth.Provider, log logrus.FieldLogger) *Server {
	s := &Server{
		engine: engine,
		auth:   provider,
		log:    log,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "rentledger",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return Success(c, "ok", nil)
	})

	api := s.app.Group("/api")
	api.Post("/auth/signup", s.signUp)
	api.Post("/auth/login", s.login)

	tenants := api.Group("/tenants", s.requireAuth)
	tenants.Get("/", s.listTenants)
	tenants.Post("/", s.createTenant)
	tenants.Get("/:id", s.getTenant)
	tenants.Put("/:id", s.updateTenant)
	tenants.Delete("/:id", s.deleteTenant)
	tenants.Get("/:id/statement", s.statement)

	rent := api.Group("/rent", s.requireAuth)
	rent.Get("/", s.listRent)
	rent.Post("/generate", s.generateRent)

	utilities := api.Group("/utilities", s.requireAuth)
	utilities.Get("/", s.listUtilities)
	utilities.Post("/", s.recordUtility)

	api.Post("/payments", s.requireAuth, s.recordPayment)
	api.Get("/ledger", s.requireAuth, s.ledger)
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.log.WithField("addr", addr).Info("http api listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
