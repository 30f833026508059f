package web

import (
	"empdir/inner/common"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// структура веб-сервера
type Server struct {
	App *fiber.App
	// группа публичного API, маршруты без префикса: "/employees"
	GroupPublic fiber.Router
	// группа непубличного API
	GroupInternal fiber.Router
	// реестр метрик этого сервера
	Registry *prometheus.Registry
}

// функция-конструктор
func NewServer(logger *common.Logger) *Server {

	// создаём новый веб-сервер
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Middleware для восстановления от паники
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Middleware для добавления уникального ID к каждому запросу
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// журнал запросов
	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Logger,
		Fields: []string{"requestId", "status", "method", "path", "latency", "ip"},
	}))

	app.Use(newHttpMetrics(registry).Middleware())

	groupInternal := app.Group("/internal")

	// Middleware для внутренних маршрутов
	groupInternal.Use(func(c *fiber.Ctx) error {
		c.Set("X-Internal-API", "true")
		return c.Next()
	})

	groupPublic := app.Group("")

	InitSwagger(app)

	return &Server{
		App:           app,
		GroupPublic:   groupPublic,
		GroupInternal: groupInternal,
		Registry:      registry,
	}
}
