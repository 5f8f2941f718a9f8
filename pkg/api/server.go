package api

import (
	"github.com/fremantleline/fremantleline/pkg/api/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewApp(newOperator routes.OperatorFactory) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), newOperator)

	return webApp
}

func SetupServer(listen string, newOperator routes.OperatorFactory) error {
	return NewApp(newOperator).Listen(listen)
}
