package http

import (
	"fmt"
	"log"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.elastic.co/apm/module/apmfiber"
)

func SetupHttpEngine() *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Use(apmfiber.Middleware())

	return app
}

func StartHttpServer(app *fiber.App, port string) {
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("failed to start http server: %v", err)
	}
}
