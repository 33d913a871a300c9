package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/bookwise/bookwise/config"
	"github.com/bookwise/bookwise/cron"
	"github.com/bookwise/bookwise/db"
	"github.com/bookwise/bookwise/redis"
	"github.com/bookwise/bookwise/routes"
	"github.com/bookwise/bookwise/utils"
)

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	cache, err := redis.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	mailer := utils.NewMailer(cfg)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bookwise API")
	})

	api := app.Group("/api")
	routes.SetupAuthRoutes(api, database, cfg)
	routes.SetupServiceRoutes(api, database, cfg)
	routes.SetupWorkingHourRoutes(api, database, cache, cfg)
	routes.SetupAppointmentRoutes(api, database, mailer, cfg)

	cron.Start(database, mailer)

	log.Fatal(app.Listen(":" + cfg.Port))
}
