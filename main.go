package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/medicore/hospital-app/cron"
	"github.com/medicore/hospital-app/db"
	"github.com/medicore/hospital-app/redis"
	"github.com/medicore/hospital-app/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hospital Management API")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupAdminRoutes(app)

	cron.StartCronJobs()

	log.Fatal(app.Listen(":8000"))
}
