package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medicore/hospital-app/controllers"
	"github.com/medicore/hospital-app/middleware"
)

// SetupAdminRoutes configures rooms, specialties, dashboard and RBAC routes
func SetupAdminRoutes(app *fiber.App) {
	room := app.Group("/rooms", middleware.Protected())
	room.Get("/", middleware.RequirePermission("rooms", "read"), controllers.GetAllRooms)
	room.Get("/:id", middleware.RequirePermission("rooms", "read"), controllers.GetRoom)
	room.Post("/", middleware.RequirePermission("rooms", "create"), controllers.CreateRoom)
	room.Patch("/:id", middleware.RequirePermission("rooms", "update"), controllers.UpdateRoom)
	room.Delete("/:id", middleware.RequirePermission("rooms", "delete"), controllers.DeleteRoom)

	specialty := app.Group("/specialties")
	specialty.Get("/", controllers.GetAllSpecialties)
	specialty.Get("/:id", controllers.GetSpecialty)
	specialty.Post("/", middleware.Protected(), middleware.RequirePermission("specialties", "create"), controllers.CreateSpecialty)
	specialty.Put("/:id", middleware.Protected(), middleware.RequirePermission("specialties", "update"), controllers.UpdateSpecialty)
	specialty.Delete("/:id", middleware.Protected(), middleware.RequirePermission("specialties", "delete"), controllers.DeleteSpecialty)

	dashboard := app.Group("/dashboard", middleware.Protected())
	dashboard.Get("/stats", middleware.RequireRole("admin"), controllers.GetDashboardStats)

	notification := app.Group("/notifications", middleware.Protected())
	notification.Get("/", controllers.GetMyNotifications)
	notification.Patch("/:id/read", controllers.MarkNotificationRead)

	rbac := app.Group("/rbac", middleware.Protected())
	rbac.Post("/roles", middleware.RequireRole("admin"), controllers.CreateRole)
	rbac.Get("/roles", middleware.RequirePermission("roles", "read"), controllers.GetRoles)
	rbac.Post("/permissions", middleware.RequireRole("admin"), controllers.CreatePermission)
	rbac.Get("/permissions", middleware.RequirePermission("permissions", "read"), controllers.GetPermissions)
	rbac.Post("/users/role", middleware.RequireRole("admin"), controllers.AssignRoleToUser)
	rbac.Post("/roles/permission", middleware.RequireRole("admin"), controllers.AssignPermissionToRole)
}
