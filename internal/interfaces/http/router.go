package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Textil-api/internal/application/auth"
	appprod "github.com/jhoicas/Textil-api/internal/application/production"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TrackingUC *appprod.TrackingUseCase
	StatusUC   *appprod.StatusUseCase
	OrderUC    *appprod.OrderUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Órdenes de producción (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)

	// Artículos (protegido)
	articles := protected.Group("/articles")
	trackingHandler := NewTrackingHandler(deps.TrackingUC, deps.StatusUC)

	// Mutaciones del motor de pisos
	articles.Post("/:id/work", trackingHandler.CompleteWork)
	articles.Post("/:id/quality", trackingHandler.QualityInspect)
	articles.Post("/:id/transfer", trackingHandler.Transfer)
	articles.Post("/:id/knitting-defects", trackingHandler.SetKnittingDefects)

	// Reclasificación de reparaciones y cambios de estado: solo supervisor o admin
	supervisor := RequireRole(entity.RoleSupervisor, entity.RoleAdmin)
	articles.Post("/:id/repair", supervisor, trackingHandler.RepairShift)
	articles.Post("/:id/hold", supervisor, orderHandler.Hold)
	articles.Post("/:id/resume", supervisor, orderHandler.Resume)
	articles.Post("/:id/cancel", supervisor, orderHandler.Cancel)

	// Lecturas
	articles.Get("/:id/floors", trackingHandler.GetAllFloorStatuses)
	articles.Get("/:id/floors/:floor", trackingHandler.GetFloorStatus)
	articles.Get("/:id/progress", trackingHandler.Progress)
	articles.Get("/:id/events", trackingHandler.ListEvents)
}
