package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	appprod "github.com/jhoicas/Textil-api/internal/application/production"
)

// OrderHandler maneja órdenes de producción y transiciones de estado de artículos.
type OrderHandler struct {
	uc *appprod.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *appprod.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de producción con sus artículos
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "code, customer, articles[]"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CreateOrder(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Consultar orden con artículos y estado derivado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetOrder(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	orders, err := h.uc.ListOrders(page)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(orders), "orders": orders})
}

// Hold godoc
// @Summary      Pausar artículo
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                  true  "ID del artículo"
// @Param        body  body  dto.StatusChangeRequest true  "floor_supervisor_id, remarks"
// @Success      204
// @Router       /api/articles/{id}/hold [post]
func (h *OrderHandler) Hold(c *fiber.Ctx) error {
	return h.changeStatus(c, h.uc.HoldArticle)
}

// Resume godoc
// @Summary      Reanudar artículo en pausa
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                  true  "ID del artículo"
// @Param        body  body  dto.StatusChangeRequest true  "floor_supervisor_id, remarks"
// @Success      204
// @Router       /api/articles/{id}/resume [post]
func (h *OrderHandler) Resume(c *fiber.Ctx) error {
	return h.changeStatus(c, h.uc.ResumeArticle)
}

// Cancel godoc
// @Summary      Cancelar artículo (no aplica a completados)
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                  true  "ID del artículo"
// @Param        body  body  dto.StatusChangeRequest true  "floor_supervisor_id, remarks"
// @Success      204
// @Router       /api/articles/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	return h.changeStatus(c, h.uc.CancelArticle)
}

type statusChangeFn func(ctx context.Context, articleID, actorUserID string, in dto.StatusChangeRequest) error

func (h *OrderHandler) changeStatus(c *fiber.Ctx, fn statusChangeFn) error {
	var in dto.StatusChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := fn(c.Context(), c.Params("id"), GetUserID(c), in); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
