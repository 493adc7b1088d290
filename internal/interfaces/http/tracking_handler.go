package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	appprod "github.com/jhoicas/Textil-api/internal/application/production"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// TrackingHandler expone las operaciones del motor de pisos sobre un artículo.
type TrackingHandler struct {
	tracking *appprod.TrackingUseCase
	status   *appprod.StatusUseCase
}

// NewTrackingHandler construye el handler.
func NewTrackingHandler(tracking *appprod.TrackingUseCase, status *appprod.StatusUseCase) *TrackingHandler {
	return &TrackingHandler{tracking: tracking, status: status}
}

// CompleteWork godoc
// @Summary      Registrar trabajo terminado en un piso (acumulativo)
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del artículo"
// @Param        body  body  dto.CompleteWorkRequest  true  "floor, additional_quantity, floor_supervisor_id"
// @Success      200   {object}  dto.CompleteWorkResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/work [post]
func (h *TrackingHandler) CompleteWork(c *fiber.Ctx) error {
	var in dto.CompleteWorkRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.tracking.CompleteWork(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// QualityInspect godoc
// @Summary      Dividir cantidad inspeccionada en grados M1-M4 (CHECKING / FINAL_CHECKING)
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del artículo"
// @Param        body  body  dto.QualityInspectRequest  true  "floor, inspected_quantity, m1..m4, floor_supervisor_id"
// @Success      200   {object}  dto.QualityInspectResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/quality [post]
func (h *TrackingHandler) QualityInspect(c *fiber.Ctx) error {
	var in dto.QualityInspectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.tracking.QualityInspect(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// RepairShift godoc
// @Summary      Reclasificar saldo M2 hacia M1/M3/M4
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del artículo"
// @Param        body  body  dto.RepairShiftRequest  true  "floor, from_m2, to_m1, to_m3, to_m4, floor_supervisor_id"
// @Success      200   {object}  dto.QualityInspectResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/repair [post]
func (h *TrackingHandler) RepairShift(c *fiber.Ctx) error {
	var in dto.RepairShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.tracking.RepairShift(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// Transfer godoc
// @Summary      Transferir cantidad habilitada al siguiente piso de la ruta
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del artículo"
// @Param        body  body  dto.TransferRequest  true  "from_floor, quantity, batch_number, floor_supervisor_id"
// @Success      200   {object}  dto.TransferResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/transfer [post]
func (h *TrackingHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.tracking.Transfer(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// SetKnittingDefects godoc
// @Summary      Fijar total de defectos mayores en tejido (reemplazo absoluto)
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del artículo"
// @Param        body  body  dto.SetKnittingDefectsRequest  true  "m4_quantity, floor_supervisor_id"
// @Success      200   {object}  dto.FloorStatusDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/knitting-defects [post]
func (h *TrackingHandler) SetKnittingDefects(c *fiber.Ctx) error {
	var in dto.SetKnittingDefectsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.tracking.SetKnittingDefects(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// GetAllFloorStatuses godoc
// @Summary      Libros de todos los pisos de la ruta del artículo
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {array}   dto.FloorStatusDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/floors [get]
func (h *TrackingHandler) GetAllFloorStatuses(c *fiber.Ctx) error {
	statuses, err := h.status.GetAllFloorStatuses(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"floors": statuses})
}

// GetFloorStatus godoc
// @Summary      Libro de un piso del artículo
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        id     path      string  true  "ID del artículo"
// @Param        floor  path      string  true  "Piso (KNITTING, LINKING, ...)"
// @Success      200    {object}  dto.FloorStatusDTO
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/floors/{floor} [get]
func (h *TrackingHandler) GetFloorStatus(c *fiber.Ctx) error {
	floor, err := entity.ParseFloor(c.Params("floor"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	status, err := h.status.GetFloorStatus(c.Params("id"), floor)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(status)
}

// Progress godoc
// @Summary      Avance del artículo (porcentaje recortado y razón sin recortar)
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {object}  dto.ArticleProgressDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/progress [get]
func (h *TrackingHandler) Progress(c *fiber.Ctx) error {
	progress, err := h.status.Progress(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(progress)
}

// ListEvents godoc
// @Summary      Bitácora de auditoría del artículo, ordenada por consecutivo
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del artículo"
// @Success      200  {array}   dto.AuditEventDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/events [get]
func (h *TrackingHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.status.ListEvents(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(events), "events": events})
}
