package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// CreateOrderRequest body para POST /api/orders. Cada artículo arranca con
// KNITTING.received = planned_quantity y el resto de libros en cero.
type CreateOrderRequest struct {
	Code     string                 `json:"code"`
	Customer string                 `json:"customer"`
	Remarks  string                 `json:"remarks,omitempty"`
	Articles []CreateArticleRequest `json:"articles"`
}

// CreateArticleRequest un artículo dentro de la orden.
type CreateArticleRequest struct {
	Style           string                  `json:"style"`
	Size            string                  `json:"size,omitempty"`
	Color           string                  `json:"color,omitempty"`
	PlannedQuantity int64                   `json:"planned_quantity"`
	Routing         entity.RoutingAttribute `json:"routing"`
	Priority        int                     `json:"priority,omitempty"`
}

// ArticleResponse artículo en respuestas.
type ArticleResponse struct {
	ID            string                  `json:"id"`
	OrderID       string                  `json:"order_id"`
	Style         string                  `json:"style"`
	Size          string                  `json:"size,omitempty"`
	Color         string                  `json:"color,omitempty"`
	PlannedQty    int64                   `json:"planned_quantity"`
	Routing       entity.RoutingAttribute `json:"routing"`
	Priority      int                     `json:"priority"`
	Status        string                  `json:"status"`
	FrontierFloor entity.Floor            `json:"frontier_floor"`
	ProgressPct   decimal.Decimal         `json:"progress_pct"`
	OverprodRatio decimal.Decimal         `json:"overprod_ratio"`
	CreatedAt     time.Time               `json:"created_at"`
}

// OrderResponse orden con sus artículos y estado derivado.
type OrderResponse struct {
	ID        string            `json:"id"`
	Code      string            `json:"code"`
	Customer  string            `json:"customer"`
	Remarks   string            `json:"remarks,omitempty"`
	Status    string            `json:"status"`
	Articles  []ArticleResponse `json:"articles,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// StatusChangeRequest body para hold/resume/cancel de un artículo.
type StatusChangeRequest struct {
	FloorSupervisorID string `json:"floor_supervisor_id"`
	Remarks           string `json:"remarks,omitempty"`
}

// NewArticleResponse arma el DTO desde la entidad.
func NewArticleResponse(a *entity.Article) ArticleResponse {
	return ArticleResponse{
		ID:            a.ID,
		OrderID:       a.OrderID,
		Style:         a.Style,
		Size:          a.Size,
		Color:         a.Color,
		PlannedQty:    a.PlannedQty,
		Routing:       a.Routing,
		Priority:      a.Priority,
		Status:        a.Status,
		FrontierFloor: a.FrontierFloor,
		ProgressPct:   a.ProgressPct,
		OverprodRatio: a.OverprodRatio,
		CreatedAt:     a.CreatedAt,
	}
}
