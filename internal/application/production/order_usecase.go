package production

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// OrderUseCase crea órdenes con sus artículos y maneja las transiciones de
// estado explícitas (pausa, reanudación, cancelación). El estado de la orden
// nunca se fija a mano: se deriva del artículo menos avanzado.
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.ProductionOrderRepository
	artRepo   repository.ArticleRepository
	sink      AuditSink
	clock     Clock
}

// NewOrderUseCase construye el caso de uso. sink puede ser nil.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.ProductionOrderRepository,
	artRepo repository.ArticleRepository,
	sink AuditSink,
) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, artRepo: artRepo, sink: sink, clock: realClock{}}
}

// WithClock reemplaza el reloj (tests deterministas).
func (uc *OrderUseCase) WithClock(c Clock) *OrderUseCase {
	uc.clock = c
	return uc
}

// CreateOrder crea la orden y sus artículos: cada artículo arranca con
// KNITTING.received = cantidad planificada (fija de ahí en adelante), el resto
// de libros en cero, y un evento ARTICLE_CREATED con consecutivo 1.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, actorUserID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if actorUserID == "" {
		return nil, fmt.Errorf("%w: actor_user_id es obligatorio", domain.ErrValidation)
	}
	if in.Code == "" {
		return nil, fmt.Errorf("%w: code es obligatorio", domain.ErrValidation)
	}
	if len(in.Articles) == 0 {
		return nil, fmt.Errorf("%w: la orden necesita al menos un artículo", domain.ErrValidation)
	}
	for i, a := range in.Articles {
		if a.Style == "" {
			return nil, fmt.Errorf("%w: artículo %d sin referencia (style)", domain.ErrValidation, i)
		}
		if a.PlannedQuantity <= 0 {
			return nil, fmt.Errorf("%w: artículo %d con cantidad planificada inválida", domain.ErrValidation, i)
		}
		if !a.Routing.Valid() {
			return nil, fmt.Errorf("%w: artículo %d con atributo de ruteo desconocido %q", domain.ErrValidation, i, a.Routing)
		}
	}

	now := uc.clock.Now()
	order := &entity.ProductionOrder{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Customer:  in.Customer,
		Remarks:   in.Remarks,
		Status:    entity.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var resp *dto.OrderResponse
	var created []*entity.AuditEvent
	err := uc.txRunner.Run(ctx, func(
		articleRepo repository.ArticleRepository,
		ledgerRepo repository.FloorLedgerRepository,
		auditRepo repository.AuditEventRepository,
		orderRepo repository.ProductionOrderRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		articles := make([]dto.ArticleResponse, 0, len(in.Articles))
		for _, a := range in.Articles {
			article := &entity.Article{
				ID:            uuid.New().String(),
				OrderID:       order.ID,
				Style:         a.Style,
				Size:          a.Size,
				Color:         a.Color,
				PlannedQty:    a.PlannedQuantity,
				Routing:       a.Routing,
				Priority:      a.Priority,
				Status:        entity.StatusPending,
				FrontierFloor: entity.FloorKnitting,
				AuditSeq:      1,
				ProgressPct:   decimal.Zero,
				OverprodRatio: decimal.Zero,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := articleRepo.Create(article); err != nil {
				return err
			}
			for _, l := range entity.NewFloorLedgers(article.ID, a.PlannedQuantity, now) {
				if err := ledgerRepo.Upsert(l); err != nil {
					return err
				}
			}
			ev := &entity.AuditEvent{
				ID:            uuid.New().String(),
				ArticleID:     article.ID,
				Seq:           1,
				Floor:         entity.FloorKnitting,
				Action:        entity.ActionArticleCreated,
				QuantityDelta: a.PlannedQuantity,
				ActorUserID:   actorUserID,
				Remarks:       in.Remarks,
				CreatedAt:     now,
			}
			if err := auditRepo.Append(ev); err != nil {
				return err
			}
			created = append(created, ev)
			articles = append(articles, dto.NewArticleResponse(article))
		}
		resp = &dto.OrderResponse{
			ID:        order.ID,
			Code:      order.Code,
			Customer:  order.Customer,
			Remarks:   order.Remarks,
			Status:    order.Status,
			Articles:  articles,
			CreatedAt: order.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.sink != nil {
		for _, ev := range created {
			uc.sink.Emit(ev)
		}
	}
	return resp, nil
}

// GetOrder devuelve la orden con sus artículos y el estado derivado.
func (uc *OrderUseCase) GetOrder(orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
	}
	articles, err := uc.artRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderResponse{
		ID:        order.ID,
		Code:      order.Code,
		Customer:  order.Customer,
		Remarks:   order.Remarks,
		Status:    entity.DeriveOrderStatus(articles),
		CreatedAt: order.CreatedAt,
	}
	for _, a := range articles {
		out.Articles = append(out.Articles, dto.NewArticleResponse(a))
	}
	return out, nil
}

// ListOrders lista órdenes paginadas (sin artículos).
func (uc *OrderUseCase) ListOrders(page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.OrderResponse{
			ID:        o.ID,
			Code:      o.Code,
			Customer:  o.Customer,
			Remarks:   o.Remarks,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		})
	}
	return out, nil
}

// HoldArticle pausa un artículo (desde pending o in-progress).
func (uc *OrderUseCase) HoldArticle(ctx context.Context, articleID, actorUserID string, in dto.StatusChangeRequest) error {
	return uc.changeStatus(ctx, articleID, actorUserID, in, entity.StatusOnHold)
}

// ResumeArticle reanuda un artículo en pausa. Vuelve a in-progress si ya había
// trabajo registrado, a pending si no.
func (uc *OrderUseCase) ResumeArticle(ctx context.Context, articleID, actorUserID string, in dto.StatusChangeRequest) error {
	return uc.changeStatus(ctx, articleID, actorUserID, in, "")
}

// CancelArticle cancela un artículo. Un artículo completado no se cancela:
// los artículos con cantidades nunca se borran, solo se soft-completan.
func (uc *OrderUseCase) CancelArticle(ctx context.Context, articleID, actorUserID string, in dto.StatusChangeRequest) error {
	return uc.changeStatus(ctx, articleID, actorUserID, in, entity.StatusCancelled)
}

// changeStatus aplica la transición bajo el lock del artículo y emite
// STATUS_CHANGED. target vacío significa "reanudar".
func (uc *OrderUseCase) changeStatus(ctx context.Context, articleID, actorUserID string, in dto.StatusChangeRequest, target string) error {
	if err := requireActors(actorUserID, in.FloorSupervisorID); err != nil {
		return err
	}
	var emitted *entity.AuditEvent
	err := uc.txRunner.Run(ctx, func(
		articleRepo repository.ArticleRepository,
		ledgerRepo repository.FloorLedgerRepository,
		auditRepo repository.AuditEventRepository,
		orderRepo repository.ProductionOrderRepository,
	) error {
		article, err := articleRepo.GetForUpdate(articleID)
		if err != nil {
			return err
		}
		if article == nil {
			return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, articleID)
		}

		next := target
		switch target {
		case entity.StatusOnHold:
			if article.Status != entity.StatusPending && article.Status != entity.StatusInProgress {
				return fmt.Errorf("%w: no se puede pausar un artículo %s", domain.ErrValidation, article.Status)
			}
		case entity.StatusCancelled:
			if article.Status == entity.StatusCompleted {
				return fmt.Errorf("%w: no se puede cancelar un artículo completado", domain.ErrValidation)
			}
			if article.Status == entity.StatusCancelled {
				return fmt.Errorf("%w: el artículo ya está cancelado", domain.ErrValidation)
			}
		case "": // reanudar
			if article.Status != entity.StatusOnHold {
				return fmt.Errorf("%w: solo se reanudan artículos en pausa", domain.ErrValidation)
			}
			next = entity.StatusPending
			ledgers, err := ledgerRepo.GetAll(articleID)
			if err != nil {
				return err
			}
			for _, l := range ledgers {
				if l.Completed > 0 {
					next = entity.StatusInProgress
					break
				}
			}
		}

		now := uc.clock.Now()
		article.Status = next
		article.AuditSeq++
		article.UpdatedAt = now
		ev := &entity.AuditEvent{
			ID:                uuid.New().String(),
			ArticleID:         articleID,
			Seq:               article.AuditSeq,
			Floor:             article.FrontierFloor,
			Action:            entity.ActionStatusChanged,
			ActorUserID:       actorUserID,
			FloorSupervisorID: in.FloorSupervisorID,
			Remarks:           in.Remarks,
			CreatedAt:         now,
		}
		if err := auditRepo.Append(ev); err != nil {
			return err
		}
		if err := articleRepo.Update(article); err != nil {
			return err
		}
		siblings, err := articleRepo.ListByOrder(article.OrderID)
		if err != nil {
			return err
		}
		if err := orderRepo.UpdateStatus(article.OrderID, entity.DeriveOrderStatus(siblings)); err != nil {
			return err
		}
		emitted = ev
		return nil
	})
	if err != nil {
		return err
	}
	if uc.sink != nil && emitted != nil {
		uc.sink.Emit(emitted)
	}
	return nil
}
