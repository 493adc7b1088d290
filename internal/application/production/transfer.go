package production

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/production"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// Transfer mueve cantidad habilitada de un piso al siguiente de la ruta.
// Conservación estricta: lo que sale de transferred_out del origen entra a
// received del destino, en la misma transacción. Avanza la frontera del
// artículo al piso destino: puntero informativo, nunca una compuerta. Las
// transferencias suelen ser parciales y puede quedar trabajo legítimo en
// varios pisos a la vez.
func (uc *TrackingUseCase) Transfer(ctx context.Context, articleID, actorUserID string, in dto.TransferRequest) (*dto.TransferResult, error) {
	if err := requireActors(actorUserID, in.FloorSupervisorID); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad a transferir debe ser positiva", domain.ErrValidation)
	}

	var result *dto.TransferResult
	var emitted *entity.AuditEvent
	err := uc.txRunner.Run(ctx, func(
		articleRepo repository.ArticleRepository,
		ledgerRepo repository.FloorLedgerRepository,
		auditRepo repository.AuditEventRepository,
		orderRepo repository.ProductionOrderRepository,
	) error {
		article, err := lockArticle(articleRepo, articleID)
		if err != nil {
			return err
		}
		toFloor, err := production.NextFloor(article.Routing, in.FromFloor)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		from, err := ledgerRepo.Get(articleID, in.FromFloor)
		if err != nil {
			return err
		}
		if available := from.AvailableToTransfer(); in.Quantity > available {
			return fmt.Errorf("%w: transferir %d excede lo disponible (%d) en %s",
				domain.ErrInvariantViolation, in.Quantity, available, in.FromFloor)
		}
		to, err := ledgerRepo.Get(articleID, toFloor)
		if err != nil {
			return err
		}

		from.TransferredOut += in.Quantity
		to.Received += in.Quantity
		from.UpdatedAt = now
		to.UpdatedAt = now
		if err := from.Validate(); err != nil {
			return err
		}
		if err := to.Validate(); err != nil {
			return err
		}
		if err := ledgerRepo.Upsert(from); err != nil {
			return err
		}
		if err := ledgerRepo.Upsert(to); err != nil {
			return err
		}

		article.FrontierFloor = toFloor

		ev := &entity.AuditEvent{
			ID:                uuid.New().String(),
			Floor:             in.FromFloor,
			Action:            entity.ActionTransferred,
			QuantityDelta:     in.Quantity,
			ToFloor:           &toFloor,
			BatchNumber:       in.BatchNumber,
			ActorUserID:       actorUserID,
			FloorSupervisorID: in.FloorSupervisorID,
			Remarks:           in.Remarks,
		}
		if err := commitMutation(articleRepo, ledgerRepo, auditRepo, orderRepo, article, ev, now); err != nil {
			return err
		}
		emitted = ev
		result = &dto.TransferResult{
			ArticleID:          articleID,
			FromFloor:          in.FromFloor,
			ToFloor:            toFloor,
			Quantity:           in.Quantity,
			FromAvailableAfter: from.AvailableToTransfer(),
			ToReceivedAfter:    to.Received,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.emit(emitted)
	return result, nil
}
