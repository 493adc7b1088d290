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

// CompleteWork suma trabajo terminado en un piso (acumulativo por sesión).
// En tejido no hay tope: la sobreproducción es legítima. En cualquier otro piso
// el completado resultante no puede exceder lo recibido.
func (uc *TrackingUseCase) CompleteWork(ctx context.Context, articleID, actorUserID string, in dto.CompleteWorkRequest) (*dto.CompleteWorkResult, error) {
	if err := requireActors(actorUserID, in.FloorSupervisorID); err != nil {
		return nil, err
	}
	if in.AdditionalQuantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad adicional no puede ser negativa", domain.ErrValidation)
	}
	if in.Floor.IsQualityGated() {
		return nil, fmt.Errorf("%w: en %s lo completado avanza por inspección de calidad", domain.ErrValidation, in.Floor)
	}

	var result *dto.CompleteWorkResult
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
		if !production.InRoute(article.Routing, in.Floor) {
			return fmt.Errorf("%w: %s no pertenece a la ruta %s", domain.ErrInvalidTransition, in.Floor, article.Routing)
		}

		now := uc.clock.Now()
		ledger, err := ledgerRepo.Get(articleID, in.Floor)
		if err != nil {
			return err
		}
		prev := ledger.Completed
		ledger.Completed += in.AdditionalQuantity
		ledger.UpdatedAt = now
		if err := ledger.Validate(); err != nil {
			return err
		}
		if err := ledgerRepo.Upsert(ledger); err != nil {
			return err
		}

		ev := &entity.AuditEvent{
			ID:                uuid.New().String(),
			Floor:             in.Floor,
			Action:            entity.ActionWorkCompleted,
			QuantityDelta:     in.AdditionalQuantity,
			ActorUserID:       actorUserID,
			FloorSupervisorID: in.FloorSupervisorID,
			Remarks:           in.Remarks,
			MachineID:         in.MachineID,
			ShiftID:           in.ShiftID,
		}
		if err := commitMutation(articleRepo, ledgerRepo, auditRepo, orderRepo, article, ev, now); err != nil {
			return err
		}
		emitted = ev
		result = &dto.CompleteWorkResult{
			ArticleID:           articleID,
			Floor:               in.Floor,
			PreviousCompleted:   prev,
			NewCompleted:        ledger.Completed,
			Delta:               in.AdditionalQuantity,
			AvailableToTransfer: ledger.AvailableToTransfer(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.emit(emitted)
	return result, nil
}

// SetKnittingDefects fija el total de defectos mayores detectados en tejido.
// Reemplazo absoluto (no acumula): es la única operación del motor con esa
// semántica y por eso tiene nombre propio. Reduce lo habilitado para
// transferir desde tejido: habilitado = completado − defectos mayores.
func (uc *TrackingUseCase) SetKnittingDefects(ctx context.Context, articleID, actorUserID string, in dto.SetKnittingDefectsRequest) (*dto.FloorStatusDTO, error) {
	if err := requireActors(actorUserID, in.FloorSupervisorID); err != nil {
		return nil, err
	}
	if in.M4Quantity < 0 {
		return nil, fmt.Errorf("%w: m4_quantity no puede ser negativo", domain.ErrValidation)
	}

	var result *dto.FloorStatusDTO
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

		now := uc.clock.Now()
		ledger, err := ledgerRepo.Get(articleID, entity.FloorKnitting)
		if err != nil {
			return err
		}
		delta := in.M4Quantity - ledger.Grades.M4MajorDefectQty
		ledger.Grades.M4MajorDefectQty = in.M4Quantity
		ledger.UpdatedAt = now
		if err := ledger.Validate(); err != nil {
			return err
		}
		if err := ledgerRepo.Upsert(ledger); err != nil {
			return err
		}

		ev := &entity.AuditEvent{
			ID:                uuid.New().String(),
			Floor:             entity.FloorKnitting,
			Action:            entity.ActionKnittingDefectsSet,
			QuantityDelta:     delta,
			M4Delta:           delta,
			ActorUserID:       actorUserID,
			FloorSupervisorID: in.FloorSupervisorID,
			Remarks:           in.Remarks,
			MachineID:         in.MachineID,
			ShiftID:           in.ShiftID,
		}
		if err := commitMutation(articleRepo, ledgerRepo, auditRepo, orderRepo, article, ev, now); err != nil {
			return err
		}
		emitted = ev
		status := dto.NewFloorStatusDTO(ledger)
		result = &status
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.emit(emitted)
	return result, nil
}
