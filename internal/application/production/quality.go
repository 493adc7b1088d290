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

// QualityInspect divide la cantidad inspeccionada en los cuatro grados (solo
// CHECKING y FINAL_CHECKING). M1 queda habilitado para transferir de inmediato;
// M2 entra a reparación pendiente; M3/M4 son terminales: se registran y no se
// reenvían. Los grados acumulan; lo completado del piso sube con lo inspeccionado.
func (uc *TrackingUseCase) QualityInspect(ctx context.Context, articleID, actorUserID string, in dto.QualityInspectRequest) (*dto.QualityInspectResult, error) {
	if err := requireActors(actorUserID, in.FloorSupervisorID); err != nil {
		return nil, err
	}
	if !in.Floor.IsQualityGated() {
		return nil, fmt.Errorf("%w: %s no tiene control de calidad", domain.ErrValidation, in.Floor)
	}
	if in.InspectedQuantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad inspeccionada debe ser positiva", domain.ErrValidation)
	}
	if in.M1GoodQty < 0 || in.M2ReviewQty < 0 || in.M3MinorDefectQty < 0 || in.M4MajorDefectQty < 0 {
		return nil, fmt.Errorf("%w: los grados no pueden ser negativos", domain.ErrValidation)
	}
	if sum := in.M1GoodQty + in.M2ReviewQty + in.M3MinorDefectQty + in.M4MajorDefectQty; sum != in.InspectedQuantity {
		return nil, fmt.Errorf("%w: m1+m2+m3+m4=%d pero inspeccionado=%d", domain.ErrQuantityMismatch, sum, in.InspectedQuantity)
	}

	var result *dto.QualityInspectResult
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
		pending := ledger.Received - ledger.Grades.Inspected()
		if in.InspectedQuantity > pending {
			return fmt.Errorf("%w: inspeccionar %d excede lo pendiente de inspección (%d) en %s",
				domain.ErrInvariantViolation, in.InspectedQuantity, pending, in.Floor)
		}

		ledger.Grades.M1GoodQty += in.M1GoodQty
		ledger.Grades.M2ReviewQty += in.M2ReviewQty
		ledger.Grades.M3MinorDefectQty += in.M3MinorDefectQty
		ledger.Grades.M4MajorDefectQty += in.M4MajorDefectQty
		ledger.Completed += in.InspectedQuantity
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
			Action:            entity.ActionQualityInspected,
			QuantityDelta:     in.InspectedQuantity,
			M1Delta:           in.M1GoodQty,
			M2Delta:           in.M2ReviewQty,
			M3Delta:           in.M3MinorDefectQty,
			M4Delta:           in.M4MajorDefectQty,
			ActorUserID:       actorUserID,
			FloorSupervisorID: in.FloorSupervisorID,
			Remarks:           in.Remarks,
		}
		if err := commitMutation(articleRepo, ledgerRepo, auditRepo, orderRepo, article, ev, now); err != nil {
			return err
		}
		emitted = ev
		result = &dto.QualityInspectResult{
			ArticleID: articleID,
			Floor:     in.Floor,
			Completed: ledger.Completed,
			Grades: dto.GradesDTO{
				M1GoodQty:        ledger.Grades.M1GoodQty,
				M2ReviewQty:      ledger.Grades.M2ReviewQty,
				M3MinorDefectQty: ledger.Grades.M3MinorDefectQty,
				M4MajorDefectQty: ledger.Grades.M4MajorDefectQty,
			},
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

// RepairShift reclasifica saldo M2 (pendiente de reparación) hacia M1/M3/M4.
// Lotes de cualquier tamaño no negativo: el "lote de 10" es política de UI, no
// regla del motor. Puede llamarse cuantas veces haga falta mientras quede saldo.
func (uc *TrackingUseCase) RepairShift(ctx context.Context, articleID, actorUserID string, in dto.RepairShiftRequest) (*dto.QualityInspectResult, error) {
	if err := requireActors(actorUserID, in.FloorSupervisorID); err != nil {
		return nil, err
	}
	if !in.Floor.IsQualityGated() {
		return nil, fmt.Errorf("%w: %s no tiene control de calidad", domain.ErrValidation, in.Floor)
	}
	if in.FromM2 < 0 || in.ToM1 < 0 || in.ToM3 < 0 || in.ToM4 < 0 {
		return nil, fmt.Errorf("%w: cantidades negativas", domain.ErrValidation)
	}
	if in.ToM1+in.ToM3+in.ToM4 != in.FromM2 {
		return nil, fmt.Errorf("%w: to_m1+to_m3+to_m4=%d pero from_m2=%d",
			domain.ErrQuantityMismatch, in.ToM1+in.ToM3+in.ToM4, in.FromM2)
	}

	var result *dto.QualityInspectResult
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
		ledger, err := ledgerRepo.Get(articleID, in.Floor)
		if err != nil {
			return err
		}
		if in.FromM2 > ledger.Grades.M2ReviewQty {
			return fmt.Errorf("%w: reclasificar %d excede el saldo M2 (%d) en %s",
				domain.ErrInvariantViolation, in.FromM2, ledger.Grades.M2ReviewQty, in.Floor)
		}

		ledger.Grades.M2ReviewQty -= in.FromM2
		ledger.Grades.M1GoodQty += in.ToM1
		ledger.Grades.M3MinorDefectQty += in.ToM3
		ledger.Grades.M4MajorDefectQty += in.ToM4
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
			Action:            entity.ActionRepairShifted,
			QuantityDelta:     in.FromM2,
			M1Delta:           in.ToM1,
			M2Delta:           -in.FromM2,
			M3Delta:           in.ToM3,
			M4Delta:           in.ToM4,
			ActorUserID:       actorUserID,
			FloorSupervisorID: in.FloorSupervisorID,
			Remarks:           in.Remarks,
		}
		if err := commitMutation(articleRepo, ledgerRepo, auditRepo, orderRepo, article, ev, now); err != nil {
			return err
		}
		emitted = ev
		result = &dto.QualityInspectResult{
			ArticleID: articleID,
			Floor:     in.Floor,
			Completed: ledger.Completed,
			Grades: dto.GradesDTO{
				M1GoodQty:        ledger.Grades.M1GoodQty,
				M2ReviewQty:      ledger.Grades.M2ReviewQty,
				M3MinorDefectQty: ledger.Grades.M3MinorDefectQty,
				M4MajorDefectQty: ledger.Grades.M4MajorDefectQty,
			},
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
