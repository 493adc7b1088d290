package production

import (
	"fmt"
	"time"

	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/production"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// TrackingUseCase ejecuta las operaciones del motor de pisos: completar trabajo,
// inspección de calidad, reclasificación de reparación, transferencia y el
// reemplazo absoluto de defectos de tejido. Cada operación es una unidad
// síncrona: valida, muta el libro del piso, agrega exactamente un evento de
// auditoría y recalcula el avance, todo dentro de una transacción, o nada.
type TrackingUseCase struct {
	txRunner TxRunner
	sink     AuditSink // opcional; se notifica después del commit
	clock    Clock
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewTrackingUseCase construye el caso de uso. sink puede ser nil.
func NewTrackingUseCase(txRunner TxRunner, sink AuditSink) *TrackingUseCase {
	return &TrackingUseCase{txRunner: txRunner, sink: sink, clock: realClock{}}
}

// WithClock reemplaza el reloj (tests deterministas).
func (uc *TrackingUseCase) WithClock(c Clock) *TrackingUseCase {
	uc.clock = c
	return uc
}

// emit notifica el evento al sink fuera de la transacción (post-commit).
func (uc *TrackingUseCase) emit(ev *entity.AuditEvent) {
	if uc.sink != nil && ev != nil {
		uc.sink.Emit(ev)
	}
}

// lockArticle carga el artículo con FOR UPDATE y rechaza mutaciones sobre
// artículos cancelados o en pausa. La frontera NO se revisa aquí: cualquier
// piso con cantidades sigue siendo trabajable aunque la frontera haya avanzado.
func lockArticle(articleRepo repository.ArticleRepository, articleID string) (*entity.Article, error) {
	article, err := articleRepo.GetForUpdate(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, articleID)
	}
	switch article.Status {
	case entity.StatusCancelled:
		return nil, fmt.Errorf("%w: el artículo está cancelado", domain.ErrValidation)
	case entity.StatusOnHold:
		return nil, fmt.Errorf("%w: el artículo está en pausa", domain.ErrValidation)
	}
	return article, nil
}

// commitMutation cierra toda operación exitosa: re-lee los libros, marca el
// artículo como completado si bodega alcanzó lo planificado, materializa el
// avance, asigna el consecutivo de auditoría, agrega el evento y deriva el
// estado de la orden. Corre dentro de la misma transacción de la mutación.
func commitMutation(
	articleRepo repository.ArticleRepository,
	ledgerRepo repository.FloorLedgerRepository,
	auditRepo repository.AuditEventRepository,
	orderRepo repository.ProductionOrderRepository,
	article *entity.Article,
	ev *entity.AuditEvent,
	now time.Time,
) error {
	ledgers, err := ledgerRepo.GetAll(article.ID)
	if err != nil {
		return err
	}
	if article.Status == entity.StatusPending {
		article.Status = entity.StatusInProgress
	}
	if production.ArticleCompleted(article.PlannedQty, ledgers) {
		article.Status = entity.StatusCompleted
	}
	article.ProgressPct, article.OverprodRatio = production.Progress(article.PlannedQty, ledgers, article.Routing)

	article.AuditSeq++
	ev.Seq = article.AuditSeq
	ev.ArticleID = article.ID
	ev.CreatedAt = now
	if err := auditRepo.Append(ev); err != nil {
		return err
	}

	article.UpdatedAt = now
	if err := articleRepo.Update(article); err != nil {
		return err
	}

	siblings, err := articleRepo.ListByOrder(article.OrderID)
	if err != nil {
		return err
	}
	return orderRepo.UpdateStatus(article.OrderID, entity.DeriveOrderStatus(siblings))
}

// requireActors valida los IDs de identidad que exige toda mutación.
func requireActors(actorUserID, floorSupervisorID string) error {
	if actorUserID == "" || floorSupervisorID == "" {
		return fmt.Errorf("%w: actor_user_id y floor_supervisor_id son obligatorios", domain.ErrValidation)
	}
	return nil
}
