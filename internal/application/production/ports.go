package production

import (
	"context"
	"time"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cada operación del motor corre completa dentro
// de un Run: la primera lectura bloquea la fila del artículo, así que dos
// operaciones concurrentes sobre el mismo artículo se serializan.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		articleRepo repository.ArticleRepository,
		ledgerRepo repository.FloorLedgerRepository,
		auditRepo repository.AuditEventRepository,
		orderRepo repository.ProductionOrderRepository,
	) error) error
}

// AuditSink recibe los eventos de auditoría DESPUÉS del commit (notificación a
// sistemas externos: reportes, tablero). Un sink lento no puede frenar el motor
// porque nunca corre con el lock del artículo tomado. Sumidero puro: el motor
// no consulta eventos por aquí.
type AuditSink interface {
	Emit(ev *entity.AuditEvent)
}

// Clock reloj inyectable para timestamps de eventos (tests deterministas).
type Clock interface {
	Now() time.Time
}
