package auditlog

import (
	"github.com/jhoicas/Textil-api/internal/application/production"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/pkg/logger"
)

var _ production.AuditSink = (*ZerologSink)(nil)

// ZerologSink publica cada evento de auditoría como línea estructurada.
// Se invoca después del commit: el almacenamiento y consulta de eventos para
// reportes es responsabilidad de un sistema externo que consume este stream.
type ZerologSink struct {
	log *logger.Logger
}

// NewZerologSink construye el sink.
func NewZerologSink(log *logger.Logger) *ZerologSink {
	return &ZerologSink{log: log}
}

// Emit publica el evento. Nunca devuelve error: un sink lento o roto no puede
// afectar una mutación ya confirmada.
func (s *ZerologSink) Emit(ev *entity.AuditEvent) {
	s.log.Info().
		Str("article_id", ev.ArticleID).
		Int64("seq", ev.Seq).
		Str("floor", ev.Floor.String()).
		Str("action", ev.Action).
		Int64("quantity_delta", ev.QuantityDelta).
		Str("actor_user_id", ev.ActorUserID).
		Str("floor_supervisor_id", ev.FloorSupervisorID).
		Msg("evento de auditoría")
}
