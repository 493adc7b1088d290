package repository

import "github.com/jhoicas/Textil-api/internal/domain/entity"

// AuditEventRepository bitácora append-only. Append corre dentro de la misma
// transacción que la mutación del libro; nunca se actualiza ni borra un evento.
type AuditEventRepository interface {
	Append(ev *entity.AuditEvent) error
	ListByArticle(articleID string) ([]*entity.AuditEvent, error)
}
