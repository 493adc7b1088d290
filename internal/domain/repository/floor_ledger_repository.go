package repository

import "github.com/jhoicas/Textil-api/internal/domain/entity"

// FloorLedgerRepository acceso a los libros por (artículo, piso). Tabla
// explícita keyed por (article_id, floor): el puntero de frontera del artículo
// no esconde el historial ni bloquea pisos ya superados.
type FloorLedgerRepository interface {
	Get(articleID string, floor entity.Floor) (*entity.FloorLedger, error)
	GetAll(articleID string) (map[entity.Floor]*entity.FloorLedger, error)
	Upsert(l *entity.FloorLedger) error
}
