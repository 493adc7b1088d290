package repository

import "github.com/jhoicas/Textil-api/internal/domain/entity"

// ArticleRepository acceso a artículos. GetForUpdate bloquea la fila del
// artículo (SELECT FOR UPDATE): ese lock es la unidad de exclusión mutua del
// motor: serializa todas las operaciones sobre un mismo artículo y deja los
// demás artículos libres.
type ArticleRepository interface {
	Create(a *entity.Article) error
	GetByID(id string) (*entity.Article, error)
	GetForUpdate(id string) (*entity.Article, error)
	Update(a *entity.Article) error
	ListByOrder(orderID string) ([]*entity.Article, error)
}
