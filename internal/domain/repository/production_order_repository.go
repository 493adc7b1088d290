package repository

import "github.com/jhoicas/Textil-api/internal/domain/entity"

// ProductionOrderRepository acceso a órdenes de producción.
type ProductionOrderRepository interface {
	Create(o *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.ProductionOrder, error)
}
