package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación de ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create inserta la orden.
func (r *ProductionOrderRepo) Create(o *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, code, customer, remarks, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Code, o.Customer, o.Remarks, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create order: code duplicado %q: %w", o.Code, err)
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetByID obtiene la orden; nil si no existe.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `SELECT id, code, customer, remarks, status, created_at, updated_at
		FROM production_orders WHERE id = $1`
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Code, &o.Customer, &o.Remarks, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// UpdateStatus actualiza el estado derivado de la orden.
func (r *ProductionOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE production_orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// List lista órdenes paginadas, más recientes primero.
func (r *ProductionOrderRepo) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT id, code, customer, remarks, status, created_at, updated_at
		FROM production_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.Code, &o.Customer, &o.Remarks, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
