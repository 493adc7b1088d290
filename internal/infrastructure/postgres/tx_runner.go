package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Textil-api/internal/application/production"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// Ensure TxRunner implements production.TxRunner.
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. El lock por
// artículo (SELECT FOR UPDATE en articles) vive dentro de la tx: al hacer
// Commit o Rollback se libera, y solo entonces se notifica al sink de auditoría.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	articleRepo repository.ArticleRepository,
	ledgerRepo repository.FloorLedgerRepository,
	auditRepo repository.AuditEventRepository,
	orderRepo repository.ProductionOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	articleRepo := NewArticleRepository(tx)
	ledgerRepo := NewFloorLedgerRepository(tx)
	auditRepo := NewAuditEventRepository(tx)
	orderRepo := NewProductionOrderRepository(tx)

	if err := fn(articleRepo, ledgerRepo, auditRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
