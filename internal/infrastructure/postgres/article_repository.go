package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación de ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

const articleColumns = `
	id, order_id, style, size_label, color, planned_qty, routing, priority,
	status, frontier_floor, audit_seq, progress_pct, overprod_ratio, created_at, updated_at`

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	var routing, frontier string
	err := row.Scan(
		&a.ID, &a.OrderID, &a.Style, &a.Size, &a.Color, &a.PlannedQty, &routing, &a.Priority,
		&a.Status, &frontier, &a.AuditSeq, &a.ProgressPct, &a.OverprodRatio, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Routing = entity.RoutingAttribute(routing)
	f, err := entity.ParseFloor(frontier)
	if err != nil {
		return nil, fmt.Errorf("scan article: %w", err)
	}
	a.FrontierFloor = f
	return &a, nil
}

// Create inserta el artículo.
func (r *ArticleRepo) Create(a *entity.Article) error {
	query := `
		INSERT INTO articles (id, order_id, style, size_label, color, planned_qty, routing, priority,
			status, frontier_floor, audit_seq, progress_pct, overprod_ratio, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.OrderID, a.Style, a.Size, a.Color, a.PlannedQty, string(a.Routing), a.Priority,
		a.Status, a.FrontierFloor.String(), a.AuditSeq, a.ProgressPct, a.OverprodRatio, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create article: id duplicado: %w", err)
		}
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// GetByID obtiene el artículo; nil si no existe.
func (r *ArticleRepo) GetByID(id string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	a, err := scanArticle(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// GetForUpdate obtiene el artículo y bloquea su fila (SELECT FOR UPDATE).
// Este lock serializa las operaciones concurrentes sobre el mismo artículo.
func (r *ArticleRepo) GetForUpdate(id string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1 FOR UPDATE`
	a, err := scanArticle(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article for update: %w", err)
	}
	return a, nil
}

// Update actualiza los campos mutables del artículo.
func (r *ArticleRepo) Update(a *entity.Article) error {
	query := `
		UPDATE articles
		SET status = $2, frontier_floor = $3, audit_seq = $4,
			progress_pct = $5, overprod_ratio = $6, priority = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Status, a.FrontierFloor.String(), a.AuditSeq,
		a.ProgressPct, a.OverprodRatio, a.Priority, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// ListByOrder lista los artículos de una orden.
func (r *ArticleRepo) ListByOrder(orderID string) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var out []*entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
