package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

var _ repository.FloorLedgerRepository = (*FloorLedgerRepo)(nil)

// FloorLedgerRepo implementación de FloorLedgerRepository sobre PostgreSQL.
// Tabla floor_ledgers con PK (article_id, floor): una fila por piso, el
// historial completo del artículo siempre visible.
type FloorLedgerRepo struct {
	q Querier
}

// NewFloorLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFloorLedgerRepository(q Querier) *FloorLedgerRepo {
	return &FloorLedgerRepo{q: q}
}

const ledgerColumns = `
	article_id, floor, received, completed, transferred_out,
	m1_good_qty, m2_review_qty, m3_minor_defect_qty, m4_major_defect_qty, updated_at`

func scanLedger(row pgx.Row) (*entity.FloorLedger, error) {
	var l entity.FloorLedger
	var floor string
	err := row.Scan(
		&l.ArticleID, &floor, &l.Received, &l.Completed, &l.TransferredOut,
		&l.Grades.M1GoodQty, &l.Grades.M2ReviewQty, &l.Grades.M3MinorDefectQty, &l.Grades.M4MajorDefectQty,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f, err := entity.ParseFloor(floor)
	if err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	l.Floor = f
	return &l, nil
}

// Get obtiene el libro de un piso; si no hay fila devuelve el libro en ceros
// (el piso existe en el catálogo aunque nunca se haya tocado).
func (r *FloorLedgerRepo) Get(articleID string, floor entity.Floor) (*entity.FloorLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM floor_ledgers WHERE article_id = $1 AND floor = $2`
	l, err := scanLedger(r.q.QueryRow(context.Background(), query, articleID, floor.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.FloorLedger{ArticleID: articleID, Floor: floor, UpdatedAt: time.Now()}, nil
		}
		return nil, fmt.Errorf("get ledger: %w", err)
	}
	return l, nil
}

// GetAll obtiene todos los libros del artículo como mapa por piso.
func (r *FloorLedgerRepo) GetAll(articleID string) (map[entity.Floor]*entity.FloorLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM floor_ledgers WHERE article_id = $1`
	rows, err := r.q.Query(context.Background(), query, articleID)
	if err != nil {
		return nil, fmt.Errorf("get ledgers: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.Floor]*entity.FloorLedger)
	for rows.Next() {
		l, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("get ledgers: %w", err)
		}
		out[l.Floor] = l
	}
	return out, rows.Err()
}

// Upsert inserta o actualiza el libro (por artículo y piso).
func (r *FloorLedgerRepo) Upsert(l *entity.FloorLedger) error {
	query := `
		INSERT INTO floor_ledgers (article_id, floor, received, completed, transferred_out,
			m1_good_qty, m2_review_qty, m3_minor_defect_qty, m4_major_defect_qty, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (article_id, floor)
		DO UPDATE SET received = EXCLUDED.received, completed = EXCLUDED.completed,
			transferred_out = EXCLUDED.transferred_out,
			m1_good_qty = EXCLUDED.m1_good_qty, m2_review_qty = EXCLUDED.m2_review_qty,
			m3_minor_defect_qty = EXCLUDED.m3_minor_defect_qty, m4_major_defect_qty = EXCLUDED.m4_major_defect_qty,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		l.ArticleID, l.Floor.String(), l.Received, l.Completed, l.TransferredOut,
		l.Grades.M1GoodQty, l.Grades.M2ReviewQty, l.Grades.M3MinorDefectQty, l.Grades.M4MajorDefectQty,
		l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert ledger: %w", err)
	}
	return nil
}
