package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

var _ repository.AuditEventRepository = (*AuditEventRepo)(nil)

// AuditEventRepo bitácora append-only sobre PostgreSQL. UNIQUE (article_id, seq)
// respalda la monotonía del consecutivo: si dos operaciones intentaran el mismo
// número, la segunda falla y su transacción se revierte completa.
type AuditEventRepo struct {
	q Querier
}

// NewAuditEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditEventRepository(q Querier) *AuditEventRepo {
	return &AuditEventRepo{q: q}
}

// Append inserta el evento. No existe Update ni Delete para esta tabla.
func (r *AuditEventRepo) Append(ev *entity.AuditEvent) error {
	var toFloor *string
	if ev.ToFloor != nil {
		s := ev.ToFloor.String()
		toFloor = &s
	}
	query := `
		INSERT INTO audit_events (id, article_id, seq, floor, action, quantity_delta,
			m1_delta, m2_delta, m3_delta, m4_delta, to_floor, batch_number,
			actor_user_id, floor_supervisor_id, remarks, machine_id, shift_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`
	_, err := r.q.Exec(context.Background(), query,
		ev.ID, ev.ArticleID, ev.Seq, ev.Floor.String(), ev.Action, ev.QuantityDelta,
		ev.M1Delta, ev.M2Delta, ev.M3Delta, ev.M4Delta, toFloor, ev.BatchNumber,
		ev.ActorUserID, ev.FloorSupervisorID, ev.Remarks, ev.MachineID, ev.ShiftID, ev.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("append audit event: consecutivo %d repetido para artículo %s: %w", ev.Seq, ev.ArticleID, err)
		}
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListByArticle devuelve la secuencia completa del artículo ordenada por consecutivo.
func (r *AuditEventRepo) ListByArticle(articleID string) ([]*entity.AuditEvent, error) {
	query := `
		SELECT id, article_id, seq, floor, action, quantity_delta,
			m1_delta, m2_delta, m3_delta, m4_delta, to_floor, batch_number,
			actor_user_id, floor_supervisor_id, remarks, machine_id, shift_id, created_at
		FROM audit_events WHERE article_id = $1 ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, articleID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditEvent
	for rows.Next() {
		var ev entity.AuditEvent
		var floor string
		var toFloor *string
		err := rows.Scan(
			&ev.ID, &ev.ArticleID, &ev.Seq, &floor, &ev.Action, &ev.QuantityDelta,
			&ev.M1Delta, &ev.M2Delta, &ev.M3Delta, &ev.M4Delta, &toFloor, &ev.BatchNumber,
			&ev.ActorUserID, &ev.FloorSupervisorID, &ev.Remarks, &ev.MachineID, &ev.ShiftID, &ev.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list audit events: %w", err)
		}
		f, err := entity.ParseFloor(floor)
		if err != nil {
			return nil, fmt.Errorf("list audit events: %w", err)
		}
		ev.Floor = f
		if toFloor != nil {
			tf, err := entity.ParseFloor(*toFloor)
			if err != nil {
				return nil, fmt.Errorf("list audit events: %w", err)
			}
			ev.ToFloor = &tf
		}
		out = append(out, &ev)
	}
	return out, rows.Err()
}
