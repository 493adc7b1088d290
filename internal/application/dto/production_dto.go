package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// CompleteWorkRequest body para POST /api/articles/:id/work.
// Cantidad acumulativa: cada llamada suma lo terminado en la sesión, no reemplaza.
type CompleteWorkRequest struct {
	Floor              entity.Floor `json:"floor"`
	AdditionalQuantity int64        `json:"additional_quantity"`
	FloorSupervisorID  string       `json:"floor_supervisor_id"`
	Remarks            string       `json:"remarks,omitempty"`
	MachineID          string       `json:"machine_id,omitempty"` // contexto de tejido
	ShiftID            string       `json:"shift_id,omitempty"`   // contexto de tejido
}

// CompleteWorkResult respuesta de completar trabajo.
type CompleteWorkResult struct {
	ArticleID           string       `json:"article_id"`
	Floor               entity.Floor `json:"floor"`
	PreviousCompleted   int64        `json:"previous_completed"`
	NewCompleted        int64        `json:"new_completed"`
	Delta               int64        `json:"delta"`
	AvailableToTransfer int64        `json:"available_to_transfer"`
}

// QualityInspectRequest body para POST /api/articles/:id/quality.
// Precondición: m1+m2+m3+m4 == inspected_quantity, exacto.
type QualityInspectRequest struct {
	Floor             entity.Floor `json:"floor"`
	InspectedQuantity int64        `json:"inspected_quantity"`
	M1GoodQty         int64        `json:"m1_good_qty"`
	M2ReviewQty       int64        `json:"m2_review_qty"`
	M3MinorDefectQty  int64        `json:"m3_minor_defect_qty"`
	M4MajorDefectQty  int64        `json:"m4_major_defect_qty"`
	FloorSupervisorID string       `json:"floor_supervisor_id"`
	Remarks           string       `json:"remarks,omitempty"`
}

// QualityInspectResult respuesta de inspección.
type QualityInspectResult struct {
	ArticleID           string       `json:"article_id"`
	Floor               entity.Floor `json:"floor"`
	Completed           int64        `json:"completed"`
	Grades              GradesDTO    `json:"grades"`
	AvailableToTransfer int64        `json:"available_to_transfer"`
}

// RepairShiftRequest body para POST /api/articles/:id/repair.
// Reclasifica saldo M2 (pendiente de reparación): to_m1+to_m3+to_m4 == from_m2.
type RepairShiftRequest struct {
	Floor             entity.Floor `json:"floor"`
	FromM2            int64        `json:"from_m2"`
	ToM1              int64        `json:"to_m1"`
	ToM3              int64        `json:"to_m3"`
	ToM4              int64        `json:"to_m4"`
	FloorSupervisorID string       `json:"floor_supervisor_id"`
	Remarks           string       `json:"remarks,omitempty"`
}

// TransferRequest body para POST /api/articles/:id/transfer. El piso destino se
// deriva de la ruta del artículo; batch_number es etiqueta opaca de trazabilidad.
type TransferRequest struct {
	FromFloor         entity.Floor `json:"from_floor"`
	Quantity          int64        `json:"quantity"`
	BatchNumber       string       `json:"batch_number,omitempty"`
	FloorSupervisorID string       `json:"floor_supervisor_id"`
	Remarks           string       `json:"remarks,omitempty"`
}

// TransferResult respuesta de transferencia.
type TransferResult struct {
	ArticleID          string       `json:"article_id"`
	FromFloor          entity.Floor `json:"from_floor"`
	ToFloor            entity.Floor `json:"to_floor"`
	Quantity           int64        `json:"quantity"`
	FromAvailableAfter int64        `json:"from_available_after"`
	ToReceivedAfter    int64        `json:"to_received_after"`
}

// SetKnittingDefectsRequest body para POST /api/articles/:id/knitting-defects.
// Única operación de reemplazo absoluto del motor: fija el total de defectos
// mayores detectados en tejido (no suma).
type SetKnittingDefectsRequest struct {
	M4Quantity        int64  `json:"m4_quantity"`
	FloorSupervisorID string `json:"floor_supervisor_id"`
	Remarks           string `json:"remarks,omitempty"`
	MachineID         string `json:"machine_id,omitempty"`
	ShiftID           string `json:"shift_id,omitempty"`
}

// GradesDTO grados de calidad en respuestas.
type GradesDTO struct {
	M1GoodQty        int64 `json:"m1_good_qty"`
	M2ReviewQty      int64 `json:"m2_review_qty"`
	M3MinorDefectQty int64 `json:"m3_minor_defect_qty"`
	M4MajorDefectQty int64 `json:"m4_major_defect_qty"`
}

// FloorStatusDTO estado de un libro de piso, con las dos nociones de "restante"
// expuestas por separado (ver notas de diseño: no se fusionan).
type FloorStatusDTO struct {
	Floor               entity.Floor `json:"floor"`
	Received            int64        `json:"received"`
	Completed           int64        `json:"completed"`
	TransferredOut      int64        `json:"transferred_out"`
	RemainingToProcess  int64        `json:"remaining_to_process"`
	AvailableToTransfer int64        `json:"available_to_transfer"`
	Grades              *GradesDTO   `json:"grades,omitempty"`
}

// ArticleProgressDTO avance de un artículo.
type ArticleProgressDTO struct {
	ArticleID     string          `json:"article_id"`
	Status        string          `json:"status"`
	FrontierFloor entity.Floor    `json:"frontier_floor"`
	ProgressPct   decimal.Decimal `json:"progress_pct"`
	OverprodRatio decimal.Decimal `json:"overprod_ratio"`
}

// AuditEventDTO evento de auditoría en respuestas.
type AuditEventDTO struct {
	Seq               int64         `json:"seq"`
	Floor             entity.Floor  `json:"floor"`
	Action            string        `json:"action"`
	QuantityDelta     int64         `json:"quantity_delta"`
	M1Delta           int64         `json:"m1_delta,omitempty"`
	M2Delta           int64         `json:"m2_delta,omitempty"`
	M3Delta           int64         `json:"m3_delta,omitempty"`
	M4Delta           int64         `json:"m4_delta,omitempty"`
	ToFloor           *entity.Floor `json:"to_floor,omitempty"`
	BatchNumber       string        `json:"batch_number,omitempty"`
	ActorUserID       string        `json:"actor_user_id"`
	FloorSupervisorID string        `json:"floor_supervisor_id"`
	Remarks           string        `json:"remarks,omitempty"`
	MachineID         string        `json:"machine_id,omitempty"`
	ShiftID           string        `json:"shift_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
}

// NewFloorStatusDTO arma el DTO desde el libro.
func NewFloorStatusDTO(l *entity.FloorLedger) FloorStatusDTO {
	out := FloorStatusDTO{
		Floor:               l.Floor,
		Received:            l.Received,
		Completed:           l.Completed,
		TransferredOut:      l.TransferredOut,
		RemainingToProcess:  l.RemainingToProcess(),
		AvailableToTransfer: l.AvailableToTransfer(),
	}
	if l.Floor.IsQualityGated() || l.Floor == entity.FloorKnitting {
		g := l.Grades
		out.Grades = &GradesDTO{
			M1GoodQty:        g.M1GoodQty,
			M2ReviewQty:      g.M2ReviewQty,
			M3MinorDefectQty: g.M3MinorDefectQty,
			M4MajorDefectQty: g.M4MajorDefectQty,
		}
	}
	return out
}

// NewAuditEventDTO arma el DTO desde el evento.
func NewAuditEventDTO(ev *entity.AuditEvent) AuditEventDTO {
	return AuditEventDTO{
		Seq:               ev.Seq,
		Floor:             ev.Floor,
		Action:            ev.Action,
		QuantityDelta:     ev.QuantityDelta,
		M1Delta:           ev.M1Delta,
		M2Delta:           ev.M2Delta,
		M3Delta:           ev.M3Delta,
		M4Delta:           ev.M4Delta,
		ToFloor:           ev.ToFloor,
		BatchNumber:       ev.BatchNumber,
		ActorUserID:       ev.ActorUserID,
		FloorSupervisorID: ev.FloorSupervisorID,
		Remarks:           ev.Remarks,
		MachineID:         ev.MachineID,
		ShiftID:           ev.ShiftID,
		CreatedAt:         ev.CreatedAt,
	}
}
