package entity

import "time"

// Acciones que generan eventos de auditoría.
const (
	ActionArticleCreated      = "ARTICLE_CREATED"
	ActionWorkCompleted       = "WORK_COMPLETED"
	ActionQualityInspected    = "QUALITY_INSPECTED"
	ActionRepairShifted       = "REPAIR_SHIFTED"
	ActionTransferred         = "TRANSFERRED"
	ActionKnittingDefectsSet  = "KNITTING_DEFECTS_SET"
	ActionStatusChanged       = "STATUS_CHANGED"
)

// AuditEvent registro inmutable, append-only, de cada mutación exitosa.
// Seq es monotónico por artículo (no por reloj: el orden queda bien definido
// aunque haya desfase de relojes). Los deltas de grado (M1..M4) permiten
// reconstruir el estado exacto del libro reproduciendo la secuencia completa.
type AuditEvent struct {
	ID        string
	ArticleID string
	Seq       int64
	Floor     Floor
	Action    string
	// QuantityDelta: cantidad principal del evento (completado, inspeccionado,
	// transferido...). Para KNITTING_DEFECTS_SET es el delta contra el valor previo.
	QuantityDelta int64
	M1Delta       int64
	M2Delta       int64
	M3Delta       int64
	M4Delta       int64
	// ToFloor piso destino; solo aplica en TRANSFERRED.
	ToFloor *Floor
	// BatchNumber etiqueta opaca de trazabilidad en transferencias; el motor no la interpreta.
	BatchNumber       string
	ActorUserID       string
	FloorSupervisorID string
	Remarks           string
	MachineID         string // opcional, contexto de tejido
	ShiftID           string // opcional, contexto de tejido
	CreatedAt         time.Time
}
