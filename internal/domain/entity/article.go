package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Article y ProductionOrder.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusOnHold     = "on-hold"
	StatusCancelled  = "cancelled"
)

// Article es una línea de manufactura: una referencia de prenda que avanza de
// forma independiente por la secuencia de pisos de su ruta.
// Se crea al colocar la orden; después solo lo mutan las operaciones del motor
// y nunca se borra una vez que algún libro tiene cantidades (soft-complete).
type Article struct {
	ID         string
	OrderID    string
	Style      string // referencia de la prenda
	Size       string
	Color      string
	PlannedQty int64
	Routing    RoutingAttribute
	Priority   int
	Status     string
	// FrontierFloor es el último piso al que se transfirió. Solo informativo:
	// sugiere el piso por defecto en UI, nunca bloquea operar otros pisos.
	FrontierFloor Floor
	// AuditSeq contador monotónico por artículo para ordenar eventos de auditoría
	// (independiente del reloj de pared).
	AuditSeq int64
	// ProgressPct porcentaje de avance recortado a [0,100], materializado tras
	// cada mutación. OverprodRatio conserva la razón sin recortar para análisis
	// de sobreproducción.
	ProgressPct   decimal.Decimal
	OverprodRatio decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Started indica si el artículo registró algún trabajo (para derivar estado de orden).
func (a *Article) Started() bool {
	return a.Status == StatusInProgress || a.Status == StatusCompleted
}
