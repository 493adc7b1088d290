package entity

import "time"

// ProductionOrder agrupa artículos de una misma orden de cliente.
// Su estado se deriva del artículo menos avanzado, no se fija a mano.
type ProductionOrder struct {
	ID        string
	Code      string // consecutivo legible de la planta (ej. OP-2026-0042)
	Customer  string
	Remarks   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveOrderStatus calcula el estado de la orden a partir de sus artículos:
// cualquiera en pausa pone la orden en pausa; todos completados la completa;
// todos cancelados la cancela; si alguno arrancó está en progreso; si no, pendiente.
func DeriveOrderStatus(articles []*Article) string {
	if len(articles) == 0 {
		return StatusPending
	}
	allCompleted, allCancelled, anyStarted := true, true, false
	for _, a := range articles {
		if a.Status == StatusOnHold {
			return StatusOnHold
		}
		if a.Status == StatusCancelled {
			continue
		}
		allCancelled = false
		if a.Status != StatusCompleted {
			allCompleted = false
		}
		if a.Started() {
			anyStarted = true
		}
	}
	switch {
	case allCancelled:
		return StatusCancelled
	case allCompleted:
		return StatusCompleted
	case anyStarted:
		return StatusInProgress
	default:
		return StatusPending
	}
}
