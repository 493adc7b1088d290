package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/Textil-api/internal/domain"
)

// QualityGrades acumuladores de inspección para pisos con control de calidad.
// M1 bueno, M2 pendiente de reparación, M3 defecto menor, M4 defecto mayor.
type QualityGrades struct {
	M1GoodQty        int64
	M2ReviewQty      int64
	M3MinorDefectQty int64
	M4MajorDefectQty int64
}

// Inspected devuelve el total ya inspeccionado (suma de los cuatro grados).
func (g QualityGrades) Inspected() int64 {
	return g.M1GoodQty + g.M2ReviewQty + g.M3MinorDefectQty + g.M4MajorDefectQty
}

// FloorLedger es el registro de cantidades de un artículo en un piso.
// Una fila por (artículo, piso); los pisos siguen siendo trabajables aunque el
// puntero de frontera del artículo haya avanzado (la frontera es solo informativa).
type FloorLedger struct {
	ArticleID      string
	Floor          Floor
	Received       int64
	Completed      int64
	TransferredOut int64
	// Grades solo aplica en CHECKING/FINAL_CHECKING; en KNITTING únicamente
	// M4MajorDefectQty se usa (defectos mayores detectados en tejido).
	Grades    QualityGrades
	UpdatedAt time.Time
}

// Eligible devuelve la cantidad habilitada para transferir al siguiente piso:
//   - tejido: completado − defectos mayores (la sobreproducción cuenta)
//   - pisos con calidad: solo M1
//   - resto: todo lo completado
func (l *FloorLedger) Eligible() int64 {
	switch {
	case l.Floor == FloorKnitting:
		return l.Completed - l.Grades.M4MajorDefectQty
	case l.Floor.IsQualityGated():
		return l.Grades.M1GoodQty
	default:
		return l.Completed
	}
}

// RemainingToProcess devuelve lo recibido aún sin completar. Informativo; nunca
// negativo (en tejido la sobreproducción lo dejaría bajo cero, se recorta a 0).
func (l *FloorLedger) RemainingToProcess() int64 {
	if r := l.Received - l.Completed; r > 0 {
		return r
	}
	return 0
}

// AvailableToTransfer devuelve lo habilitado que todavía no salió del piso.
func (l *FloorLedger) AvailableToTransfer() int64 {
	return l.Eligible() - l.TransferredOut
}

// Validate re-verifica los invariantes del libro después de cada mutación.
// Cualquier violación aborta la operación completa (sin escritura parcial).
func (l *FloorLedger) Validate() error {
	if l.Received < 0 || l.Completed < 0 || l.TransferredOut < 0 {
		return fmt.Errorf("%w: cantidades negativas en %s", domain.ErrInvariantViolation, l.Floor)
	}
	g := l.Grades
	if g.M1GoodQty < 0 || g.M2ReviewQty < 0 || g.M3MinorDefectQty < 0 || g.M4MajorDefectQty < 0 {
		return fmt.Errorf("%w: grado de calidad negativo en %s", domain.ErrInvariantViolation, l.Floor)
	}

	if l.Floor != FloorKnitting && l.Completed > l.Received {
		return fmt.Errorf("%w: %s completado=%d recibido=%d", domain.ErrOverCompletion, l.Floor, l.Completed, l.Received)
	}
	if l.Floor == FloorKnitting && g.M4MajorDefectQty > l.Completed {
		return fmt.Errorf("%w: defectos mayores de tejido (%d) exceden lo completado (%d)",
			domain.ErrInvariantViolation, g.M4MajorDefectQty, l.Completed)
	}
	if l.Floor.IsQualityGated() {
		// En pisos con calidad lo completado avanza solo vía inspección,
		// así que la suma de grados debe igualar lo completado.
		if g.Inspected() != l.Completed {
			return fmt.Errorf("%w: %s grados=%d completado=%d", domain.ErrInvariantViolation, l.Floor, g.Inspected(), l.Completed)
		}
	}

	eligible := l.Eligible()
	if eligible < 0 {
		return fmt.Errorf("%w: habilitado negativo en %s", domain.ErrInvariantViolation, l.Floor)
	}
	if l.Floor != FloorKnitting && eligible > l.Completed {
		return fmt.Errorf("%w: habilitado (%d) excede completado (%d) en %s",
			domain.ErrInvariantViolation, eligible, l.Completed, l.Floor)
	}
	if l.TransferredOut > eligible {
		return fmt.Errorf("%w: transferido (%d) excede habilitado (%d) en %s",
			domain.ErrInvariantViolation, l.TransferredOut, eligible, l.Floor)
	}
	return nil
}

// NewFloorLedgers inicializa el mapa de libros de un artículo recién creado:
// KNITTING recibe la cantidad planificada y el resto arranca en cero.
func NewFloorLedgers(articleID string, plannedQty int64, now time.Time) map[Floor]*FloorLedger {
	ledgers := make(map[Floor]*FloorLedger, len(AllFloors))
	for _, f := range AllFloors {
		l := &FloorLedger{ArticleID: articleID, Floor: f, UpdatedAt: now}
		if f == FloorKnitting {
			l.Received = plannedQty
		}
		ledgers[f] = l
	}
	return ledgers
}
