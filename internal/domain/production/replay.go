package production

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// Replay reconstruye el estado de los libros de piso de un artículo
// reproduciendo su secuencia completa de eventos de auditoría desde la creación.
// Se usa en reconciliación y para verificar que la bitácora es fuente de verdad:
// el resultado debe coincidir exactamente con el estado persistido.
func Replay(plannedQty int64, events []*entity.AuditEvent) (map[entity.Floor]*entity.FloorLedger, error) {
	sorted := make([]*entity.AuditEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })

	var ledgers map[entity.Floor]*entity.FloorLedger
	for _, ev := range sorted {
		if ledgers == nil && ev.Action != entity.ActionArticleCreated {
			return nil, fmt.Errorf("evento %d: la secuencia no inicia con la creación del artículo", ev.Seq)
		}
		switch ev.Action {
		case entity.ActionArticleCreated:
			ledgers = entity.NewFloorLedgers(ev.ArticleID, plannedQty, ev.CreatedAt)

		case entity.ActionWorkCompleted:
			l := ledgers[ev.Floor]
			l.Completed += ev.QuantityDelta

		case entity.ActionQualityInspected:
			l := ledgers[ev.Floor]
			l.Completed += ev.QuantityDelta
			l.Grades.M1GoodQty += ev.M1Delta
			l.Grades.M2ReviewQty += ev.M2Delta
			l.Grades.M3MinorDefectQty += ev.M3Delta
			l.Grades.M4MajorDefectQty += ev.M4Delta

		case entity.ActionRepairShifted:
			l := ledgers[ev.Floor]
			l.Grades.M1GoodQty += ev.M1Delta
			l.Grades.M2ReviewQty += ev.M2Delta // negativo: sale de M2
			l.Grades.M3MinorDefectQty += ev.M3Delta
			l.Grades.M4MajorDefectQty += ev.M4Delta

		case entity.ActionKnittingDefectsSet:
			// Operación de reemplazo absoluto; el evento guarda el delta.
			ledgers[entity.FloorKnitting].Grades.M4MajorDefectQty += ev.QuantityDelta

		case entity.ActionTransferred:
			l := ledgers[ev.Floor]
			l.TransferredOut += ev.QuantityDelta
			if ev.ToFloor == nil {
				return nil, fmt.Errorf("evento %d: transferencia sin piso destino", ev.Seq)
			}
			ledgers[*ev.ToFloor].Received += ev.QuantityDelta

		case entity.ActionStatusChanged:
			// No toca cantidades.

		default:
			return nil, fmt.Errorf("evento %d: acción desconocida %q", ev.Seq, ev.Action)
		}
	}
	return ledgers, nil
}
