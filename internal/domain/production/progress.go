package production

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Progress calcula el avance del artículo sobre los libros de su ruta:
//
//	pct   = clamp(100 * Σcompletado / planificado, 0, 100)   (para mostrar)
//	ratio = Σcompletado / planificado sin recortar            (análisis de sobreproducción)
func Progress(plannedQty int64, ledgers map[entity.Floor]*entity.FloorLedger, routing entity.RoutingAttribute) (pct, ratio decimal.Decimal) {
	if plannedQty <= 0 {
		return decimal.Zero, decimal.Zero
	}
	var completed int64
	for _, f := range RouteFor(routing) {
		if l, ok := ledgers[f]; ok {
			completed += l.Completed
		}
	}
	ratio = decimal.NewFromInt(completed).Div(decimal.NewFromInt(plannedQty))
	pct = ratio.Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	if pct.LessThan(decimal.Zero) {
		pct = decimal.Zero
	}
	return pct, ratio
}

// ArticleCompleted indica si el artículo alcanzó su meta: lo completado en
// bodega llegó (o superó) la cantidad planificada.
func ArticleCompleted(plannedQty int64, ledgers map[entity.Floor]*entity.FloorLedger) bool {
	wh, ok := ledgers[entity.FloorWarehouse]
	return ok && plannedQty > 0 && wh.Completed >= plannedQty
}
