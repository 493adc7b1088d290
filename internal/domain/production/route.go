package production

import (
	"fmt"

	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
)

// RouteFor deriva la secuencia ordenada de pisos para un atributo de ruteo
// (servicio de dominio, puro y determinista). AUTO teje y pasa directo a
// revisión; HAND y ROSSO insertan LINKING inmediatamente después de tejido.
func RouteFor(r entity.RoutingAttribute) []entity.Floor {
	base := []entity.Floor{
		entity.FloorKnitting,
		entity.FloorChecking,
		entity.FloorWashing,
		entity.FloorBoarding,
		entity.FloorFinalChecking,
		entity.FloorBranding,
		entity.FloorWarehouse,
	}
	if r == entity.RoutingAuto {
		return base
	}
	route := make([]entity.Floor, 0, len(base)+1)
	route = append(route, entity.FloorKnitting, entity.FloorLinking)
	route = append(route, base[1:]...)
	return route
}

// NextFloor devuelve el piso siguiente a `from` en la ruta del artículo.
// Falla con ErrInvalidTransition si `from` no pertenece a la ruta o es el terminal.
func NextFloor(r entity.RoutingAttribute, from entity.Floor) (entity.Floor, error) {
	route := RouteFor(r)
	for i, f := range route {
		if f != from {
			continue
		}
		if i == len(route)-1 {
			return 0, fmt.Errorf("%w: %s es el piso terminal de la ruta %s", domain.ErrInvalidTransition, from, r)
		}
		return route[i+1], nil
	}
	return 0, fmt.Errorf("%w: %s no pertenece a la ruta %s", domain.ErrInvalidTransition, from, r)
}

// InRoute indica si el piso pertenece a la ruta del atributo.
func InRoute(r entity.RoutingAttribute, f entity.Floor) bool {
	for _, rf := range RouteFor(r) {
		if rf == f {
			return true
		}
	}
	return false
}
