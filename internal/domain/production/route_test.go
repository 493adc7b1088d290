package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/production"
)

// ──────────────────────────────────────────────────────────────────────────────
// La ruta es una función pura del atributo de ruteo: AUTO salta LINKING
// (la máquina une las piezas), HAND y ROSSO lo insertan justo después de
// tejido. Todas las rutas empiezan en KNITTING y terminan en WAREHOUSE.
// ──────────────────────────────────────────────────────────────────────────────

func TestRouteFor_AutoSinLinking(t *testing.T) {
	route := production.RouteFor(entity.RoutingAuto)

	require.Len(t, route, 7, "la ruta AUTO tiene 7 pisos")
	assert.Equal(t, entity.FloorKnitting, route[0], "toda ruta inicia en tejido")
	assert.Equal(t, entity.FloorWarehouse, route[len(route)-1], "toda ruta termina en bodega")
	assert.NotContains(t, route, entity.FloorLinking, "AUTO no pasa por LINKING")
}

func TestRouteFor_HandYRossoConLinking(t *testing.T) {
	for _, r := range []entity.RoutingAttribute{entity.RoutingHand, entity.RoutingRosso} {
		route := production.RouteFor(r)

		require.Len(t, route, 8, "la ruta %s tiene 8 pisos", r)
		assert.Equal(t, entity.FloorKnitting, route[0])
		assert.Equal(t, entity.FloorLinking, route[1], "%s inserta LINKING inmediatamente después de tejido", r)
		assert.Equal(t, entity.FloorWarehouse, route[len(route)-1])
	}
}

func TestNextFloor_SaltaLinkingEnAuto(t *testing.T) {
	next, err := production.NextFloor(entity.RoutingAuto, entity.FloorKnitting)

	require.NoError(t, err)
	assert.Equal(t, entity.FloorChecking, next, "en AUTO tejido pasa directo a revisión")
}

func TestNextFloor_PasaPorLinkingEnHand(t *testing.T) {
	next, err := production.NextFloor(entity.RoutingHand, entity.FloorKnitting)
	require.NoError(t, err)
	assert.Equal(t, entity.FloorLinking, next)

	next, err = production.NextFloor(entity.RoutingHand, entity.FloorLinking)
	require.NoError(t, err)
	assert.Equal(t, entity.FloorChecking, next)
}

func TestNextFloor_ErrorEnTerminal(t *testing.T) {
	_, err := production.NextFloor(entity.RoutingAuto, entity.FloorWarehouse)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "bodega es el piso terminal: no hay siguiente")
}

func TestNextFloor_ErrorSiPisoFueraDeRuta(t *testing.T) {
	_, err := production.NextFloor(entity.RoutingAuto, entity.FloorLinking)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "LINKING no pertenece a la ruta AUTO")
}

func TestInRoute(t *testing.T) {
	assert.False(t, production.InRoute(entity.RoutingAuto, entity.FloorLinking))
	assert.True(t, production.InRoute(entity.RoutingRosso, entity.FloorLinking))
	assert.True(t, production.InRoute(entity.RoutingAuto, entity.FloorBranding))
}
