package entity

import (
	"encoding/json"
	"fmt"
)

// Floor es una etapa de producción. Enum cerrado: el compilador obliga a
// actualizar los switch exhaustivos si se agrega o reordena un piso.
type Floor int

const (
	FloorKnitting Floor = iota
	FloorLinking
	FloorChecking
	FloorWashing
	FloorBoarding
	FloorFinalChecking
	FloorBranding
	FloorWarehouse
)

// AllFloors es el catálogo completo, en orden de catálogo (no de ruta).
var AllFloors = []Floor{
	FloorKnitting, FloorLinking, FloorChecking, FloorWashing,
	FloorBoarding, FloorFinalChecking, FloorBranding, FloorWarehouse,
}

// String devuelve el nombre estable del piso (se usa en JSON y en la DB).
func (f Floor) String() string {
	switch f {
	case FloorKnitting:
		return "KNITTING"
	case FloorLinking:
		return "LINKING"
	case FloorChecking:
		return "CHECKING"
	case FloorWashing:
		return "WASHING"
	case FloorBoarding:
		return "BOARDING"
	case FloorFinalChecking:
		return "FINAL_CHECKING"
	case FloorBranding:
		return "BRANDING"
	case FloorWarehouse:
		return "WAREHOUSE"
	}
	return fmt.Sprintf("FLOOR(%d)", int(f))
}

// ParseFloor convierte el nombre estable en Floor.
func ParseFloor(s string) (Floor, error) {
	for _, f := range AllFloors {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("piso desconocido: %q", s)
}

// IsQualityGated indica si el piso divide lo completado en grados M1–M4.
func (f Floor) IsQualityGated() bool {
	return f == FloorChecking || f == FloorFinalChecking
}

// MarshalJSON serializa el piso por nombre.
func (f Floor) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON parsea el piso por nombre.
func (f *Floor) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseFloor(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// RoutingAttribute (tipo de linking) decide qué secuencia de pisos aplica al artículo.
type RoutingAttribute string

const (
	RoutingAuto  RoutingAttribute = "AUTO"  // máquina: salta LINKING
	RoutingHand  RoutingAttribute = "HAND"  // linking manual
	RoutingRosso RoutingAttribute = "ROSSO" // máquina rosso, también pasa por LINKING
)

// Valid verifica que el atributo de ruteo sea uno de los conocidos.
func (r RoutingAttribute) Valid() bool {
	switch r {
	case RoutingAuto, RoutingHand, RoutingRosso:
		return true
	}
	return false
}
