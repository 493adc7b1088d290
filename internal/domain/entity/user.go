package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor" // supervisor de piso
	RoleOperator   = "operator"   // operario / digitador de piso
)

// User representa un usuario de la planta. La identidad viaja en el JWT;
// el motor de pisos confía en los IDs que recibe (autorización aguas arriba).
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca texto plano después de persistir
	Name         string
	Role         string // admin, supervisor, operator
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
