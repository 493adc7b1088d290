package repository

import "github.com/jhoicas/Textil-api/internal/domain/entity"

// UserRepository acceso a usuarios (auth).
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
