package repository

import "github.com/tu-usuario/despacho-pro/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios (auth y scope de tenant).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
