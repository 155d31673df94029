package repository

import "github.com/uips-online/edutrack-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByUserID(userID string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByEmailOrUserID permite login con email o con el USR-xxxx.
	GetByEmailOrUserID(ref string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(userID string) error
}
