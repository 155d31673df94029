package dto

import (
	"time"

	"github.com/uips-online/edutrack-api/internal/domain/entity"
)

// LoginRequest credenciales de acceso. Email acepta también el userId.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token firmado más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse usuario sin el hash de contraseña.
type UserResponse struct {
	UserID    string    `json:"userId"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest alta de usuario.
type CreateUserRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// UpdateUserRequest edición de usuario; los campos nil no se tocan.
// Password, si viene, se re-hashea.
type UpdateUserRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
}

// NewUserResponse mapea la entidad a la respuesta pública.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
