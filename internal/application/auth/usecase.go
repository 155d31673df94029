// Package auth casos de uso de autenticación y administración de usuarios.
package auth

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/uips-online/edutrack-api/internal/application/dto"
	"github.com/uips-online/edutrack-api/internal/application/ledger"
	"github.com/uips-online/edutrack-api/internal/domain"
	"github.com/uips-online/edutrack-api/internal/domain/entity"
	"github.com/uips-online/edutrack-api/internal/domain/repository"
	"github.com/uips-online/edutrack-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación y usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	seqRepo  repository.SequenceRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, seqRepo repository.SequenceRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, seqRepo: seqRepo, jwtCfg: jwtCfg}
}

// Login verifica credenciales y genera el JWT. El identificador acepta
// email o userId indistintamente.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := strings.TrimSpace(in.Email)
	if identifier == "" || in.Password == "" {
		return nil, &domain.ValidationError{Msg: "email and password are required"}
	}
	user, err := uc.userRepo.GetByEmailOrUserID(identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(user.Firstname + " " + user.Lastname)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.UserID, name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *UseCase) Me(userID string) (*dto.UserResponse, error) {
	return uc.GetUser(userID)
}

// GetUser busca un usuario por userId.
func (uc *UseCase) GetUser(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// CreateUser crea un usuario: valida rol, hashea el password con bcrypt y
// asigna un userId secuencial. Email duplicado → ErrConflict.
func (uc *UseCase) CreateUser(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Firstname == "" || in.Lastname == "" || in.Email == "" || in.Password == "" {
		return nil, &domain.ValidationError{Msg: "firstname, lastname, email, and password are required"}
	}
	role := in.Role
	if role == "" {
		role = entity.RoleInventoryStaff
	}
	if !entity.ValidRole(role) {
		return nil, &domain.ValidationError{Msg: "invalid role: " + role}
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	seq, err := uc.seqRepo.Next(repository.SeqUser)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		UserID:       ledger.FormatUserID(seq),
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers lista todos los usuarios.
func (uc *UseCase) ListUsers() ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = dto.NewUserResponse(u)
	}
	return out, nil
}

// UpdateUser edita un usuario; si viene password se re-hashea.
func (uc *UseCase) UpdateUser(userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Firstname != nil {
		user.Firstname = *in.Firstname
	}
	if in.Lastname != nil {
		user.Lastname = *in.Lastname
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, &domain.ValidationError{Msg: "invalid role: " + *in.Role}
		}
		user.Role = *in.Role
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// DeleteUser elimina un usuario.
func (uc *UseCase) DeleteUser(userID string) error {
	return uc.userRepo.Delete(userID)
}
