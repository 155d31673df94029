package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/uips-online/edutrack-api/internal/application/auth"
	"github.com/uips-online/edutrack-api/internal/application/dto"
)

// UserHandler administración de usuarios (IT e InventoryAdmin).
type UserHandler struct {
	uc *auth.UseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *auth.UseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateUser(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener usuario por id
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "USR-0001"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{userId} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(c.Params("userId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userId  path  string  true  "USR-0001"
// @Param        body    body  dto.UpdateUserRequest  true  "campos a editar"
// @Success      200     {object}  dto.UserResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/users/{userId} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateUser(c.Params("userId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Param        userId  path  string  true  "USR-0001"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{userId} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.Params("userId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
