package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/delivery-accounts/internal/application/dto"
)

// AccountService lo que el handler necesita del caso de uso (lo implementa *account.AccountUseCase).
type AccountService interface {
	CreateAccount(ctx context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	FindByID(ctx context.Context, id string) (*dto.AccountResponse, error)
	Authenticate(ctx context.Context, token string) (*dto.AccountResponse, error)
	EditProfile(ctx context.Context, accountID string, in dto.EditProfileRequest) (*dto.AccountResponse, error)
	VerifyEmail(ctx context.Context, code string) error
}

// AccountHandler maneja registro, login, perfil y verificación de email.
type AccountHandler struct {
	svc AccountService
}

// NewAccountHandler construye el handler de cuentas.
func NewAccountHandler(svc AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Create godoc
// @Summary      Crear cuenta
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "email, password, role"
// @Success      201   {object}  dto.AccountOutput
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", validationMessage(err))
	}
	acc, err := h.svc.CreateAccount(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AccountOutput{CoreOutput: dto.CoreOutput{OK: true}, Account: acc})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginOutput
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", validationMessage(err))
	}
	out, err := h.svc.Login(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.LoginOutput{CoreOutput: dto.CoreOutput{OK: true}, Token: out.Token})
}

// VerifyEmail godoc
// @Summary      Verificar email con el código recibido
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyEmailRequest  true  "code"
// @Success      200   {object}  dto.CoreOutput
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/accounts/verify-email [post]
func (h *AccountHandler) VerifyEmail(c *fiber.Ctx) error {
	var in dto.VerifyEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", validationMessage(err))
	}
	if err := h.svc.VerifyEmail(c.UserContext(), in.Code); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.CoreOutput{OK: true})
}

// GetByID godoc
// @Summary      Perfil de una cuenta
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountOutput
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	acc, err := h.svc.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.AccountOutput{CoreOutput: dto.CoreOutput{OK: true}, Account: acc})
}

// Me godoc
// @Summary      Cuenta del token
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AccountOutput
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	acc, err := h.svc.Authenticate(c.UserContext(), GetToken(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.AccountOutput{CoreOutput: dto.CoreOutput{OK: true}, Account: acc})
}

// EditProfile godoc
// @Summary      Editar email y/o password de la cuenta del token
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.EditProfileRequest  true  "email y/o password"
// @Success      200   {object}  dto.AccountOutput
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/me [patch]
func (h *AccountHandler) EditProfile(c *fiber.Ctx) error {
	var in dto.EditProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	if err := validate.Struct(in); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", validationMessage(err))
	}
	acc, err := h.svc.EditProfile(c.UserContext(), GetAccountID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.AccountOutput{CoreOutput: dto.CoreOutput{OK: true}, Account: acc})
}
