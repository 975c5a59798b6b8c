package handler

import (
	"strings"

	"github.com/RochKDev/warranty-manager/internal/auth/dto"
	"github.com/RochKDev/warranty-manager/internal/auth/service"
	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/internal/httpx"
	"github.com/RochKDev/warranty-manager/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService  *service.UserService
	tokenService service.TokenGenerator
}

func NewAuthHandler(userService *service.UserService, tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{userService: userService, tokenService: tokenService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := httpx.Bind(c, &input); err != nil {
		return err
	}

	user, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewUserOutput(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := httpx.Bind(c, &input); err != nil {
		return err
	}

	input.IPAddress = c.IP()

	token, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(token)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Me(c.UserContext(), email)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserOutput(user))
}

// RequireAuth accepts "Authorization: Bearer <token>" and stores the token
// subject as the caller for downstream handlers.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(constant.AuthorizationHeader)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, constant.DefaultTokenType) || token == "" {
		return apperror.ErrUnauthenticated
	}

	if !h.tokenService.Validate(token) {
		return apperror.ErrUnauthenticated
	}

	email, err := h.tokenService.IdentityOf(token)
	if err != nil {
		return apperror.ErrUnauthenticated
	}

	httpx.SetCaller(c, email)
	return c.Next()
}
