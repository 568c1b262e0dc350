package controller

import (
	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	GoogleLogin(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Post("/auth/google", c.GoogleLogin)
}

func (c *authController) GoogleLogin(ctx *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.authService.GoogleLogin(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
