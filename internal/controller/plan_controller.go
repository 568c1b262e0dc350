package controller

import (
	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/pkg/serverutils"
	"hand-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	GetStatus(ctx *fiber.Ctx) error
	ChangePlan(ctx *fiber.Ctx) error
}

type planController struct {
	planService service.IPlanService
}

func NewPlanController(planService service.IPlanService) IPlanController {
	return &planController{
		planService: planService,
	}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	r.Get("/me/plan", c.GetStatus)
	r.Post("/me/plan/change", c.ChangePlan)
}

func (c *planController) GetStatus(ctx *fiber.Ctx) error {
	userIdStr := ctx.Query("user_id")
	if userIdStr == "" {
		return dto.ErrMissingUserId
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return dto.ErrBadRequest
	}

	res, err := c.planService.GetStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *planController) ChangePlan(ctx *fiber.Ctx) error {
	var req dto.PlanChangeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planService.ChangePlan(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
