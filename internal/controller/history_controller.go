package controller

import (
	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/pkg/serverutils"
	"hand-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHistoryController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Detail(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	UpdateConversation(ctx *fiber.Ctx) error
	DeleteAll(ctx *fiber.Ctx) error
}

type historyController struct {
	historyService service.IHistoryService
}

func NewHistoryController(historyService service.IHistoryService) IHistoryController {
	return &historyController{
		historyService: historyService,
	}
}

func (c *historyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/history")
	h.Get("/list", c.List)
	h.Get("/detail", c.Detail)
	h.Post("/save", c.Save)
	h.Post("/title", c.Rename)
	h.Post("/conversation", c.UpdateConversation)
	h.Delete("/all", c.DeleteAll)
}

func (c *historyController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.historyService.Save(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *historyController) List(ctx *fiber.Ctx) error {
	userId, err := queryUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.historyService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *historyController) Detail(ctx *fiber.Ctx) error {
	userId, err := queryUserId(ctx)
	if err != nil {
		return err
	}

	idStr := ctx.Query("id")
	if idStr == "" {
		return dto.ErrMissingId
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return dto.ErrBadRequest
	}

	res, err := c.historyService.Detail(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *historyController) Rename(ctx *fiber.Ctx) error {
	var req dto.RenameHistoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.historyService.Rename(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *historyController) UpdateConversation(ctx *fiber.Ctx) error {
	var req dto.UpdateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.historyService.UpdateConversation(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *historyController) DeleteAll(ctx *fiber.Ctx) error {
	userId, err := queryUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.historyService.DeleteAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func queryUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr := ctx.Query("user_id")
	if userIdStr == "" {
		return uuid.Nil, dto.ErrMissingUserId
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, dto.ErrBadRequest
	}
	return userId, nil
}
