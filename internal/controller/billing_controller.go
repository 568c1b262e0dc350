package controller

import (
	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/pkg/serverutils"
	"hand-analysis-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
	CreateCheckout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type billingController struct {
	billingService service.IBillingService
}

func NewBillingController(billingService service.IBillingService) IBillingController {
	return &billingController{
		billingService: billingService,
	}
}

func (c *billingController) RegisterRoutes(r fiber.Router) {
	b := r.Group("/billing")
	b.Post("/checkout", c.CreateCheckout)
	b.Post("/webhook", c.Webhook)
}

func (c *billingController) CreateCheckout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.billingService.CreateCheckout(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *billingController) Webhook(ctx *fiber.Ctx) error {
	// The raw body is needed for signature verification; never parse it first.
	payload := ctx.Body()
	signature := ctx.Get("Stripe-Signature")

	if err := c.billingService.HandleWebhook(ctx.Context(), payload, signature); err != nil {
		return err
	}

	return ctx.JSON(dto.SimpleOkResponse{Ok: true})
}
