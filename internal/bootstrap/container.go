package bootstrap

import (
	"hand-analysis-be/internal/config"
	"hand-analysis-be/internal/controller"
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/pkg/googleauth"
	"hand-analysis-be/internal/pkg/logger"
	"hand-analysis-be/internal/repository/memory"
	"hand-analysis-be/internal/repository/unitofwork"
	"hand-analysis-be/internal/service"
	"hand-analysis-be/pkg/billing"
	"hand-analysis-be/pkg/database"
	"hand-analysis-be/pkg/llm/openai"
)

type Container struct {
	Config *config.Config
	Logger logger.ILogger

	AuthController     controller.IAuthController
	PlanController     controller.IPlanController
	AnalysisController controller.IAnalysisController
	HistoryController  controller.IHistoryController
	BillingController  controller.IBillingController
}

func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		return nil, err
	}
	uowFactory := unitofwork.NewRepositoryFactory(db)

	var verifier googleauth.Verifier
	if cfg.Google.SkipVerify {
		log.Warn("bootstrap", "google token verification is DISABLED", nil)
		verifier = googleauth.DevVerifier{}
	} else {
		verifier, err = googleauth.NewGoogleVerifier(cfg.Google.ClientID)
		if err != nil {
			return nil, err
		}
	}

	llmProvider := openai.NewOpenAIProvider(cfg.Ai.APIKey, cfg.Ai.BaseURL, cfg.Ai.Model)

	// Billing stays nil when unconfigured; services answer stripe_not_configured.
	var billingClient billing.Client
	if cfg.Stripe.SecretKey != "" {
		billingClient = billing.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	}
	prices := map[entity.Plan]string{}
	if cfg.Stripe.PriceBasic != "" {
		prices[entity.PlanBasic] = cfg.Stripe.PriceBasic
	}
	if cfg.Stripe.PricePro != "" {
		prices[entity.PlanPro] = cfg.Stripe.PricePro
	}
	if cfg.Stripe.PricePremium != "" {
		prices[entity.PlanPremium] = cfg.Stripe.PricePremium
	}
	processedEvents := memory.NewProcessedEventCache()

	// Services
	entitlementService := service.NewEntitlementService(uowFactory)
	authService := service.NewAuthService(uowFactory, verifier, log)
	analysisService := service.NewAnalysisService(entitlementService, llmProvider, log)
	planService := service.NewPlanService(uowFactory, entitlementService, billingClient, prices, log)
	historyService := service.NewHistoryService(uowFactory)
	billingService := service.NewBillingService(
		uowFactory,
		billingClient,
		processedEvents,
		prices,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
		log,
	)

	return &Container{
		Config:             cfg,
		Logger:             log,
		AuthController:     controller.NewAuthController(authService),
		PlanController:     controller.NewPlanController(planService),
		AnalysisController: controller.NewAnalysisController(analysisService),
		HistoryController:  controller.NewHistoryController(historyService),
		BillingController:  controller.NewBillingController(billingService),
	}, nil
}
