// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theaitel/loginaitel-sub003/config"
	"github.com/theaitel/loginaitel-sub003/cron"
	"github.com/theaitel/loginaitel-sub003/database"
	adminRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/admin"
	agentRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/agent"
	callRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/call"
	campaignRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/campaign"
	clientRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/client"
	leadRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/lead"
	numberRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/number"
	orderRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/order"
	subuserRepoPkg "github.com/theaitel/loginaitel-sub003/database/repository/subuser"
	"github.com/theaitel/loginaitel-sub003/handlers"
	"github.com/theaitel/loginaitel-sub003/middleware"
	"github.com/theaitel/loginaitel-sub003/routes"
	adminSvc "github.com/theaitel/loginaitel-sub003/services/admin"
	"github.com/theaitel/loginaitel-sub003/services/auth"
	"github.com/theaitel/loginaitel-sub003/services/billing"
	"github.com/theaitel/loginaitel-sub003/services/calls"
	"github.com/theaitel/loginaitel-sub003/services/campaign"
	"github.com/theaitel/loginaitel-sub003/services/notify"
	"github.com/theaitel/loginaitel-sub003/services/privacy"
	"github.com/theaitel/loginaitel-sub003/services/tenant"
	"github.com/theaitel/loginaitel-sub003/services/voice"
	"github.com/theaitel/loginaitel-sub003/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	razorpay "github.com/razorpay/razorpay-go"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetOTPCacheClient(),
	}, database.MongoClient)

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// The data cipher protects transcripts, summaries and notes at rest. A
	// weak key is a hard startup failure.
	cipher, err := privacy.NewCipher(config.AppConfig.DataEncryptionKey)
	if err != nil {
		logger.Sugar().Fatalf("main: data encryption key rejected: %v", err)
	}
	filter := privacy.NewFilter(cipher)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	subuserRepo := subuserRepoPkg.NewMongoSubUserRepo()
	adminRepo := adminRepoPkg.NewMongoAdminRepo()
	agentRepo := agentRepoPkg.NewMongoAgentRepo()
	numberRepo := numberRepoPkg.NewMongoNumberRepo()
	campaignRepo := campaignRepoPkg.NewMongoCampaignRepo()
	leadRepo := leadRepoPkg.NewMongoLeadRepo()
	callRepo := callRepoPkg.NewMongoCallRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()

	// outbound clients.
	providerClient := voice.NewProviderClient(
		config.AppConfig.VoiceBaseURL,
		config.AppConfig.VoiceAPIKey,
		logger,
	)
	summarizer, err := voice.NewGeminiSummarizer(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize summarizer: %v", err)
	}
	transcriber := voice.NewGoogleTranscriber(config.AppConfig.FirebaseCredentialsFile)
	razorpayClient := razorpay.NewClient(
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpayKeySecret,
	)

	// services.
	notificationService, err := notify.NewDefaultNotificationService(subuserRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	authService := &auth.DefaultAuthService{
		ClientRepo:  clientRepo,
		SubUserRepo: subuserRepo,
		AdminRepo:   adminRepo,
		SMS:         providerClient,
	}

	adminService := &adminSvc.DefaultAdminService{
		ClientRepo: clientRepo,
		AgentRepo:  agentRepo,
		NumberRepo: numberRepo,
	}

	tenantService := &tenant.DefaultTenantService{
		ClientRepo:  clientRepo,
		SubUserRepo: subuserRepo,
		AgentRepo:   agentRepo,
		NumberRepo:  numberRepo,
	}

	campaignService := &campaign.DefaultCampaignService{
		CampaignRepo: campaignRepo,
		LeadRepo:     leadRepo,
		SubUserRepo:  subuserRepo,
		Notifier:     notificationService,
		Cipher:       cipher,
	}

	billingService := &billing.DefaultBillingService{
		OrderRepo:        orderRepo,
		ClientRepo:       clientRepo,
		Razorpay:         razorpayClient,
		WebhookSecret:    config.AppConfig.RazorpayWebhookSecret,
		CreditPricePaise: config.AppConfig.CreditPricePaise,
	}

	scheduler := cron.NewPollScheduler()
	callService := &calls.DefaultCallService{
		CallRepo:     callRepo,
		CampaignRepo: campaignRepo,
		LeadRepo:     leadRepo,
		AgentRepo:    agentRepo,
		NumberRepo:   numberRepo,
		ClientRepo:   clientRepo,
		Provider:     providerClient,
		Storage:      storageService,
		Summarizer:   summarizer,
		Transcriber:  transcriber,
		Cipher:       cipher,
		Enqueuer:     scheduler,
	}

	cron.InitCallPollWorker(callService, scheduler)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:     handlers.NewAuthHandler(authService),
		Admin:    handlers.NewAdminHandler(adminService, filter),
		Tenant:   handlers.NewTenantHandler(tenantService, filter),
		Campaign: handlers.NewCampaignHandler(campaignService, filter),
		Billing:  handlers.NewBillingHandler(billingService, filter),
		Calls:    handlers.NewCallHandler(callService, filter),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
