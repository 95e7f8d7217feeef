package bootstrap

import (
	"context"
	"log"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/controller"
	"broadcast-eval-be/internal/handler"
	"broadcast-eval-be/internal/pkg/logger"
	"broadcast-eval-be/internal/pkg/mailer"
	"broadcast-eval-be/internal/repository/memory"
	"broadcast-eval-be/internal/repository/unitofwork"
	"broadcast-eval-be/internal/service"
	"broadcast-eval-be/internal/websocket"
	"broadcast-eval-be/pkg/blob"
	"broadcast-eval-be/pkg/blob/dropbox"
	blobMemory "broadcast-eval-be/pkg/blob/memory"
	"broadcast-eval-be/pkg/evalindex"
	pktNats "broadcast-eval-be/pkg/nats"
	"broadcast-eval-be/pkg/sheets"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// indexRepairTopic is the in-process channel between the workflow and the
// index reconciler.
const indexRepairTopic = "index_repair"

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	OAuthController      controller.IOAuthController
	EvaluationController controller.IEvaluationController
	RecordingController  controller.IRecordingController
	ScheduleController   controller.IScheduleController
	AdminController      controller.IAdminController

	// Background services (exposed for main.go to run)
	ReconcilerService service.IReconcilerService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Blob store + shared index
	var blobStore blob.Store
	if cfg.Dropbox.Token != "" {
		blobStore = dropbox.NewClient(cfg.Dropbox.Token)
	} else {
		log.Printf("[WARN] DROPBOX_ACCESS_TOKEN not set, using in-memory blob store (development only)")
		blobStore = blobMemory.NewStore()
	}
	indexStore := evalindex.NewStore(blobStore, cfg.Dropbox.IndexPath, sysLogger)

	// 3. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Google Sheets (scheduling workbook)
	var sheetsClient *sheets.Client
	if cfg.Sheets.SpreadsheetID != "" {
		sheetsClient, err = sheets.NewClient(context.Background(), cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
		if err != nil {
			log.Printf("[WARN] Failed to initialize Sheets client: %v", err)
		}
	} else {
		log.Printf("[WARN] SCHEDULE_SPREADSHEET_ID not set, scheduling routes disabled")
	}

	// In-memory session storage (OAuth state)
	sessionRepo := memory.NewSessionRepository()

	// 4. Services
	publisherService := service.NewPublisherService(indexRepairTopic, pubSub)
	reconcilerService := service.NewReconcilerService(
		pubSub,
		indexRepairTopic,
		blobStore,
		indexStore,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, cfg, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, sessionRepo, cfg, sysLogger)
	evaluationService := service.NewEvaluationService(
		blobStore,
		indexStore,
		uowFactory,
		publisherService,
		natsPub,
		emailService,
		cfg,
		sysLogger,
	)
	recordingService := service.NewRecordingService(blobStore, cfg, sysLogger)
	scheduleService := service.NewScheduleService(sheetsClient, natsPub, cfg, sysLogger)
	adminService := service.NewAdminService(uowFactory, sysLogger, sysLogger)

	// 5. Notification system
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:       controller.NewAuthController(authService),
		OAuthController:      controller.NewOAuthController(oauthService, cfg),
		EvaluationController: controller.NewEvaluationController(evaluationService),
		RecordingController:  controller.NewRecordingController(recordingService),
		ScheduleController:   controller.NewScheduleController(scheduleService),
		AdminController:      controller.NewAdminController(adminService),

		ReconcilerService: reconcilerService,
	}
}
