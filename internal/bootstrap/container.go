package bootstrap

import (
	"context"
	"log"

	"meeting-assistant-be/internal/config"
	"meeting-assistant-be/internal/controller"
	"meeting-assistant-be/internal/model"
	"meeting-assistant-be/internal/pkg/logger"
	"meeting-assistant-be/internal/repository/contract"
	"meeting-assistant-be/internal/repository/file"
	"meeting-assistant-be/internal/repository/implementation"
	"meeting-assistant-be/internal/repository/memory"
	redisrepo "meeting-assistant-be/internal/repository/redis"
	"meeting-assistant-be/internal/service"
	"meeting-assistant-be/internal/websocket"
	"meeting-assistant-be/pkg/database"
	"meeting-assistant-be/pkg/dialog"
	"meeting-assistant-be/pkg/dialog/flows"
	"meeting-assistant-be/pkg/gcal"
	pkgNats "meeting-assistant-be/pkg/nats"
	"meeting-assistant-be/pkg/recognizer/luis"
	"meeting-assistant-be/pkg/slack"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type Container struct {
	// Controllers
	SlackController     controller.ISlackController
	OAuthController     controller.IOAuthController
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// Repositories
	var userRepo contract.UserRepository
	var botRepo contract.BotRepository
	if cfg.Database.Connection != "" {
		gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("[FATAL] Unable to connect to GORM DB: %v", err)
		}
		if err := gormDB.AutoMigrate(&model.SlackUser{}, &model.SlackBot{}); err != nil {
			log.Fatalf("[FATAL] Migration failed: %v", err)
		}
		userRepo = implementation.NewUserRepository(gormDB)
		botRepo = implementation.NewBotRepository(gormDB)
		log.Printf("[INFO] Using postgres persistence")
	} else {
		userRepo, err = file.NewUserRepository(cfg.Database.DataDir)
		if err != nil {
			log.Fatalf("[FATAL] Unable to create file store: %v", err)
		}
		botRepo, err = file.NewBotRepository(cfg.Database.DataDir)
		if err != nil {
			log.Fatalf("[FATAL] Unable to create file store: %v", err)
		}
		log.Printf("[INFO] Using file persistence under %s", cfg.Database.DataDir)
	}

	var conversations dialog.Store
	if cfg.Database.ConversationStore == "redis" {
		conversations = redisrepo.NewConversationRepository(rdb, sysLogger)
		log.Printf("[INFO] Conversation state in redis")
	} else {
		conversations = memory.NewConversationRepository()
	}

	// Google OAuth: calendar access plus the directory scope the room
	// catalog needs.
	googleConf := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/calendar",
			"https://www.googleapis.com/auth/admin.directory.resource.calendar.readonly",
		},
		Endpoint: google.Endpoint,
	}

	slackClient := slack.NewClient()
	calendar := gcal.NewClient(googleConf)

	// Services
	userService := service.NewUserService(userRepo, botRepo, slackClient, sysLogger)
	roomService := service.NewRoomService(calendar, sysLogger)
	sender := service.NewSenderService(botRepo, slackClient, sysLogger)

	engine := dialog.NewEngine(conversations, sender, sysLogger)
	oauthService := service.NewOAuthService(googleConf, cfg.App.StateSigningSecret, engine, userService, sysLogger)

	flows.RegisterAll(engine, &flows.Deps{
		Calendar: calendar,
		Rooms:    roomService,
		Users:    userService,
		Login:    oauthService,
		Logger:   sysLogger,
	})

	recognizerProvider := luis.NewProvider(cfg.Luis.EndpointURI)

	assistantService := service.NewAssistantService(
		recognizerProvider,
		userService,
		botRepo,
		engine,
		sender,
		slackClient,
		cfg.Slack.ClientId,
		cfg.Slack.ClientSecret,
		natsPub,
		wsHub,
		sysLogger,
	)

	publisherService := service.NewPublisherService(cfg.App.InboundTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.InboundTopic, assistantService, sysLogger)

	return &Container{
		SlackController:     controller.NewSlackController(publisherService, assistantService, cfg.Slack.SigningSecret, sysLogger),
		OAuthController:     controller.NewOAuthController(oauthService),
		AssistantController: controller.NewAssistantController(assistantService, wsHub),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
