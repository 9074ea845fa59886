package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chat-service/config"
	"chat-service/controller"
	"chat-service/database"
	"chat-service/event"
	"chat-service/logger"
	"chat-service/messenger"
	"chat-service/router"
	"chat-service/socketio"
	"chat-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log.SetPrefix("chat-service: ")

	logFile := config.Config("LOG_FILE")
	if logFile == "" {
		logFile = "log/chat-service.log"
	}
	zapLog := logger.New(logFile, config.Config("GO_ENV") == "production")

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StrictRouting:         true,
		AppName:               "chat-service",
	})

	rest.Use(cors.New())

	if config.Config("SOCKET_ADAPTER") == "redis" {
		database.RedisConnect()
	}
	database.PostgresConnect()

	event.RabbitMQConnect([]string{
		// Queues consumed by the feed/activity collaborators
		"feed",
		"activity",
	})

	chatConfig := messenger.DefaultConfig()
	chatConfig.MaxMessageLength = config.ConfigInt("CHAT_MAX_MESSAGE_LENGTH", chatConfig.MaxMessageLength)
	chatConfig.RequireFollow = config.ConfigBool("CHAT_REQUIRE_FOLLOW", chatConfig.RequireFollow)
	chatConfig.DefaultPageLimit = config.ConfigInt("CHAT_DEFAULT_PAGE_LIMIT", chatConfig.DefaultPageLimit)
	chatConfig.MaxPageLimit = config.ConfigInt("CHAT_MAX_PAGE_LIMIT", chatConfig.MaxPageLimit)

	socket := socketio.Init(rest, &utils.JWTAuthenticator{KeyEnv: "JWT_ACCESS_KEY"})

	store := database.NewStore(database.Postgres)
	registry := messenger.NewRegistry()
	feedEvents := &event.QueuePublisher{Queue: "feed"}
	activityEvents := &event.QueuePublisher{Queue: "activity"}
	presence := messenger.NewPresence(store, registry, socket, activityEvents, zapLog)
	delivery := messenger.NewDelivery(store, registry, socket, feedEvents, chatConfig, zapLog)
	projector := messenger.NewProjector(store)

	router.Rest(rest, controller.NewChat(delivery, projector, chatConfig, zapLog))
	router.Socket(socket, registry, presence, delivery, zapLog)

	go rest.Listen(fmt.Sprintf(":%s", config.Config("SERVER_PORT")))

	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	socket.Close()
	event.RabbitMQChannel.Close()
	event.RabbitMQConnection.Close()
	event.OutLogFile.Close()
	zapLog.Sync()
	os.Exit(0)
}
