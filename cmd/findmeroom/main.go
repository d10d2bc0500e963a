package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appauth "findmeroom/internal/app/auth"
	appchat "findmeroom/internal/app/chat"
	"findmeroom/internal/app/properties"
	domainchat "findmeroom/internal/domain/chat"
	"findmeroom/internal/domain/listings"
	domainuser "findmeroom/internal/domain/user"
	"findmeroom/internal/infra/broker/kafka"
	"findmeroom/internal/infra/config"
	mongodb "findmeroom/internal/infra/db/mongo"
	ginserver "findmeroom/internal/infra/http/gin"
	"findmeroom/internal/infra/obs"
	"findmeroom/internal/infra/security"
	"findmeroom/internal/infra/storage/memory"
	"findmeroom/internal/infra/storage/s3"
	"findmeroom/internal/infra/storage/scylla"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger := obs.NewLogger("dev")
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	var (
		mongoClient *mongodb.Client
		users       domainuser.Repository
		props       listings.Repository
	)
	if cfg.MongoURI != "" {
		mongoClient, err = mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("mongo init failed", "error", err)
			os.Exit(1)
		}
		users = mongodb.NewUserRepository(mongoClient.DB)
		props = mongodb.NewPropertyRepository(mongoClient.DB)
		logger.Info("mongo connected", "db", cfg.MongoDB)
	} else {
		users = memory.NewUserRepository()
		props = memory.NewPropertyRepository()
		logger.Warn("MONGO_URI not set, using in-memory repositories")
	}

	messages, err := buildChatStore(cfg, mongoClient, logger)
	if err != nil {
		logger.Error("chat store init failed", "error", err, "backend", cfg.ChatStore)
		os.Exit(1)
	}

	var events appchat.EventPublisher
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		events = kafka.ChatEventPublisher{Producer: producer, Topic: cfg.KafkaTopic}
		logger.Info("kafka producer connected", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	var photos properties.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		uploader, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL, logger)
		if err != nil {
			logger.Error("s3 init failed", "error", err)
			os.Exit(1)
		}
		photos = uploader
	}

	tokens := security.TokenManager{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL}
	authService := &appauth.Service{
		Users:  users,
		Hasher: security.BcryptHasher{},
		Tokens: tokens,
	}
	propertyService := &properties.Service{Listings: props, Photos: photos}
	chatService := &appchat.Service{
		Messages:    messages,
		Properties:  props,
		Users:       users,
		Events:      events,
		Logger:      logger,
		ThreadLimit: cfg.ThreadLimit,
	}

	server := ginserver.NewServer(cfg,
		obs.Middleware{Logger: logger},
		obs.HealthHandlers{Ready: readyCheck(mongoClient)},
		ginserver.Handlers{
			Auth:           ginserver.AuthHandler{Auth: authService, Logger: logger},
			Property:       ginserver.PropertyHandler{Properties: propertyService, Logger: logger},
			Chat:           ginserver.ChatHandler{Chat: chatService, Logger: logger},
			AuthMiddleware: ginserver.AuthMiddleware{Tokens: tokens, Users: users, Logger: logger}.Handle,
		},
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		if producer != nil {
			if err := producer.Close(); err != nil {
				logger.Error("kafka close failed", "error", err)
			}
		}
		if mongoClient != nil {
			if err := mongoClient.Close(shutdownCtx); err != nil {
				logger.Error("mongo close failed", "error", err)
			}
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "env", cfg.Env, "chat_store", cfg.ChatStore)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildChatStore(cfg config.Config, mongoClient *mongodb.Client, logger *slog.Logger) (domainchat.Store, error) {
	switch cfg.ChatStore {
	case config.ChatStoreScylla:
		session, err := scylla.NewSession(scylla.Config{
			Hosts:    cfg.ScyllaHosts,
			Keyspace: cfg.ScyllaSpace,
			Username: cfg.ScyllaUser,
			Password: cfg.ScyllaPass,
			Timeout:  cfg.ScyllaWait,
		}, logger)
		if err != nil {
			return nil, err
		}
		return scylla.NewMessageStore(session, logger), nil
	case config.ChatStoreMemory:
		return memory.NewMessageStore(), nil
	default:
		if mongoClient == nil {
			return nil, fmt.Errorf("mongo chat store requires MONGO_URI")
		}
		return mongodb.NewMessageRepository(mongoClient.DB), nil
	}
}

func readyCheck(client *mongodb.Client) func() error {
	if client == nil {
		return nil
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx)
	}
}
