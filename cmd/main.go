package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"homechefs/backend/internal/api/handler"
	"homechefs/backend/internal/catalog"
	"homechefs/backend/internal/chathub"
	"homechefs/backend/internal/models"
	"homechefs/backend/internal/notify"
	"homechefs/backend/internal/store"
	"homechefs/backend/internal/telegram"
	"homechefs/backend/internal/userdir"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL for the public catalog and orders
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "homechefsdb"),
		envOr("DB_PORT", "5432"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis for the directory store and live-message fan-out
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Println("Database and Redis connections established.")
	return db, rdb
}

// selectKV picks the directory's backing store. Redis is the default;
// HOMECHEFS_STORE=file keeps everything in one JSON file and
// HOMECHEFS_STORE=memory is for local experiments only.
func selectKV(rdb *redis.Client) store.KV {
	switch envOr("HOMECHEFS_STORE", "redis") {
	case "file":
		kv, err := store.NewFileKV(envOr("HOMECHEFS_DATA_FILE", "homechefs.json"))
		if err != nil {
			log.Fatalf("Failed to open data file: %v", err)
		}
		return kv
	case "memory":
		log.Println("Warning: using in-memory store, data is lost on restart")
		return store.NewMemoryKV()
	default:
		return store.NewRedisKV(rdb, "homechefs")
	}
}

func main() {
	log.Println("Starting HomeChefs Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set!")
	}

	// 1. Dependencies and services
	db, rdb := setupDependencies()

	cat := catalog.NewService(db)
	if err := cat.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	dir := userdir.New(selectKV(rdb))
	if envOr("HOMECHEFS_SEED", "") == "true" {
		seedFoundingChefs(dir, cat)
	}

	// 2. Chat hub, Redis bridge and notification poller
	hub := chathub.NewHub()
	bridge := chathub.NewPubSubBridge(rdb, hub)
	hub.SetMessageSink(func(in chathub.InboundMessage) {
		msg, err := dir.AddMessageToConversation(in.SenderID, in.ReceiverID, in.Content, time.Now())
		if err != nil {
			log.Printf("ERROR: Failed to store message from %d: %v", in.SenderID, err)
			return
		}
		d := chathub.Delivery{
			Recipients:     []int64{in.SenderID, in.ReceiverID},
			ConversationID: models.ConversationID(in.SenderID, in.ReceiverID),
			Message:        *msg,
		}
		if err := bridge.Publish(d); err != nil {
			hub.Deliver(d)
		}
	})

	notifier := notify.NewNotifier(dir)

	go hub.Run()
	go bridge.Listen()
	go notifier.Run()

	// 3. Telegram moderation bot (optional)
	if botToken := os.Getenv("TELEGRAM_BOT_TOKEN"); botToken != "" {
		adminChatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("TELEGRAM_ADMIN_CHAT_ID is missing or invalid: %v", err)
		}
		botService, err := telegram.NewBotService(botToken, adminChatID, dir)
		if err != nil {
			log.Fatalf("Failed to start Telegram bot: %v", err)
		}
		go botService.Run()
	}

	// 4. Gin and routing
	r := gin.Default()
	h := handler.NewHandler(dir, cat, hub, []byte(jwtSecret))
	h.Bridge = bridge
	h.Routes(r)

	server := &http.Server{
		Addr:           envOr("HTTP_ADDR", ":8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
