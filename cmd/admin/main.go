package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"homechefs/backend/internal/models"
	"homechefs/backend/internal/store"
	"homechefs/backend/internal/userdir"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openDirectory attaches to the same store the server uses, picked by
// HOMECHEFS_STORE just like in the server binary.
func openDirectory() *userdir.Directory {
	switch envOr("HOMECHEFS_STORE", "redis") {
	case "file":
		kv, err := store.NewFileKV(envOr("HOMECHEFS_DATA_FILE", "homechefs.json"))
		if err != nil {
			log.Fatalf("failed to open data file: %v", err)
		}
		return userdir.New(kv)
	case "memory":
		log.Fatal("the admin CLI cannot attach to an in-memory store")
		return nil
	default:
		rdb := redis.NewClient(&redis.Options{
			Addr:     envOr("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("failed to connect Redis: %v", err)
		}
		return userdir.New(store.NewRedisKV(rdb, "homechefs"))
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	dir := openDirectory()

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: pending, chefs, approve <chef_id>, reject <chef_id>")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "pending":
		chefs, err := dir.PendingChefs()
		if err != nil {
			log.Fatalf("Error listing pending chefs: %v", err)
		}
		if len(chefs) == 0 {
			fmt.Println("No chefs are waiting for moderation.")
			return
		}
		printChefs(chefs)
	case "chefs":
		chefs, err := dir.Chefs()
		if err != nil {
			log.Fatalf("Error listing chefs: %v", err)
		}
		printChefs(chefs)
	case "approve":
		chef := moderate(dir.ApproveChef)
		fmt.Printf("Chef %s (%s) has been approved.\n", chef.DisplayName(), chef.Email)
	case "reject":
		chef := moderate(dir.RejectChef)
		fmt.Printf("Chef %s (%s) has been rejected.\n", chef.DisplayName(), chef.Email)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func moderate(action func(int64) (*models.User, error)) *models.User {
	if len(os.Args) != 3 {
		fmt.Printf("Usage: admin %s <chef_id>\n", os.Args[1])
		os.Exit(1)
	}
	chefID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		fmt.Println("Invalid chef ID. Please provide an integer.")
		os.Exit(1)
	}

	chef, err := action(chefID)
	if err != nil {
		log.Fatalf("Error moderating chef: %v", err)
	}
	if chef == nil {
		fmt.Printf("No chef with id %d.\n", chefID)
		os.Exit(1)
	}
	return chef
}

func printChefs(chefs []models.User) {
	for i := range chefs {
		c := &chefs[i]
		fmt.Printf("%d\t%s\t%s\t%s\n", c.ID, c.DisplayName(), c.Email, c.Status)
	}
}
