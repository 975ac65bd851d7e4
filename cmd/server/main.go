package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/api"
	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/auth"
	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/config"
	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/logging"
	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/pokedex"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := logging.Init("api"); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("config load failed: %v", err)
		log.Fatalf("config load failed: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	// A missing signing secret must abort here, not on the first login.
	tokens, err := auth.NewTokenService(
		cfg.Auth.GetJWTSecret(),
		time.Duration(cfg.Auth.GetTokenTTLHours())*time.Hour,
	)
	if err != nil {
		logging.Error("token service init failed: %v", err)
		log.Fatalf("token service init failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.GetURI()))
	if err == nil {
		err = client.Ping(ctx, nil)
	}
	cancel()
	if err != nil {
		logging.Error("mongodb connection failed: %v", err)
		log.Fatalf("mongodb connection failed: %v", err)
	}
	logging.Info("connected to MongoDB at %s", cfg.Mongo.GetURI())

	db := client.Database(cfg.Mongo.GetDatabase())

	userRepo, err := auth.NewMongoUserRepo(db.Collection(cfg.Mongo.GetUsersCollection()))
	if err != nil {
		log.Fatalf("user repository init failed: %v", err)
	}
	pokemonRepo, err := pokedex.NewMongoPokemonRepo(db.Collection(cfg.Mongo.GetPokemonsCollection()))
	if err != nil {
		log.Fatalf("pokemon repository init failed: %v", err)
	}

	server := api.NewRestServer(api.Config{
		Port:          cfg.Server.GetPort(),
		AllowedOrigin: cfg.Server.GetAllowedOrigin(),
		UserRepo:      userRepo,
		PokemonRepo:   pokemonRepo,
		Tokens:        tokens,
	})

	go func() {
		logging.Info("pokedex API listening on :%d", cfg.Server.GetPort())
		if err := server.Start(); err != nil {
			logging.Error("server stopped: %v", err)
			log.Fatalf("server stopped: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logging.Info("shutting down...")
	disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer disconnectCancel()
	if err := client.Disconnect(disconnectCtx); err != nil {
		logging.Error("mongodb disconnect failed: %v", err)
	}
}
