package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/JerryLinyx/wikiquiz/config"
	"github.com/JerryLinyx/wikiquiz/controllers"
	"github.com/JerryLinyx/wikiquiz/repository"
	"github.com/JerryLinyx/wikiquiz/router"
	"github.com/JerryLinyx/wikiquiz/services"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run database migrations
	if err := config.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	cache, err := config.InitRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	articles := controllers.NewArticleController(
		repository.NewArticleRepository(db),
		services.NewScraper(),
		services.NewQuizGenerator(services.QuizGeneratorConfig{
			APIKey:      cfg.Groq.APIKey,
			BaseURL:     cfg.Groq.BaseURL,
			Model:       cfg.Groq.Model,
			Temperature: cfg.Groq.Temperature,
			Timeout:     time.Duration(cfg.Groq.TimeoutSeconds) * time.Second,
		}),
		cache,
	)

	r := router.InitRouter(cfg, articles)
	port := cfg.App.Port
	if port == "" {
		port = ":8080"
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	log.Println("Server exiting")
}
