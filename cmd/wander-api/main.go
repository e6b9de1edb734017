// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wander/internal/ai"
	"wander/internal/config"
	httptransport "wander/internal/http"
	"wander/internal/infra"
	"wander/internal/maps"
	"wander/internal/modules/aiusage"
	"wander/internal/modules/chatlog"
	"wander/internal/modules/session"
	"wander/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	sessionStore := session.NewStore(redisClient, cfg.Session.TTL)
	sessionSvc := session.NewService(sessionStore)

	chatlogStore := chatlog.NewStore(dbPool)
	chatlogSvc := chatlog.NewService(chatlogStore)

	var fallback ai.LLMClassifier
	var quota service.FallbackQuota
	if cfg.AI.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer provider.Close()
		fallback = provider
		quota = aiusage.NewService(aiusage.NewStore(dbPool))
	}

	var places service.DestinationResolver
	if cfg.Maps.APIKey != "" {
		placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		places = placesSvc
	}

	analyzer := service.NewChatAnalyzer(chatlogSvc, sessionSvc, fallback, quota, places, cfg.AI.FallbackThreshold)

	handler := httptransport.NewRouter(analyzer, sessionSvc, chatlogSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
