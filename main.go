package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gemchat/backend/internal/client"
	"github.com/gemchat/backend/internal/config"
	"github.com/gemchat/backend/internal/db"
	"github.com/gemchat/backend/internal/handler"
	"github.com/gemchat/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Startup] no .env file, using process environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	pg, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("[Startup] postgres: %v", err)
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		log.Fatalf("[Startup] schema: %v", err)
	}

	tokenStore := db.NewRefreshTokenStore(pg)

	authService, err := service.NewAuthService(pg, tokenStore, cfg.Auth)
	if err != nil {
		log.Fatalf("[Startup] auth: %v", err)
	}
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		log.Fatalf("[Startup] admin seed: %v", err)
	}

	genaiClient, err := client.NewGenAIClient(cfg.Gemini)
	if err != nil {
		log.Fatalf("[Startup] genai: %v", err)
	}

	chatService := service.NewChatService(pg)
	messageService := service.NewMessageService(pg, genaiClient)

	cleanup := service.NewTokenCleanupService(tokenStore, time.Hour)
	go cleanup.Run(ctx)

	router := gin.Default()
	if origins := cfg.Server.CORSOrigins; origins != "" {
		router.Use(handler.CORSMiddleware(strings.Split(origins, ","), true))
	}

	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)
	messageHandler := handler.NewMessageHandler(messageService)
	userHandler := handler.NewUserHandler(authService)

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/refresh", authHandler.Refresh)
		v1.POST("/auth/logout", authHandler.Logout)

		authed := v1.Group("", handler.AuthMiddleware(authService))
		{
			authed.GET("/chats", chatHandler.List)
			authed.POST("/chats", chatHandler.Create)
			authed.GET("/chats/:id", chatHandler.Get)
			authed.DELETE("/chats/:id", chatHandler.Delete)
			authed.POST("/messages", messageHandler.Create)
			authed.GET("/user", userHandler.Me)
		}
	}

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[Startup] server: %v", err)
	}
}
