package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/expensaver/expensaver-api/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/expensaver/expensaver-api/internal/account"
	"github.com/expensaver/expensaver-api/internal/authentication"
	"github.com/expensaver/expensaver-api/internal/expense"
	"github.com/expensaver/expensaver-api/internal/utils"
	"go.uber.org/zap"
)

// @title           Expensaver API
// @version         1.0
// @description     Accounts, single-session token authentication and expense tracking.
// @termsOfService  http://example.com/terms/
//
// @host      localhost:8080
// @BasePath  /api/v1
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load config
	cfg, err := utils.LoadConfig(".env")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// init logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	// init database
	db, err := utils.InitDatabase(cfg.Database.DSN())
	if err != nil {
		logger.Fatal("failed to connect to the database", zap.Error(err))
	}
	if err := db.AutoMigrate(&account.Account{}, &expense.Expense{}); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// init Gin router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	//
	// SWAGGER (protected by Basic Auth, not JWT)
	//
	if cfg.Admin.Username != "" {
		swaggerGroup := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.Admin.Username: cfg.Admin.Password,
		}))
		swaggerGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	//
	// WIRE UP SERVICES
	//
	accountRepo := account.NewAccountRepository(db, cfg.Database.QueryTimeout)
	accountService := account.NewAccountService(accountRepo, logger)

	authService := authentication.NewAuthenticationService(
		accountRepo,
		logger,
		authentication.TokenSettings{
			AccessSecret:  cfg.Token.AccessTokenSecret,
			AccessTTL:     cfg.Token.AccessTokenTTL,
			RefreshSecret: cfg.Token.RefreshTokenSecret,
			RefreshTTL:    cfg.Token.RefreshTokenTTL,
			BcryptCost:    cfg.Token.BcryptCost,
		},
	)

	expenseRepo := expense.NewExpenseRepository(db, cfg.Database.QueryTimeout)
	expenseService := expense.NewExpenseService(expenseRepo, logger)

	api := router.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := api.Group("/")
	authGroup.Use(authentication.AuthMiddleware(authService, logger))

	adminGroup := api.Group("/")
	adminGroup.Use(
		authentication.AuthMiddleware(authService, logger),
		authentication.RoleMiddleware(account.Admin),
	)

	authentication.NewAuthHandler(api, authGroup, authService, logger)
	account.NewAccountHandler(authGroup, adminGroup, accountService, logger)
	expense.NewExpenseHandler(authGroup, expenseService, logger)

	//
	// START SERVER
	//
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped gracefully")
	}
}
