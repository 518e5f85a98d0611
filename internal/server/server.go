package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mayaawwadd/taskflow/db"
	"github.com/mayaawwadd/taskflow/internal/activity"
	"github.com/mayaawwadd/taskflow/internal/authz"
	"github.com/mayaawwadd/taskflow/internal/config"
	"github.com/mayaawwadd/taskflow/internal/handler"
	"github.com/mayaawwadd/taskflow/internal/middleware"
	"github.com/mayaawwadd/taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	logger.Info("connected to database", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	if err := runMigrations(gdb); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("migrations applied")

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	// Repositories
	userRepo := repository.NewUserRepository(gdb)
	workspaceRepo := repository.NewWorkspaceRepository(gdb)
	workspaceMemberRepo := repository.NewWorkspaceMemberRepository(gdb)
	boardRepo := repository.NewBoardRepository(gdb)
	boardMemberRepo := repository.NewBoardMemberRepository(gdb)
	listRepo := repository.NewListRepository(gdb)
	cardRepo := repository.NewCardRepository(gdb)
	activityRepo := repository.NewActivityRepository(gdb)

	authzSvc := authz.NewService(workspaceMemberRepo, boardMemberRepo)
	notifier := activity.NewNotifier(activityRepo, logger)

	// Handlers
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authHandler := handler.NewAuthHandler(userRepo, notifier, cfg.JWTSecret, tokenTTL)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceRepo, notifier)
	workspaceMemberHandler := handler.NewWorkspaceMemberHandler(workspaceRepo, workspaceMemberRepo, userRepo, authzSvc, notifier)
	boardHandler := handler.NewBoardHandler(boardRepo, workspaceRepo, authzSvc, notifier)
	boardMemberHandler := handler.NewBoardMemberHandler(boardRepo, boardMemberRepo, userRepo, authzSvc, notifier)
	listHandler := handler.NewListHandler(listRepo, boardRepo, authzSvc, notifier)
	cardHandler := handler.NewCardHandler(cardRepo, listRepo, authzSvc, notifier)
	activityHandler := handler.NewActivityHandler(activityRepo, authzSvc)

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", middleware.LoginRateLimiter(), authHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/auth/me", authHandler.Me)

		// Workspace routes
		authorized.POST("/workspaces", workspaceHandler.Create)
		authorized.GET("/workspaces", workspaceHandler.GetMine)
		authorized.DELETE("/workspaces/:id", workspaceHandler.Delete)
		authorized.GET("/workspaces/:id/members", workspaceMemberHandler.GetAll)
		authorized.POST("/workspaces/:id/invite", workspaceMemberHandler.Invite)
		authorized.DELETE("/workspaces/:id/members/:user_id", workspaceMemberHandler.Remove)
		authorized.PATCH("/workspaces/:id/members/:user_id", workspaceMemberHandler.ChangeRole)
		authorized.GET("/workspaces/:id/activity", activityHandler.GetWorkspaceActivity)

		// Board routes
		authorized.POST("/workspaces/:id/boards", boardHandler.Create)
		authorized.GET("/workspaces/:id/boards", boardHandler.GetByWorkspace)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.DELETE("/boards/:id", boardHandler.Delete)
		authorized.GET("/boards/:id/members", boardMemberHandler.GetAll)
		authorized.POST("/boards/:id/invite", boardMemberHandler.Invite)
		authorized.DELETE("/boards/:id/members/:user_id", boardMemberHandler.Remove)
		authorized.PATCH("/boards/:id/members/:user_id", boardMemberHandler.ChangeRole)
		authorized.GET("/boards/:id/activity", activityHandler.GetBoardActivity)

		// List routes
		authorized.POST("/boards/:id/lists", listHandler.Create)
		authorized.GET("/boards/:id/lists", listHandler.GetByBoard)
		authorized.PUT("/boards/:id/lists/reorder", listHandler.Reorder)
		authorized.DELETE("/lists/:id", listHandler.Delete)

		// Card routes
		authorized.POST("/lists/:id/cards", cardHandler.Create)
		authorized.GET("/lists/:id/cards", cardHandler.GetByList)
		authorized.PUT("/cards/:id/move", cardHandler.Move)
		authorized.DELETE("/cards/:id", cardHandler.Delete)
	}

	return &Server{
		Engine: r,
		DB:     gdb,
		Config: cfg,
		Logger: logger,
	}, nil
}

func runMigrations(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}
	src, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Logger.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	s.Logger.Info("server exited properly")
	_ = s.Logger.Sync()
}
