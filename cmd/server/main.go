package main

import (
	"log"

	_ "github.com/mayaawwadd/taskflow/docs"
	"github.com/mayaawwadd/taskflow/internal/config"
	"github.com/mayaawwadd/taskflow/internal/server"
)

// @title           TaskFlow API
// @version         1.0
// @description     Multi-tenant project management API: workspaces, boards, lists, and cards.

// @contact.name   TaskFlow
// @contact.email  support@taskflow.dev

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("server initialization failed: %v", err)
	}

	s.Run()
}
