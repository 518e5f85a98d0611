package docs

import "github.com/swaggo/swag"

// @title           TaskFlow API
// @version         1.0
// @description     Multi-tenant project management API: workspaces, boards, lists, cards, and activity timelines.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Auth
// @tag.description Registration, login, and session info

// @tag.name Workspaces
// @tag.description Workspace management operations

// @tag.name Workspace Members
// @tag.description Workspace membership operations

// @tag.name Boards
// @tag.description Board management operations

// @tag.name Board Members
// @tag.description Board membership operations

// @tag.name Lists
// @tag.description List management operations

// @tag.name Cards
// @tag.description Card management operations

// @tag.name Activity
// @tag.description Activity timeline queries

// Instance is the swagger spec registered for this API.
var Instance = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Title:            "TaskFlow API",
	Description:      "Multi-tenant project management API: workspaces, boards, lists, cards, and activity timelines.",
	InfoInstanceName: "swagger",
}

func init() {
	swag.Register(Instance.InstanceName(), Instance)
}

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return Instance
}
