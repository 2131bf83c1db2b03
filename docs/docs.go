// Package docs registers the OpenAPI description served at /swagger/doc.json.
// Keep it in step with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/login": {
            "post": {
                "description": "Checks the credentials and returns a signed session token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "User Login",
                "parameters": [
                    {
                        "description": "User login credentials",
                        "name": "loginBody",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "400": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Database error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "description": "Registers a new user. The password is stored only as a bcrypt hash.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "User Registration",
                "parameters": [
                    {
                        "description": "User registration details",
                        "name": "registerBody",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.RegisterRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "User created", "schema": {"$ref": "#/definitions/auth.SuccessResponse"}},
                    "400": {"description": "Could not register user (duplicate name or invalid input)", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Database error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/todos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Todos"],
                "summary": "List the caller's todos",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive match on text or description", "name": "search", "in": "query"},
                    {"type": "string", "description": "all, active or completed", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/todos.Todo"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "No token provided / Invalid token", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Database error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Todos"],
                "summary": "Add a todo",
                "parameters": [
                    {
                        "description": "New todo",
                        "name": "todo",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/todos.CreateTodoRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/todos.CreateTodoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/todos/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Todos"],
                "summary": "Stars and level of the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/todos.Stats"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/todos/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Completing a todo adds one to its reward; un-completing leaves the reward unchanged.",
                "produces": ["application/json"],
                "tags": ["Todos"],
                "summary": "Toggle completion of a todo",
                "parameters": [
                    {"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/todos.ToggleTodoResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Todos"],
                "summary": "Delete a todo",
                "parameters": [
                    {"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.SuccessResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "Todo not found", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Retrieves the profile of the authenticated user. The id comes from the session token only.",
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get current user's profile",
                "responses": {
                    "200": {"description": "Successfully retrieved user profile", "schema": {"$ref": "#/definitions/users.UserProfileResponse"}},
                    "401": {"description": "No token provided / Invalid token", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Database error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperror.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "A description of the error"}
            }
        },
        "auth.LoginRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "alice"},
                "password": {"type": "string", "example": "correct horse battery staple"}
            }
        },
        "auth.LoginResponse": {
            "type": "object",
            "properties": {
                "expires_at": {"type": "string", "example": "2026-01-01T13:00:00Z"},
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."}
            }
        },
        "auth.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "alice@example.com"},
                "name": {"type": "string", "example": "alice"},
                "password": {"type": "string", "example": "correct horse battery staple"}
            }
        },
        "auth.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true}
            }
        },
        "todos.CreateTodoRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "description": {"type": "string", "maxLength": 2000, "example": "Balcony ones too"},
                "priority": {"type": "string", "enum": ["Low", "Medium", "High"], "example": "High"},
                "text": {"type": "string", "maxLength": 500, "example": "Water the plants"}
            }
        },
        "todos.CreateTodoResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "todo_id": {"type": "integer", "example": 12}
            }
        },
        "todos.Stats": {
            "type": "object",
            "properties": {
                "completed": {"type": "integer"},
                "level": {"type": "integer"},
                "stars": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "todos.Todo": {
            "type": "object",
            "properties": {
                "completed": {"type": "boolean"},
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "priority": {"type": "string"},
                "reward": {"type": "integer"},
                "text": {"type": "string"},
                "todo_id": {"type": "integer"},
                "user_id": {"type": "integer"}
            }
        },
        "todos.ToggleTodoResponse": {
            "type": "object",
            "properties": {
                "completed": {"type": "boolean", "example": true},
                "reward": {"type": "integer", "example": 1},
                "success": {"type": "boolean", "example": true}
            }
        },
        "users.UserProfileResponse": {
            "description": "User profile information",
            "type": "object",
            "properties": {
                "created_at": {"description": "The time the user was created", "type": "string", "example": "2026-01-15T10:30:00Z"},
                "email": {"description": "The email address of the user, empty when none was given at registration", "type": "string", "example": "alice@example.com"},
                "id": {"description": "The ID of the user", "type": "integer", "example": 1},
                "name": {"description": "The login name of the user", "type": "string", "example": "alice"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TodoQuest API",
	Description:      "Multi-user todo API with bcrypt credentials and signed session tokens.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
