// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/internhub/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/applications": {
            "post": {
                "description": "Сохраняет заявку и резюме, затем запускает обогащение (разбор резюме, GitHub, скоринг).",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Заявки"],
                "summary": "Подать заявку",
                "parameters": [
                    {"type": "string", "description": "ФИО", "name": "full_name", "in": "formData", "required": true},
                    {"type": "string", "description": "Email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "ВУЗ", "name": "college", "in": "formData", "required": true},
                    {"type": "string", "description": "Степень/программа", "name": "degree", "in": "formData", "required": true},
                    {"type": "string", "description": "Ссылка на GitHub-профиль", "name": "github", "in": "formData", "required": true},
                    {"type": "string", "description": "Портфолио (Kaggle и т.п.)", "name": "portfolio", "in": "formData"},
                    {"type": "integer", "description": "Самооценка 0-10", "name": "programming", "in": "formData", "required": true},
                    {"type": "integer", "description": "Самооценка 0-10", "name": "data_structures", "in": "formData", "required": true},
                    {"type": "integer", "description": "Самооценка 0-10", "name": "ml_ai", "in": "formData", "required": true},
                    {"type": "integer", "description": "Самооценка 0-10", "name": "web_dev", "in": "formData", "required": true},
                    {"type": "integer", "description": "Самооценка 0-10", "name": "tools", "in": "formData", "required": true},
                    {"type": "file", "description": "Резюме (PDF)", "name": "resume", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/presenter.SubmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/applications/track": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Заявки"],
                "summary": "Найти заявку по номеру",
                "parameters": [
                    {"description": "номер заявки", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.trackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/presenter.TrackResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/applications/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Заявки"],
                "summary": "Статус заявки",
                "parameters": [
                    {"type": "string", "description": "номер заявки", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Вход администратора",
                "parameters": [
                    {"description": "login payload", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/admin/applications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Рекрутер"],
                "summary": "Список кандидатов",
                "parameters": [
                    {"type": "integer", "description": "размер страницы (1-200)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "смещение", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/admin/applications/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Рекрутер"],
                "summary": "Карточка кандидата",
                "parameters": [
                    {"type": "string", "description": "номер заявки", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/admin/applications/{id}/rescore": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Рекрутер"],
                "summary": "Пересчитать балл",
                "parameters": [
                    {"type": "string", "description": "номер заявки", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ErrorResponse"}}
                }
            }
        },
        "/admin/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Рекрутер"],
                "summary": "Выгрузка кандидатов",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.loginRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "handlers.trackRequest": {
            "type": "object",
            "properties": {"applicationId": {"type": "string"}}
        },
        "presenter.ErrorResponse": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "presenter.SubmitResponse": {
            "type": "object",
            "properties": {
                "applicationId": {"type": "string"},
                "dashboardUrl": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "presenter.TrackResponse": {
            "type": "object",
            "properties": {
                "applicationId": {"type": "string"},
                "dashboardUrl": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Токен администратора. Поддерживаются форматы: \"Bearer <JWT>\" или \"<JWT>\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "internhub API",
	Description:      "Приём заявок на стажировку: разбор PDF-резюме, анализ GitHub-профиля и скоринг кандидатов.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
