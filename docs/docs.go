// Package docs регистрирует описание API для swagger UI.
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
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Список пользователей",
                "parameters": [
                    {"type": "boolean", "description": "Включать архивных", "name": "include_archived", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Добавить пользователя",
                "parameters": [
                    {"description": "Имя", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateUserInput"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/users/{userID}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Переименовать пользователя",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userID", "in": "path", "required": true},
                    {"description": "Имя", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateUserInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["users"],
                "summary": "Удалить пользователя",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userID", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}, "409": {"description": "Основного пользователя удалить нельзя"}}
            }
        },
        "/sessions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Список сессий, новые первыми",
                "parameters": [
                    {"type": "string", "description": "this-month | this-year | year-YYYY | all-time", "name": "period", "in": "query"},
                    {"type": "string", "description": "three-player | four-player | all", "name": "mode", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Сохранить новую сессию",
                "responses": {"201": {"description": "Created"}, "422": {"description": "Сессия не прошла проверку"}}
            }
        },
        "/sessions/{sessionID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Сессия с итогами игроков",
                "parameters": [
                    {"type": "integer", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Перезаписать сессию",
                "parameters": [
                    {"type": "integer", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "Удалить сессию",
                "parameters": [
                    {"type": "integer", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/rounds/resolve": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rounds"],
                "summary": "Пересчитать черновик ханчана",
                "description": "Автосчёт последнего игрока, бонусные отметки и места. Ничего не сохраняет.",
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Настройки по умолчанию для новых сессий",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Изменить настройки по умолчанию",
                "parameters": [
                    {"description": "Настройки", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Settings"}}
                ],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/statistics/users/{userID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Статистика игрока",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "userID", "in": "path", "required": true},
                    {"type": "string", "description": "this-month | this-year | year-YYYY | all-time", "name": "period", "in": "query"},
                    {"type": "string", "description": "three-player | four-player | all", "name": "mode", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/statistics/ranking": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Рейтинг пользователей по метрикам",
                "parameters": [
                    {"type": "string", "description": "this-month | this-year | year-YYYY | all-time", "name": "period", "in": "query"},
                    {"type": "string", "description": "three-player | four-player | all", "name": "mode", "in": "query"},
                    {"type": "string", "description": "last-5 | last-10 | all", "name": "sample", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/statistics/years": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Годы, за которые есть сессии",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/exports": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "Выгрузить все сессии в хранилище",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "503": {"description": "Хранилище не настроено"}}
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Сводка для главного экрана",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "services.CreateUserInput": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "models.Settings": {
            "type": "object",
            "properties": {
                "point_rate": {"type": "integer"},
                "bonus_value": {"type": "integer"},
                "chip_rate": {"type": "integer"},
                "bonus_rule": {"type": "string", "enum": ["standard", "second-place-minus"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Mahjong Scorebook API",
	Description:      "Учёт игровых сессий маджонга, расчёт выплат и статистика игроков.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
