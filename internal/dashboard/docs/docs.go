// Package docs holds the OpenAPI description served at /swagger.
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
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get the dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardResponse"}}}
            }
        },
        "/news": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get economic news",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NewsResponse"}}}
            }
        },
        "/news/preview": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Preview a news article",
                "parameters": [{"type": "string", "description": "Article URL", "name": "url", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ArticlePreviewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/stocks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Get attention stocks",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StocksResponse"}}}
            }
        },
        "/likes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["community"],
                "summary": "Get likes",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/entity.LikeData"}}}}
            }
        },
        "/likes/stream": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["community"],
                "summary": "Stream likes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/comments/stream": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["community"],
                "summary": "Stream comments",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stocks/{code}/like": {
            "post": {
                "produces": ["application/json"],
                "tags": ["community"],
                "summary": "Toggle a like",
                "parameters": [{"type": "string", "description": "Stock code", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.LikeData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/stocks/{code}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["community"],
                "summary": "Get comments",
                "parameters": [{"type": "string", "description": "Stock code", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CommentsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["community"],
                "summary": "Add a comment",
                "parameters": [
                    {"type": "string", "description": "Stock code", "name": "code", "in": "path", "required": true},
                    {"description": "Comment to add", "name": "comment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.Comment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users/me/name": {
            "get": {
                "produces": ["application/json"],
                "tags": ["community"],
                "summary": "Get the user name",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserNameResponse"}}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["community"],
                "summary": "Update the user name",
                "parameters": [{"description": "New user name", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateUserNameRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserNameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/storage/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["community"],
                "summary": "Get the storage backend",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StorageStatusResponse"}}}
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "dto.ArticlePreviewResponse": {"type": "object", "properties": {"url": {"type": "string"}, "title": {"type": "string"}, "content": {"type": "string"}}},
        "dto.CommentsResponse": {"type": "object", "properties": {"stockCode": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/entity.Comment"}}}},
        "dto.CreateCommentRequest": {"type": "object", "properties": {"author": {"type": "string"}, "content": {"type": "string"}}},
        "dto.UpdateUserNameRequest": {"type": "object", "properties": {"userName": {"type": "string"}}},
        "dto.UserNameResponse": {"type": "object", "properties": {"userName": {"type": "string"}}},
        "dto.StorageStatusResponse": {"type": "object", "properties": {"backend": {"type": "string"}}},
        "dto.NewsResponse": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/entity.NewsItem"}}, "updatedAt": {"type": "string"}}},
        "dto.StocksResponse": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/entity.Stock"}}, "updatedAt": {"type": "string"}}},
        "dto.DashboardResponse": {"type": "object", "properties": {"news": {"$ref": "#/definitions/dto.NewsResponse"}, "stocks": {"$ref": "#/definitions/dto.StocksResponse"}, "digest": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "entity.NewsItem": {"type": "object", "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "source": {"type": "string"}, "publishedAt": {"type": "string"}, "url": {"type": "string"}}},
        "entity.Stock": {"type": "object", "properties": {"code": {"type": "string"}, "name": {"type": "string"}, "price": {"type": "number"}, "previousClose": {"type": "number"}, "change": {"type": "number"}, "changePercent": {"type": "number"}, "volume": {"type": "integer"}, "reason": {"type": "string"}}},
        "entity.Comment": {"type": "object", "properties": {"id": {"type": "string"}, "stockCode": {"type": "string"}, "author": {"type": "string"}, "content": {"type": "string"}, "timestamp": {"type": "string"}}},
        "entity.LikeData": {"type": "object", "properties": {"count": {"type": "integer"}, "liked": {"type": "boolean"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "TNP Quick View API",
	Description:      "Japanese economic headlines, attention stocks, likes and comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
