// Package docs holds the OpenAPI description served at /swagger/.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a member account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/catalog/gym": {
            "get": {"tags": ["catalog"], "summary": "Gym floor offerings", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/catalog/studio": {
            "get": {"tags": ["catalog"], "summary": "Studio offerings", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/memberships": {
            "get": {
                "tags": ["memberships"],
                "summary": "List membership plans",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "gym or studio", "name": "type", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/memberships/{id}": {
            "get": {
                "tags": ["memberships"],
                "summary": "Get a membership plan",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/pricing": {
            "get": {"tags": ["pricing"], "summary": "Full price table", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/pricing/quote": {
            "post": {"tags": ["pricing"], "summary": "Quote a plan selection", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/checkout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["checkout"],
                "summary": "Pay for a membership",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "402": {"description": "Payment Required"}}
            }
        },
        "/subscriptions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["subscriptions"],
                "summary": "List the member's subscriptions",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/subscriptions/{id}/pause": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["subscriptions"], "summary": "Pause a subscription", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/dashboard": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["subscriptions"], "summary": "Member dashboard", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/payments/{id}/receipt": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Download a PDF receipt", "produces": ["application/pdf"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Signature Fitness API",
	Description:      "Membership, pricing, checkout and subscription API for Signature Fitness.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
