// Package docs registers the OpenAPI document served under /swagger. It is
// maintained by hand alongside the handler annotations.
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
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new member",
                "parameters": [
                    {"description": "Registration form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.memberResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/farms": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["farms"],
                "summary": "List own farms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listFarmsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["farms"],
                "summary": "Create a farm",
                "parameters": [
                    {"description": "Farm details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.farmRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.farmResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/farms/{farmId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["farms"],
                "summary": "Get a farm",
                "parameters": [{"type": "integer", "description": "Farm id", "name": "farmId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.farmResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["farms"],
                "summary": "Update a farm",
                "parameters": [
                    {"type": "integer", "description": "Farm id", "name": "farmId", "in": "path", "required": true},
                    {"description": "Farm details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.farmRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.farmResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["farms"],
                "summary": "Delete a farm",
                "parameters": [{"type": "integer", "description": "Farm id", "name": "farmId", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/farms/{farmId}/crops": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["crops"],
                "summary": "List the crop records of a farm",
                "parameters": [{"type": "integer", "description": "Farm id", "name": "farmId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listCropRecordsResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["crops"],
                "summary": "Add a crop record to a farm",
                "parameters": [
                    {"type": "integer", "description": "Farm id", "name": "farmId", "in": "path", "required": true},
                    {"description": "Crop record", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.cropRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.cropRecordResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/crops/{cropId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["crops"],
                "summary": "Get a crop record",
                "parameters": [{"type": "integer", "description": "Crop record id", "name": "cropId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.cropRecordResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["crops"],
                "summary": "Delete a crop record",
                "parameters": [{"type": "integer", "description": "Crop record id", "name": "cropId", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/members/{memberId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["members"],
                "summary": "Get a member profile",
                "parameters": [{"type": "integer", "description": "Member id", "name": "memberId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.memberResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "Delete own account",
                "parameters": [{"type": "integer", "description": "Member id", "name": "memberId", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/members/{memberId}/password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["members"],
                "summary": "Change own password",
                "parameters": [
                    {"type": "integer", "description": "Member id", "name": "memberId", "in": "path", "required": true},
                    {"description": "Current and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.changePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/admin/members": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List all members",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listMembersResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["password", "passwordConfirmation", "username"],
            "properties": {
                "username": {"type": "string", "maxLength": 64, "minLength": 3},
                "password": {"type": "string", "maxLength": 72, "minLength": 8},
                "passwordConfirmation": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "accessToken": {"type": "string"},
                "accessExpiresAt": {"type": "string"},
                "refreshToken": {"type": "string"},
                "refreshExpiresAt": {"type": "string"},
                "tokenType": {"type": "string"},
                "principalId": {"type": "integer"},
                "username": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handler.memberResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "role": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "handler.listMembersResponse": {
            "type": "object",
            "properties": {
                "members": {"type": "array", "items": {"$ref": "#/definitions/handler.memberResponse"}},
                "count": {"type": "integer"}
            }
        },
        "handler.changePasswordRequest": {
            "type": "object",
            "required": ["currentPassword", "newPassword", "newPasswordConfirmation"],
            "properties": {
                "currentPassword": {"type": "string"},
                "newPassword": {"type": "string", "maxLength": 72, "minLength": 8},
                "newPasswordConfirmation": {"type": "string"}
            }
        },
        "handler.farmRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 120},
                "location": {"type": "string", "maxLength": 200},
                "area_hectares": {"type": "number", "minimum": 0}
            }
        },
        "handler.farmLinks": {
            "type": "object",
            "properties": {"self": {"type": "string"}, "crops": {"type": "string"}}
        },
        "handler.farmResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "owner_id": {"type": "integer"},
                "name": {"type": "string"},
                "location": {"type": "string"},
                "area_hectares": {"type": "number"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "_links": {"$ref": "#/definitions/handler.farmLinks"}
            }
        },
        "handler.listFarmsResponse": {
            "type": "object",
            "properties": {
                "farms": {"type": "array", "items": {"$ref": "#/definitions/handler.farmResponse"}},
                "count": {"type": "integer"}
            }
        },
        "handler.cropRecordRequest": {
            "type": "object",
            "required": ["crop", "planted_at"],
            "properties": {
                "crop": {"type": "string", "maxLength": 80},
                "variety": {"type": "string", "maxLength": 80},
                "planted_at": {"type": "string"},
                "harvest_at": {"type": "string"},
                "notes": {"type": "string", "maxLength": 1000}
            }
        },
        "handler.cropRecordLinks": {
            "type": "object",
            "properties": {"self": {"type": "string"}, "farm": {"type": "string"}}
        },
        "handler.cropRecordResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "farm_id": {"type": "integer"},
                "crop": {"type": "string"},
                "variety": {"type": "string"},
                "planted_at": {"type": "string"},
                "harvest_at": {"type": "string"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"},
                "_links": {"$ref": "#/definitions/handler.cropRecordLinks"}
            }
        },
        "handler.listCropRecordsResponse": {
            "type": "object",
            "properties": {
                "crop_records": {"type": "array", "items": {"$ref": "#/definitions/handler.cropRecordResponse"}},
                "count": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
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
	Title:            "Farm Records API",
	Description:      "Farm record keeping with per-member ownership of farms, crop records and accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
