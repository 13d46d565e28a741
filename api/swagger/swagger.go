package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "MES Workflow API",
        "description": "Role-gated manufacturing workflow service",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Login, token refresh and logout"},
        {"name": "Users", "description": "Admin-only account management"},
        {"name": "Orders", "description": "Production order lifecycle"},
        {"name": "QC", "description": "Inspection recording and report export"},
        {"name": "Dashboard", "description": "Monthly rollups"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK, refresh cookie set"},
                    "400": {"description": "Unknown email or wrong password"}
                }
            }
        },
        "/refresh-token": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "New access token"},
                    "401": {"description": "Missing, expired or superseded refresh token"}
                }
            }
        },
        "/logout": {
            "delete": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "responses": {
                    "200": {"description": "Session revoked, cookie cleared"},
                    "401": {"description": "No valid refresh token"}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Users"],
                "summary": "Create user (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure or duplicate email"},
                    "403": {"description": "Caller is not ADMIN"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users (admin only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Caller is not ADMIN"}
                }
            }
        },
        "/user/{id}": {
            "put": {
                "tags": ["Users"],
                "summary": "Update user (admin only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure, unknown user or duplicate email"},
                    "403": {"description": "Caller is not ADMIN"}
                }
            }
        },
        "/production-orders": {
            "get": {
                "tags": ["Orders"],
                "summary": "List production orders",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/production-order": {
            "post": {
                "tags": ["Orders"],
                "summary": "Create production order (operator only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created in PENDING"},
                    "403": {"description": "Caller is not OPERATOR"}
                }
            }
        },
        "/production-order/{referenceNo}": {
            "get": {
                "tags": ["Orders"],
                "summary": "Completed order detail",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "referenceNo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown reference or order not COMPLETED"}
                }
            },
            "put": {
                "tags": ["Orders"],
                "summary": "Update order status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "referenceNo", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateOrderStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "400": {"description": "Invalid status or unknown reference"}
                }
            },
            "delete": {
                "tags": ["Orders"],
                "summary": "Delete pending order",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "referenceNo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "400": {"description": "Unknown reference or order not PENDING"}
                }
            }
        },
        "/qc-report/{productionId}": {
            "post": {
                "tags": ["QC"],
                "summary": "Record inspection (qc only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "productionId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordInspectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Recorded"},
                    "400": {"description": "Unknown order or duplicate passing inspection"},
                    "403": {"description": "Caller is not QC"}
                }
            }
        },
        "/qc-report/{referenceNo}": {
            "get": {
                "tags": ["QC"],
                "summary": "Export QC report as PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "referenceNo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF attachment"},
                    "403": {"description": "Caller is not QC"},
                    "404": {"description": "Unknown reference or order not COMPLETED"}
                }
            }
        },
        "/dashboard/production": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Monthly production rollup",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/inspections": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Monthly inspection rollup",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/users": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "User role rollup (admin only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Caller is not ADMIN"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "password", "role"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "OPERATOR", "QC"]}
            }
        },
        "UpdateUserRequest": {
            "type": "object",
            "required": ["name", "email", "role"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "OPERATOR", "QC"]}
            }
        },
        "CreateOrderRequest": {
            "type": "object",
            "required": ["modelName", "quantity"],
            "properties": {
                "modelName": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "UpdateOrderStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["PENDING", "IN_PROGRESS", "COMPLETED", "CANCELLED"]}
            }
        },
        "RecordInspectionRequest": {
            "type": "object",
            "required": ["passed"],
            "properties": {
                "passed": {"type": "boolean"},
                "notes": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "message": {"type": "object"},
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
