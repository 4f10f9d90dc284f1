// Package docs is generated by swag from the handler annotations.
// Regenerate with: swag init -g cmd/loccar-web/main.go
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
        "/": {
            "get": {
                "tags": ["pages"],
                "summary": "Role-based landing redirect",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "Login page",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.page"}}}
            }
        },
        "/cadastro": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "Registration page",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.page"}}}
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}},
                    {"type": "string", "description": "Page to return to after login", "name": "returnUrl", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ports.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.logoutResponse"}}}
            }
        },
        "/auth/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/auth/session/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh the session profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/session/stream": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["auth"],
                "summary": "Session change stream",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Admin dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Dashboard"}},
                    "302": {"description": "Found"}
                }
            }
        },
        "/usuarios": {
            "get": {
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "User management page",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.page"}}}
            }
        },
        "/usuarios/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Customer detail",
                "parameters": [{"type": "integer", "description": "Customer id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Customer"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Update customer",
                "parameters": [
                    {"type": "integer", "description": "Customer id", "name": "id", "in": "path", "required": true},
                    {"description": "Customer fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.customerUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Customer"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["staff"],
                "summary": "Delete customer",
                "parameters": [{"type": "integer", "description": "Customer id", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/veiculos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Vehicle management list",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.vehicleListResponse"}}}
            }
        },
        "/veiculos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Vehicle detail",
                "parameters": [{"type": "integer", "description": "Vehicle id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Vehicle"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Update vehicle",
                "parameters": [
                    {"type": "integer", "description": "Vehicle id", "name": "id", "in": "path", "required": true},
                    {"description": "Vehicle fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.vehicleUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Vehicle"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["staff"],
                "summary": "Delete vehicle",
                "parameters": [{"type": "integer", "description": "Vehicle id", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/veiculos/{id}/reserva": {
            "put": {
                "tags": ["staff"],
                "summary": "Toggle vehicle reservation flag",
                "parameters": [
                    {"type": "integer", "description": "Vehicle id", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "New flag", "name": "reserved", "in": "query", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/veiculos-disponiveis": {
            "get": {
                "produces": ["application/json"],
                "tags": ["client"],
                "summary": "Available vehicles",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.vehicleListResponse"}}}
            }
        },
        "/veiculos-disponiveis/reservas": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["client"],
                "summary": "Book a vehicle",
                "parameters": [{"description": "Booking", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.bookingRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Reservation"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/minhas-reservas": {
            "get": {
                "produces": ["application/json"],
                "tags": ["client"],
                "summary": "My reservations",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ReservationSummary"}}}
            }
        },
        "/minhas-reservas/{number}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["client"],
                "summary": "Reservation detail",
                "parameters": [{"type": "integer", "description": "Reservation number", "name": "number", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Reservation"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["client"],
                "summary": "Cancel reservation",
                "parameters": [{"type": "integer", "description": "Reservation number", "name": "number", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "driverLicense": {"type": "string"},
                "cellPhone": {"type": "string"},
                "role": {"type": "string", "enum": ["Admin", "Funcionario", "Cliente", "ClientUser"]}
            }
        },
        "domain.Vehicle": {
            "type": "object",
            "properties": {
                "idVehicle": {"type": "integer"},
                "brand": {"type": "string"},
                "model": {"type": "string"},
                "manufacturingYear": {"type": "integer"},
                "modelYear": {"type": "integer"},
                "type": {"type": "integer"},
                "dailyRate": {"type": "number"},
                "reserved": {"type": "boolean"},
                "imgUrl": {"type": "string"}
            }
        },
        "domain.Customer": {
            "type": "object",
            "properties": {
                "idCustomer": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "cellphone": {"type": "string"},
                "driverLicense": {"type": "string"},
                "created": {"type": "string"}
            }
        },
        "domain.Reservation": {
            "type": "object",
            "properties": {
                "reservationnumber": {"type": "integer"},
                "idVehicle": {"type": "integer"},
                "vehicleBrand": {"type": "string"},
                "vehicleModel": {"type": "string"},
                "rentalDate": {"type": "string"},
                "returnDate": {"type": "string"},
                "rentalDays": {"type": "integer"},
                "dailyRate": {"type": "number"},
                "rateType": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVE", "COMPLETED", "CANCELLED"]},
                "totalCost": {"type": "number"},
                "imgUrl": {"type": "string"}
            }
        },
        "domain.ReservationSummary": {
            "type": "object",
            "properties": {
                "activeCount": {"type": "integer"},
                "completedCount": {"type": "integer"},
                "cancelledCount": {"type": "integer"},
                "activeReservations": {"type": "array", "items": {"$ref": "#/definitions/domain.Reservation"}},
                "completedReservations": {"type": "array", "items": {"$ref": "#/definitions/domain.Reservation"}},
                "cancelledReservations": {"type": "array", "items": {"$ref": "#/definitions/domain.Reservation"}}
            }
        },
        "domain.DashboardStats": {
            "type": "object",
            "properties": {
                "totalVehicles": {"type": "integer"},
                "activeReservations": {"type": "integer"},
                "availableVehicles": {"type": "integer"}
            }
        },
        "service.MonthlyRevenue": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "revenue": {"type": "number"}
            }
        },
        "ports.AuthEvent": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "reason": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "service.Dashboard": {
            "type": "object",
            "properties": {
                "stats": {"$ref": "#/definitions/domain.DashboardStats"},
                "revenue": {"type": "array", "items": {"$ref": "#/definitions/service.MonthlyRevenue"}},
                "activity": {"type": "array", "items": {"$ref": "#/definitions/ports.AuthEvent"}}
            }
        },
        "ports.RegisterInput": {
            "type": "object",
            "required": ["username", "email", "password", "driverLicense", "cellPhone"],
            "properties": {
                "username": {"type": "string", "minLength": 2},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 4},
                "confirmPassword": {"type": "string"},
                "driverLicense": {"type": "string", "minLength": 11},
                "cellPhone": {"type": "string", "minLength": 10, "maxLength": 11}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "returnUrl": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/domain.User"},
                "redirect": {"type": "string"}
            }
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"},
                "redirect": {"type": "string"}
            }
        },
        "handler.logoutResponse": {
            "type": "object",
            "properties": {"redirect": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "user": {"$ref": "#/definitions/domain.User"},
                "role": {"type": "string"},
                "home": {"type": "string"}
            }
        },
        "handler.page": {
            "type": "object",
            "properties": {
                "page": {"type": "string"},
                "returnUrl": {"type": "string"}
            }
        },
        "handler.vehicleListResponse": {
            "type": "object",
            "properties": {
                "vehicles": {"type": "array", "items": {"$ref": "#/definitions/domain.Vehicle"}},
                "count": {"type": "integer"}
            }
        },
        "handler.bookingRequest": {
            "type": "object",
            "required": ["idVehicle", "rentalDate", "returnDate"],
            "properties": {
                "idVehicle": {"type": "integer"},
                "rentalDate": {"type": "string"},
                "returnDate": {"type": "string"},
                "dailyRate": {"type": "number"},
                "rateType": {"type": "string", "enum": ["DAILY", "WEEKLY", "MONTHLY"]}
            }
        },
        "handler.customerUpdateRequest": {
            "type": "object",
            "required": ["username", "email", "cellphone", "driverLicense"],
            "properties": {
                "username": {"type": "string", "minLength": 2},
                "email": {"type": "string"},
                "cellphone": {"type": "string", "minLength": 10, "maxLength": 11},
                "driverLicense": {"type": "string", "minLength": 11}
            }
        },
        "handler.vehicleUpdateRequest": {
            "type": "object",
            "required": ["brand", "model", "manufacturingYear", "modelYear", "dailyRate"],
            "properties": {
                "brand": {"type": "string"},
                "model": {"type": "string"},
                "manufacturingYear": {"type": "integer", "minimum": 1950, "maximum": 2100},
                "modelYear": {"type": "integer"},
                "type": {"type": "integer", "minimum": 0, "maximum": 3},
                "dailyRate": {"type": "number"},
                "reserved": {"type": "boolean"},
                "imgUrl": {"type": "string"}
            }
        },
        "handlers.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handlers.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handlers.dependencyStatus"}}
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
	Title:            "LocCar Web API",
	Description:      "Session and role-gated page API of the LocCar rental front-end.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
