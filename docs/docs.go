// Package docs registers the OpenAPI description served under /swagger.
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
        "/faculty": {
            "get": {
                "description": "Exact, case-sensitive color match. A blank or missing color yields an empty list.",
                "produces": ["application/json"],
                "tags": ["faculty"],
                "summary": "Find faculties by color",
                "parameters": [
                    {"type": "string", "description": "Color", "name": "color", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Faculty"}}}
                }
            },
            "put": {
                "description": "Saves the faculty. An unknown id is stored as a new faculty.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["faculty"],
                "summary": "Edit faculty",
                "parameters": [
                    {"description": "Faculty", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Faculty"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Faculty"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Nothing was saved", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stores a new faculty and returns it with its generated id",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["faculty"],
                "summary": "Create faculty",
                "parameters": [
                    {"description": "Faculty", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Faculty"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Faculty"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/faculty/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["faculty"],
                "summary": "Export faculties",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/faculty/faculties": {
            "get": {
                "description": "Case-insensitive substring search over name and color. A blank term matches every faculty.",
                "produces": ["application/json"],
                "tags": ["faculty"],
                "summary": "Search faculties",
                "parameters": [
                    {"type": "string", "description": "Search term", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Faculty"}}},
                    "404": {"description": "No faculty matched", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/faculty/{id}": {
            "get": {
                "description": "Retrieves a faculty by its ID",
                "produces": ["application/json"],
                "tags": ["faculty"],
                "summary": "Get faculty",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Faculty ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Faculty"}},
                    "400": {"description": "Invalid faculty ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Faculty not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Deletes a faculty. Students of the faculty are left without one. Unknown ids are ignored.",
                "tags": ["faculty"],
                "summary": "Delete faculty",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Faculty ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid faculty ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/faculty/{id}/students": {
            "get": {
                "produces": ["application/json"],
                "tags": ["faculty"],
                "summary": "Faculty students",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Faculty ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Student"}}},
                    "204": {"description": "The faculty has no students"},
                    "400": {"description": "Invalid faculty ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and store connectivity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Store unreachable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/student": {
            "get": {
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "List students",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Student"}}}
                }
            },
            "put": {
                "description": "Saves the student. An unknown id is stored as a new student.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Edit student",
                "parameters": [
                    {"description": "Student", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Student"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Student"}},
                    "400": {"description": "Malformed body or unknown faculty", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Nothing was saved", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stores a new student. faculty.id, when given, must reference an existing faculty.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Create student",
                "parameters": [
                    {"description": "Student", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Student"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Student"}},
                    "400": {"description": "Malformed body or unknown faculty", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/student/age": {
            "get": {
                "description": "Only ages above 18 are looked up; anything else yields an empty list.",
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Find students by age",
                "parameters": [
                    {"type": "integer", "description": "Age", "name": "age", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Student"}}},
                    "400": {"description": "Non-numeric age", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/student/age-range": {
            "get": {
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Find students by age range",
                "parameters": [
                    {"type": "integer", "description": "Lower bound, inclusive", "name": "minAge", "in": "query", "required": true},
                    {"type": "integer", "description": "Upper bound, inclusive", "name": "maxAge", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Student"}}},
                    "400": {"description": "Missing or non-numeric bounds", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/student/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["student"],
                "summary": "Export students",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/student/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Get student",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Student ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Student"}},
                    "400": {"description": "Invalid student ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Unknown ids are ignored.",
                "tags": ["student"],
                "summary": "Delete student",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Student ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid student ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/student/{id}/faculty": {
            "get": {
                "produces": ["application/json"],
                "tags": ["student"],
                "summary": "Student faculty",
                "parameters": [
                    {"type": "integer", "format": "int64", "description": "Student ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Faculty"}},
                    "400": {"description": "Invalid student ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Student missing or without faculty", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "RES_001"},
                "message": {"type": "string", "example": "Student not found"},
                "field": {"type": "string", "example": "id"},
                "severity": {"type": "string", "example": "ERROR"},
                "details": {}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "requestId": {"type": "string", "example": "5f0c7a52-3c55-4a4e-9a5e-3f1d1c2b8f11"},
                "timestamp": {"type": "string", "example": "2025-04-23T12:01:05.123Z"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        },
        "models.Faculty": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Gryffindor"},
                "color": {"type": "string", "example": "red"}
            }
        },
        "models.Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Harry Potter"},
                "age": {"type": "integer", "example": 17},
                "faculty": {"$ref": "#/definitions/models.Faculty"}
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
	Title:            "Hogwarts School API",
	Description:      "Student and faculty records with lookups by age, color and name.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
