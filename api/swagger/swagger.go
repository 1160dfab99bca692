package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Compass API",
        "description": "Course discovery gateway: semantic search, timetable assembly and selection management",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Courses", "description": "Semantic course search and lookup"},
        {"name": "Timetable", "description": "Weekly grid assembly with conflict reporting"},
        {"name": "Selections", "description": "Named course selections"},
        {"name": "Exports", "description": "Timetable file downloads"}
    ],
    "paths": {
        "/courses/search": {
            "get": {
                "tags": ["Courses"],
                "summary": "Semantic course search",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "required": true},
                    {"name": "departments", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{identifier}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Look up one course by identifier or code",
                "parameters": [
                    {"name": "identifier", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/timetable": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Build a weekly grid from an inline course selection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BuildTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/selections": {
            "get": {
                "tags": ["Selections"],
                "summary": "List selections",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Selections"],
                "summary": "Create a named selection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSelectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selections/{id}": {
            "get": {
                "tags": ["Selections"],
                "summary": "Fetch one selection",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Selections"],
                "summary": "Delete a selection",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/selections/{id}/courses": {
            "post": {
                "tags": ["Selections"],
                "summary": "Add a course to a selection (idempotent)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddCourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selections/{id}/courses/{identifier}": {
            "delete": {
                "tags": ["Selections"],
                "summary": "Remove a course from a selection (idempotent)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "identifier", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selections/{id}/timetable": {
            "get": {
                "tags": ["Selections"],
                "summary": "Build the weekly grid for a stored selection",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selections/{id}/export": {
            "post": {
                "tags": ["Selections"],
                "summary": "Export a selection's timetable as CSV or PDF",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a timetable export via its signed token",
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "produces": ["application/octet-stream"],
                "responses": {
                    "200": {"description": "File"},
                    "410": {"description": "Token expired"}
                }
            }
        }
    },
    "definitions": {
        "Course": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "identifier": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "credits": {"type": "integer"},
                "teacher": {"type": "string"},
                "host_department": {"type": "string"},
                "semester": {"type": "string"},
                "time_descriptor": {"type": "string"},
                "classrooms": {"type": "array", "items": {"type": "string"}},
                "targets": {"type": "array", "items": {"type": "string"}},
                "overview": {"type": "string"},
                "objective": {"type": "string"},
                "comment": {"type": "string"},
                "capacity": {"type": "integer", "x-nullable": true},
                "enrolled": {"type": "integer", "x-nullable": true},
                "score": {"type": "number", "x-nullable": true}
            }
        },
        "BuildTimetableRequest": {
            "type": "object",
            "required": ["courses"],
            "properties": {
                "courses": {"type": "array", "items": {"$ref": "#/definitions/Course"}}
            }
        },
        "CreateSelectionRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "semester": {"type": "string"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/Course"}}
            }
        },
        "AddCourseRequest": {
            "type": "object",
            "properties": {
                "identifier": {"type": "string"},
                "course": {"$ref": "#/definitions/Course"}
            }
        },
        "ExportTimetableRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
