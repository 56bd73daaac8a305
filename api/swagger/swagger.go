package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Bearer token"
        }
    },
    "tags": [
        {"name": "Courses", "description": "Course catalogue"},
        {"name": "Health", "description": "Service liveness"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthStatus"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1},
                    {"name": "limit", "in": "query", "type": "integer", "minimum": 1, "maximum": 100},
                    {"name": "sort", "in": "query", "type": "string", "description": "Comma separated keys, '-' prefix for descending"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["Active", "Inactive"]},
                    {"name": "categoryId", "in": "query", "type": "string"},
                    {"name": "courseModeId", "in": "query", "type": "string"},
                    {"name": "instructorId", "in": "query", "type": "string"},
                    {"name": "sponsorId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CourseListEnvelope"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CourseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course by UUID",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CourseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Courses"],
                "summary": "Update course fields",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CoursePatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CourseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "FacebookData": {
            "type": "object",
            "properties": {
                "pageId": {"type": "string"},
                "pageName": {"type": "string"},
                "eventUrl": {"type": "string", "format": "uri"}
            },
            "required": ["pageId", "pageName", "eventUrl"]
        },
        "CourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "description": {"type": "string"},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"},
                "startHour": {"type": "string"},
                "endHour": {"type": "string"},
                "duration": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "Inactive"]},
                "categoryUuids": {"type": "array", "items": {"type": "string"}},
                "courseModeUuids": {"type": "array", "items": {"type": "string"}},
                "instructorUuids": {"type": "array", "items": {"type": "string"}},
                "sponsorUuids": {"type": "array", "items": {"type": "string"}},
                "courseReactionsUuids": {"type": "array", "items": {"type": "string"}},
                "courseRatingsUuids": {"type": "array", "items": {"type": "string"}},
                "urlMeeting": {"type": "string", "format": "uri"},
                "imageUrl": {"type": "string", "format": "uri"},
                "publicationDate": {"type": "string", "format": "date-time"},
                "facebookData": {"$ref": "#/definitions/FacebookData"}
            },
            "required": ["name", "description", "startDate", "endDate", "startHour", "endHour", "duration", "status", "urlMeeting", "publicationDate", "facebookData"]
        },
        "CoursePatchRequest": {
            "type": "object",
            "description": "Only the fields present are changed",
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "description": {"type": "string"},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"},
                "startHour": {"type": "string"},
                "endHour": {"type": "string"},
                "duration": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "Inactive"]},
                "categoryUuids": {"type": "array", "items": {"type": "string"}},
                "courseModeUuids": {"type": "array", "items": {"type": "string"}},
                "instructorUuids": {"type": "array", "items": {"type": "string"}},
                "sponsorUuids": {"type": "array", "items": {"type": "string"}},
                "courseReactionsUuids": {"type": "array", "items": {"type": "string"}},
                "courseRatingsUuids": {"type": "array", "items": {"type": "string"}},
                "urlMeeting": {"type": "string", "format": "uri"},
                "imageUrl": {"type": "string", "format": "uri"},
                "publicationDate": {"type": "string", "format": "date-time"},
                "facebookData": {"$ref": "#/definitions/FacebookData"}
            }
        },
        "NamedReference": {
            "type": "object",
            "properties": {
                "uuid": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "Instructor": {
            "type": "object",
            "properties": {
                "uuid": {"type": "string"},
                "name": {"type": "string"},
                "lastName": {"type": "string"},
                "grado": {"type": "string"},
                "profession": {"type": "string"},
                "description": {"type": "string"},
                "specialization": {"type": "string"}
            }
        },
        "Sponsor": {
            "type": "object",
            "properties": {
                "uuid": {"type": "string"},
                "name": {"type": "string"},
                "logoUrl": {"type": "string"},
                "websiteUrl": {"type": "string"}
            }
        },
        "CourseReaction": {
            "type": "object",
            "properties": {
                "uuid": {"type": "string"},
                "userUuid": {"type": "string"},
                "reaction": {"type": "string"}
            }
        },
        "CourseRating": {
            "type": "object",
            "properties": {
                "uuid": {"type": "string"},
                "userUuid": {"type": "string"},
                "rating": {"type": "number"},
                "comment": {"type": "string"}
            }
        },
        "CourseView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "uuid": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"},
                "startHour": {"type": "string"},
                "endHour": {"type": "string"},
                "duration": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "Inactive"]},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/NamedReference"}},
                "courseModes": {"type": "array", "items": {"$ref": "#/definitions/NamedReference"}},
                "instructors": {"type": "array", "items": {"$ref": "#/definitions/Instructor"}},
                "sponsors": {"type": "array", "items": {"$ref": "#/definitions/Sponsor"}},
                "courseReactions": {"type": "array", "items": {"$ref": "#/definitions/CourseReaction"}},
                "courseRatings": {"type": "array", "items": {"$ref": "#/definitions/CourseRating"}},
                "facebookData": {"$ref": "#/definitions/FacebookData"},
                "createdDate": {"type": "string", "format": "date-time"},
                "updatedDate": {"type": "string", "format": "date-time"},
                "urlMeeting": {"type": "string"},
                "publicationDate": {"type": "string", "format": "date-time"},
                "imageUrl": {"type": "string"},
                "averageRating": {"type": "number"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "totalRecords": {"type": "integer"},
                "currentPage": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "nextPage": {"type": "integer", "x-nullable": true},
                "previousPage": {"type": "integer", "x-nullable": true}
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
        "HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "details": {"type": "object"}
            }
        },
        "CourseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CourseView"}
            }
        },
        "CourseListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/CourseView"}},
                "pagination": {"$ref": "#/definitions/Pagination"}
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

// SwaggerInfo holds the document metadata rendered into docTemplate.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Educamedic API",
	Description:      "API for Educamedic project",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// Configure overrides the document metadata. Empty values keep the defaults.
func Configure(title, version, description, basePath string) {
	if title != "" {
		SwaggerInfo.Title = title
	}
	if version != "" {
		SwaggerInfo.Version = version
	}
	if description != "" {
		SwaggerInfo.Description = description
	}
	if basePath != "" {
		SwaggerInfo.BasePath = basePath
	}
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
