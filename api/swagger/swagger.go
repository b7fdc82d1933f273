package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Next Stop China Forms API",
        "description": "Form intake backend: contact inquiries, study-abroad applications and newsletter subscriptions",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Forms", "description": "Public form submission endpoints"},
        {"name": "Newsletter", "description": "Newsletter subscription lifecycle"},
        {"name": "Admin", "description": "Submission listings for operators"},
        {"name": "Email", "description": "Email configuration diagnostics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Dependencies unavailable"}
                }
            }
        },
        "/forms/contact": {
            "post": {
                "tags": ["Forms"],
                "summary": "Submit contact inquiry",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitInquiryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/forms/application": {
            "post": {
                "tags": ["Forms"],
                "summary": "Submit study-abroad application",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitApplicationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/forms/newsletter": {
            "post": {
                "tags": ["Newsletter"],
                "summary": "Subscribe to the newsletter",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubscribeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Subscribed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "200": {"description": "Already subscribed or resubscribed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed or conflicting subscription", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/forms/newsletter/unsubscribe": {
            "post": {
                "tags": ["Newsletter"],
                "summary": "Unsubscribe from the newsletter",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnsubscribeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Unsubscribed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Email not subscribed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/email/test": {
            "get": {
                "tags": ["Email"],
                "summary": "Inspect email configuration (development only)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden outside development"}
                }
            }
        },
        "/admin/inquiries": {
            "get": {
                "tags": ["Admin"],
                "summary": "List contact inquiries",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/applications": {
            "get": {
                "tags": ["Admin"],
                "summary": "List applications",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "degreeLevel", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/subscriptions": {
            "get": {
                "tags": ["Admin"],
                "summary": "List newsletter subscriptions",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitInquiryRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "country": {"type": "string"},
                "program": {"type": "string"},
                "message": {"type": "string"}
            },
            "required": ["firstName", "lastName", "email", "phone", "country", "message"]
        },
        "SubmitApplicationRequest": {
            "type": "object",
            "properties": {
                "personalInfo": {"$ref": "#/definitions/ApplicationPersonalInfo"},
                "academic": {"$ref": "#/definitions/ApplicationAcademic"},
                "program": {"$ref": "#/definitions/ApplicationProgram"},
                "documents": {"$ref": "#/definitions/ApplicationDocuments"},
                "additional": {"$ref": "#/definitions/ApplicationAdditional"}
            },
            "required": ["personalInfo", "academic", "program"]
        },
        "ApplicationPersonalInfo": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "nationality": {"type": "string"},
                "dateOfBirth": {"type": "string", "format": "date"}
            },
            "required": ["firstName", "lastName", "email", "phone", "nationality", "dateOfBirth"]
        },
        "ApplicationAcademic": {
            "type": "object",
            "properties": {
                "currentEducation": {"type": "string"},
                "institution": {"type": "string"},
                "gpa": {"type": "string"},
                "graduationYear": {"type": "string"},
                "fieldOfStudy": {"type": "string"}
            },
            "required": ["currentEducation"]
        },
        "ApplicationProgram": {
            "type": "object",
            "properties": {
                "degreeLevel": {"type": "string", "enum": ["bachelors", "masters", "phd", "mbbs", "diploma", "certificate"]},
                "preferredProgram": {"type": "string"},
                "preferredUniversity": {"type": "string"},
                "startDate": {"type": "string"}
            },
            "required": ["degreeLevel", "preferredProgram", "startDate"]
        },
        "ApplicationDocuments": {
            "type": "object",
            "properties": {
                "transcript": {"type": "boolean"},
                "passport": {"type": "boolean"},
                "languageTest": {"type": "boolean"},
                "recommendation": {"type": "boolean"}
            }
        },
        "ApplicationAdditional": {
            "type": "object",
            "properties": {
                "scholarshipInterest": {"type": "string", "enum": ["yes", "no", "maybe"]},
                "personalStatement": {"type": "string"},
                "previousExperience": {"type": "string"}
            }
        },
        "SubscribeRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "source": {"type": "string", "enum": ["homepage", "contact_page", "apply_page", "other"]}
            },
            "required": ["email"]
        },
        "UnsubscribeRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            },
            "required": ["email"]
        },
        "FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
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
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "errors": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/FieldError"}
                },
                "pagination": {"$ref": "#/definitions/Pagination"}
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
