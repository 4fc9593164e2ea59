package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Shift Roster API",
        "description": "Monthly department shift generation, reconciliation and editing",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Shifts", "description": "Generation, month map, bulk edits and export"},
        {"name": "Leave", "description": "Day-off and paid-leave intake"},
        {"name": "Temporary", "description": "Temporary worker pre-assignment"},
        {"name": "Requirements", "description": "Per-slot staffing headcount"}
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
                    "503": {"description": "A dependency is unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/shifts/generate": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Generate a month of draft shifts",
                "parameters": [
                    {"name": "X-Actor", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateShiftsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Generation summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/shifts/jobs/{id}": {
            "get": {
                "tags": ["Shifts"],
                "summary": "Queued generation status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown job", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/shifts/map": {
            "get": {
                "tags": ["Shifts"],
                "summary": "Reconciled month display map",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "month", "in": "query", "required": true, "type": "string", "description": "yyyy-MM"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/shifts/edits": {
            "post": {
                "tags": ["Shifts"],
                "summary": "Submit bulk shift edits",
                "parameters": [
                    {"name": "X-Actor", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ShiftEditSubmission"}}
                ],
                "responses": {
                    "200": {"description": "Per-entry report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/shifts/export": {
            "get": {
                "tags": ["Shifts"],
                "summary": "Download the month roster",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "month", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Attachment"}
                }
            }
        },
        "/api/v1/leave-requests": {
            "get": {
                "tags": ["Leave"],
                "summary": "Authoritative leave rows for a month",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "month", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Leave"],
                "summary": "Record leave requests",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitLeaveRequests"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Leave"],
                "summary": "Cancel the current leave for a worker day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CancelLeaveRequest"}}
                ],
                "responses": {
                    "204": {"description": "Cancelled"}
                }
            }
        },
        "/api/v1/temporary-assignments": {
            "get": {
                "tags": ["Temporary"],
                "summary": "Temporary assignments for a month",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "month", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Temporary"],
                "summary": "Pre-assign temporary workers",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignTemporaryWorkers"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/staffing-requirements": {
            "get": {
                "tags": ["Requirements"],
                "summary": "Staffing requirements for a month",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "month", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Requirements"],
                "summary": "Create or replace staffing requirements",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertStaffingRequirements"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateShiftsRequest": {
            "type": "object",
            "required": ["year", "month", "department"],
            "properties": {
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "department": {"type": "string"},
                "async": {"type": "boolean"}
            }
        },
        "ShiftEditSubmission": {
            "type": "object",
            "required": ["department"],
            "properties": {
                "department": {"type": "string"},
                "action": {"type": "string", "enum": ["DRAFT", "CONFIRMED", "UNCONFIRM"]},
                "shifts": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "LeaveRequestInput": {
            "type": "object",
            "properties": {
                "workerId": {"type": "integer"},
                "date": {"type": "string"},
                "department": {"type": "string"},
                "kind": {"type": "string", "enum": ["DAY_OFF", "PAID_LEAVE"]}
            }
        },
        "SubmitLeaveRequests": {
            "type": "object",
            "properties": {
                "requests": {"type": "array", "items": {"$ref": "#/definitions/LeaveRequestInput"}}
            }
        },
        "CancelLeaveRequest": {
            "type": "object",
            "properties": {
                "workerId": {"type": "integer"},
                "date": {"type": "string"},
                "department": {"type": "string"}
            }
        },
        "TemporaryAssignmentInput": {
            "type": "object",
            "properties": {
                "workerId": {"type": "integer"},
                "date": {"type": "string"},
                "department": {"type": "string"},
                "timeSlot": {"type": "string"}
            }
        },
        "AssignTemporaryWorkers": {
            "type": "object",
            "properties": {
                "assignments": {"type": "array", "items": {"$ref": "#/definitions/TemporaryAssignmentInput"}}
            }
        },
        "StaffingRequirementInput": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "department": {"type": "string"},
                "timeSlot": {"type": "string"},
                "requiredCount": {"type": "integer"}
            }
        },
        "UpsertStaffingRequirements": {
            "type": "object",
            "properties": {
                "requirements": {"type": "array", "items": {"$ref": "#/definitions/StaffingRequirementInput"}}
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
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
