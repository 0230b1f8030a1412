package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Room Grid API",
        "description": "Room assignment grid for campus class scheduling",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Grid", "description": "Grid views, rooms and the unassigned pool"},
        {"name": "Mutations", "description": "One-shot grid mutations"},
        {"name": "Gestures", "description": "Drag-and-drop gesture lifecycle"}
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
                "summary": "Readiness check (probes the campus backend)",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Upstream unreachable"}
                }
            }
        },
        "/grid": {
            "get": {
                "tags": ["Grid"],
                "summary": "Render the grid slice for a day, shift and building",
                "parameters": [
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "shift", "in": "query", "type": "string", "required": true},
                    {"name": "building", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Grid slice", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing selection", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grid/reload": {
            "post": {
                "tags": ["Grid"],
                "summary": "Reload rooms, classes and schedules from the campus backend",
                "responses": {
                    "204": {"description": "Reloaded"},
                    "502": {"description": "Upstream failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Grid"],
                "summary": "List rooms of a building grouped by floor",
                "parameters": [
                    {"name": "building", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Floors with rooms", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/unassigned": {
            "get": {
                "tags": ["Grid"],
                "summary": "List classes still waiting for a room on a day",
                "parameters": [
                    {"name": "day", "in": "query", "type": "string", "required": true},
                    {"name": "shift", "in": "query", "type": "string"},
                    {"name": "degree", "in": "query", "type": "string"},
                    {"name": "generation", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Unassigned classes", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grid/assign": {
            "post": {
                "tags": ["Mutations"],
                "summary": "Place an unassigned class into an empty cell",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignRequest"}}
                ],
                "responses": {
                    "201": {"description": "Assignment committed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Cell occupied or class already placed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Upstream rejected, state rolled back", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grid/move": {
            "post": {
                "tags": ["Mutations"],
                "summary": "Move a scheduled assignment to another empty cell",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveRequest"}}
                ],
                "responses": {
                    "200": {"description": "Move committed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Target occupied, swap confirmation required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Upstream rejected, state rolled back", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grid/swap": {
            "post": {
                "tags": ["Mutations"],
                "summary": "Exchange the assignments of two occupied cells",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SwapRequest"}}
                ],
                "responses": {
                    "204": {"description": "Swapped"},
                    "502": {"description": "Upstream rejected, state rolled back", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grid/unassign": {
            "post": {
                "tags": ["Mutations"],
                "summary": "Detach the assignment of a cell back to the pool",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnassignRequest"}}
                ],
                "responses": {
                    "204": {"description": "Unassigned"},
                    "502": {"description": "Upstream rejected, state rolled back", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gestures/pickup/new": {
            "post": {
                "tags": ["Gestures"],
                "summary": "Start dragging a class from the unassigned pool",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PickUpNewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Gesture opened", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gestures/pickup/scheduled": {
            "post": {
                "tags": ["Gestures"],
                "summary": "Start dragging an assignment out of its cell",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PickUpScheduledRequest"}}
                ],
                "responses": {
                    "201": {"description": "Gesture opened", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gestures/{gestureId}/hover": {
            "post": {
                "tags": ["Gestures"],
                "summary": "Preview the legality of dropping on a cell",
                "parameters": [
                    {"name": "gestureId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HoverRequest"}}
                ],
                "responses": {
                    "200": {"description": "Hover verdict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gestures/{gestureId}/drop": {
            "post": {
                "tags": ["Gestures"],
                "summary": "Drop the dragged item on a cell",
                "parameters": [
                    {"name": "gestureId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HoverRequest"}}
                ],
                "responses": {
                    "200": {"description": "Drop result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gestures/{gestureId}/drop-outside": {
            "post": {
                "tags": ["Gestures"],
                "summary": "Drop the dragged item outside the grid",
                "parameters": [
                    {"name": "gestureId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Drop result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gestures/{gestureId}/confirm-swap": {
            "post": {
                "tags": ["Gestures"],
                "summary": "Confirm the swap proposed by the last drop",
                "parameters": [
                    {"name": "gestureId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Swap committed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/gestures/{gestureId}": {
            "delete": {
                "tags": ["Gestures"],
                "summary": "Abandon an open gesture",
                "parameters": [
                    {"name": "gestureId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Cancelled"}
                }
            }
        }
    },
    "definitions": {
        "CellRef": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "shift": {"type": "string"},
                "roomId": {"type": "string"}
            }
        },
        "AssignRequest": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "shift": {"type": "string"},
                "roomId": {"type": "string"},
                "classId": {"type": "string"}
            }
        },
        "MoveRequest": {
            "type": "object",
            "properties": {
                "source": {"$ref": "#/definitions/CellRef"},
                "target": {"$ref": "#/definitions/CellRef"}
            }
        },
        "SwapRequest": {
            "type": "object",
            "properties": {
                "cellA": {"$ref": "#/definitions/CellRef"},
                "cellB": {"$ref": "#/definitions/CellRef"}
            }
        },
        "UnassignRequest": {
            "type": "object",
            "properties": {
                "cell": {"$ref": "#/definitions/CellRef"}
            }
        },
        "PickUpNewRequest": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "classId": {"type": "string"}
            }
        },
        "PickUpScheduledRequest": {
            "type": "object",
            "properties": {
                "cell": {"$ref": "#/definitions/CellRef"}
            }
        },
        "HoverRequest": {
            "type": "object",
            "properties": {
                "cell": {"$ref": "#/definitions/CellRef"}
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
