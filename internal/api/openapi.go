package api

import "net/http"

// buildOpenAPIDoc returns an OpenAPI 3.1 document covering the intake and
// read API. The admin path is included only when the endpoint exists.
func buildOpenAPIDoc(adminEnabled bool) map[string]any {
	eventSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "format": "uuid"},
			"source":      map[string]any{"type": "string"},
			"eventType":   map[string]any{"type": "string"},
			"payload":     map[string]any{"type": "object"},
			"providedTag": map[string]any{"type": "string"},
			"verified":    map[string]any{"type": "boolean"},
			"receivedAt":  map[string]any{"type": "string", "format": "date-time"},
		},
	}

	intakeSchema := map[string]any{
		"type":     "object",
		"required": []string{"source", "eventType", "payload"},
		"properties": map[string]any{
			"source":    map[string]any{"type": "string", "minLength": 1, "maxLength": 100},
			"eventType": map[string]any{"type": "string", "minLength": 1, "maxLength": 100},
			"payload":   map[string]any{"type": "object", "minProperties": 1},
		},
	}

	paths := map[string]any{
		"/webhooks": map[string]any{
			"post": map[string]any{
				"operationId": "receiveWebhook",
				"summary":     "Receive a webhook delivery",
				"parameters": []any{
					map[string]any{
						"name":        "x-webhook-signature",
						"in":          "header",
						"required":    false,
						"description": "Hex-encoded HMAC-SHA256 tag over the canonical delivery",
						"schema":      map[string]any{"type": "string"},
					},
				},
				"requestBody": map[string]any{
					"required": true,
					"content": map[string]any{
						"application/json": map[string]any{"schema": intakeSchema},
					},
				},
				"responses": map[string]any{
					"201": map[string]any{"description": "Delivery accepted"},
					"400": map[string]any{"description": "Bad request"},
					"413": map[string]any{"description": "Payload too large"},
					"429": map[string]any{"description": "Too many requests"},
				},
			},
			"get": map[string]any{
				"operationId": "listWebhooks",
				"summary":     "List stored events, newest first",
				"parameters": []any{
					map[string]any{"name": "page", "in": "query", "schema": map[string]any{"type": "integer", "default": 1}},
					map[string]any{"name": "limit", "in": "query", "schema": map[string]any{"type": "integer", "default": 10, "maximum": 100}},
					map[string]any{"name": "source", "in": "query", "schema": map[string]any{"type": "string"}},
					map[string]any{"name": "eventType", "in": "query", "schema": map[string]any{"type": "string"}},
				},
				"responses": map[string]any{
					"200": map[string]any{"description": "Page of stored events"},
					"400": map[string]any{"description": "Bad request"},
				},
			},
		},
		"/webhooks/{eventID}": map[string]any{
			"get": map[string]any{
				"operationId": "getWebhook",
				"summary":     "Fetch a stored event by id",
				"parameters": []any{
					map[string]any{"name": "eventID", "in": "path", "required": true, "schema": map[string]any{"type": "string"}},
				},
				"responses": map[string]any{
					"200": map[string]any{
						"description": "Stored event",
						"content": map[string]any{
							"application/json": map[string]any{"schema": eventSchema},
						},
					},
					"404": map[string]any{"description": "Event not found"},
				},
			},
			"delete": map[string]any{
				"operationId": "deleteWebhook",
				"summary":     "Delete a stored event by id",
				"parameters": []any{
					map[string]any{"name": "eventID", "in": "path", "required": true, "schema": map[string]any{"type": "string"}},
				},
				"responses": map[string]any{
					"204": map[string]any{"description": "Event deleted"},
					"404": map[string]any{"description": "Event not found"},
				},
			},
		},
		"/healthz": map[string]any{
			"get": map[string]any{
				"operationId": "healthz",
				"summary":     "Service health and store occupancy",
				"responses": map[string]any{
					"200": map[string]any{"description": "Service is up"},
				},
			},
		},
	}

	if adminEnabled {
		paths["/admin/events"] = map[string]any{
			"delete": map[string]any{
				"operationId": "clearEvents",
				"summary":     "Clear all stored events",
				"security":    []any{map[string]any{"BearerAuth": []string{}}},
				"responses": map[string]any{
					"200": map[string]any{"description": "Store cleared"},
					"401": map[string]any{"description": "Unauthorized"},
				},
			},
		}
	}

	return map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":   "Hookwell",
			"version": "1.0",
		},
		"paths": paths,
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"BearerAuth": map[string]any{
					"type":   "http",
					"scheme": "bearer",
				},
			},
		},
	}
}

// handleOpenAPI handles GET /openapi.json (no auth).
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, buildOpenAPIDoc(s.config.AdminToken != ""))
}
