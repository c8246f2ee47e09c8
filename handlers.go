package main

import (
	"encoding/json"
	"log"
)

// marshalBody encodes a JSON object payload. Payloads are built from plain
// maps of strings and numbers, so encoding failure indicates a programming
// error; it is logged and an empty object returned rather than crashing the
// request.
func marshalBody(obj map[string]any) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		log.Printf("REST server: encoding response: %v", err)
		return []byte("{}")
	}
	return data
}

func okResponse(obj map[string]any) httpResponse {
	return httpResponse{body: marshalBody(obj)}
}

func errorResponse(statusCode int, statusText string, obj map[string]any) httpResponse {
	return httpResponse{
		statusCode: statusCode,
		statusText: statusText,
		body:       marshalBody(obj),
	}
}

func (s *RestServer) handleGetStatus() httpResponse {
	return okResponse(s.allPlayersStatus())
}

func (s *RestServer) handleGetPlayer(group string) httpResponse {
	status, known := s.playerStatus(group)
	if !known {
		return errorResponse(404, "Not Found", map[string]any{
			"error": "Player not found",
			"group": group,
		})
	}
	return okResponse(status)
}

func (s *RestServer) handleGetControl(group, item string) httpResponse {
	value, ok := s.registry.Get(group, item)
	if !ok {
		return controlNotFound(group, item)
	}
	return okResponse(map[string]any{
		"group": group,
		"item":  item,
		"value": value,
	})
}

func (s *RestServer) handleSetControl(group, item string, body []byte) httpResponse {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return errorResponse(400, "Bad Request", map[string]any{
			"error": `Invalid JSON body. Expected {"value": <number>}`,
		})
	}

	raw, present := payload["value"]
	if !present {
		return errorResponse(400, "Bad Request", map[string]any{
			"error": "Missing 'value' field in request body",
		})
	}
	// Non-numeric values coerce to 0, matching the engine's loose JSON
	// handling that existing callers rely on.
	value, _ := raw.(float64)

	stored, ok := s.registry.Set(group, item, value)
	if !ok {
		return controlNotFound(group, item)
	}

	return okResponse(map[string]any{
		"success": true,
		"group":   group,
		"item":    item,
		"value":   stored, // effective value after engine clamping
	})
}

func controlNotFound(group, item string) httpResponse {
	return errorResponse(404, "Not Found", map[string]any{
		"error": "Control not found",
		"group": group,
		"item":  item,
	})
}
