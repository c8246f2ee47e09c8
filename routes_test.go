package main

import (
	"encoding/json"
	"testing"
)

func testServer() *RestServer {
	engine := NewEngineState(2)
	return NewRestServer(engine, engine)
}

func decodeBody(t *testing.T, response httpResponse) map[string]any {
	t.Helper()
	var obj map[string]any
	if err := json.Unmarshal(response.body, &obj); err != nil {
		t.Fatalf("Response body is not a JSON object: %v (body %q)", err, response.body)
	}
	return obj
}

func TestRouting(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown top-level path",
			method:     "GET",
			path:       "/foo",
			wantStatus: 404,
			wantError:  "Not Found",
		},
		{
			name:       "root path",
			method:     "GET",
			path:       "/",
			wantStatus: 404,
			wantError:  "Not Found",
		},
		{
			name:       "bare api prefix",
			method:     "GET",
			path:       "/api",
			wantStatus: 400,
			wantError:  "Bad Request",
		},
		{
			name:       "unknown endpoint",
			method:     "GET",
			path:       "/api/nope",
			wantStatus: 404,
			wantError:  "Endpoint not found",
		},
		{
			name:       "status",
			method:     "GET",
			path:       "/api/status",
			wantStatus: 200,
		},
		{
			name:       "status with query string",
			method:     "GET",
			path:       "/api/status?pretty=1",
			wantStatus: 200,
		},
		{
			// Method mismatch on /api/status is a 404, not a 405; only the
			// control endpoint reports 405.
			name:       "POST to status",
			method:     "POST",
			path:       "/api/status",
			wantStatus: 404,
			wantError:  "Endpoint not found",
		},
		{
			name:       "POST to player",
			method:     "POST",
			path:       "/api/player/Channel1",
			wantStatus: 404,
			wantError:  "Endpoint not found",
		},
		{
			name:       "DELETE on control",
			method:     "DELETE",
			path:       "/api/control/Channel1/volume",
			wantStatus: 405,
			wantError:  "Method Not Allowed",
		},
		{
			name:       "control without item segment",
			method:     "GET",
			path:       "/api/control/Channel1",
			wantStatus: 404,
			wantError:  "Endpoint not found",
		},
		{
			name:       "get control",
			method:     "GET",
			path:       "/api/control/Channel1/volume",
			wantStatus: 200,
		},
		{
			name:       "get control bracketed percent-encoded",
			method:     "GET",
			path:       "/api/control/%5BChannel1%5D/volume",
			wantStatus: 200,
		},
		{
			name:       "unknown control",
			method:     "GET",
			path:       "/api/control/Channel1/warp_drive",
			wantStatus: 404,
			wantError:  "Control not found",
		},
		{
			name:       "post control",
			method:     "POST",
			path:       "/api/control/Master/volume",
			body:       `{"value": 0.5}`,
			wantStatus: 200,
		},
	}

	server := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := server.handleRequest(httpRequest{
				method: tt.method,
				path:   tt.path,
				body:   []byte(tt.body),
			})
			gotStatus := response.statusCode
			if gotStatus == 0 {
				gotStatus = 200
			}
			if gotStatus != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d (body %s)", tt.wantStatus, gotStatus, response.body)
			}
			if tt.wantError != "" {
				obj := decodeBody(t, response)
				if obj["error"] != tt.wantError {
					t.Errorf("Expected error %q, got %v", tt.wantError, obj["error"])
				}
			}
		})
	}
}

func TestRoutingOptionsPreflight(t *testing.T) {
	server := testServer()
	for _, path := range []string{"/api/status", "/api/anything", "/nonsense", ""} {
		response := server.handleRequest(httpRequest{method: "OPTIONS", path: path})
		if response.statusCode != 204 {
			t.Errorf("OPTIONS %q: expected status 204, got %d", path, response.statusCode)
		}
		if len(response.body) != 0 {
			t.Errorf("OPTIONS %q: expected empty body, got %q", path, response.body)
		}
	}
}

func TestUnknownTopLevelPathMessage(t *testing.T) {
	server := testServer()
	response := server.handleRequest(httpRequest{method: "GET", path: "/foo"})
	obj := decodeBody(t, response)
	if obj["message"] != "API endpoints are under /api" {
		t.Errorf("Expected redirect hint message, got %v", obj["message"])
	}
}

func TestControlNotFoundEchoesKey(t *testing.T) {
	server := testServer()
	response := server.handleRequest(httpRequest{method: "GET", path: "/api/control/Channel1/warp_drive"})
	obj := decodeBody(t, response)
	if obj["group"] != "[Channel1]" {
		t.Errorf("Expected group %q, got %v", "[Channel1]", obj["group"])
	}
	if obj["item"] != "warp_drive" {
		t.Errorf("Expected item %q, got %v", "warp_drive", obj["item"])
	}
}

func TestGroupNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Channel1", "[Channel1]"},
		{"[Channel1]", "[Channel1]"},
		{"[Channel1", "[Channel1]"},
		{"Channel1]", "[Channel1]"},
		{"Master", "[Master]"},
	}
	for _, tt := range tests {
		if got := normalizeGroup(tt.in); got != tt.want {
			t.Errorf("normalizeGroup(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestPlayerGroupBracketEquivalence(t *testing.T) {
	engine := NewEngineState(2)
	engine.LoadTrack("[Channel1]", Track{Title: "Test", Artist: "Someone"})
	server := NewRestServer(engine, engine)

	bare := server.handleRequest(httpRequest{method: "GET", path: "/api/player/Channel1"})
	bracketed := server.handleRequest(httpRequest{method: "GET", path: "/api/player/%5BChannel1%5D"})

	if string(bare.body) != string(bracketed.body) {
		t.Errorf("Expected identical bodies, got %q vs %q", bare.body, bracketed.body)
	}
	if bare.statusCode != 0 && bare.statusCode != 200 {
		t.Errorf("Expected success, got status %d", bare.statusCode)
	}
}

func TestSetControlPayloadValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
		wantValue  float64
	}{
		{
			name:       "not json",
			body:       "not json",
			wantStatus: 400,
			wantError:  `Invalid JSON body. Expected {"value": <number>}`,
		},
		{
			name:       "json array",
			body:       "[1, 2]",
			wantStatus: 400,
			wantError:  `Invalid JSON body. Expected {"value": <number>}`,
		},
		{
			name:       "json null",
			body:       "null",
			wantStatus: 400,
			wantError:  `Invalid JSON body. Expected {"value": <number>}`,
		},
		{
			name:       "empty object",
			body:       "{}",
			wantStatus: 400,
			wantError:  "Missing 'value' field in request body",
		},
		{
			name:       "numeric value",
			body:       `{"value": 0.5}`,
			wantStatus: 200,
			wantValue:  0.5,
		},
		{
			name:       "string value coerces to zero",
			body:       `{"value": "loud"}`,
			wantStatus: 200,
			wantValue:  0,
		},
		{
			name:       "bool value coerces to zero",
			body:       `{"value": true}`,
			wantStatus: 200,
			wantValue:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testServer()
			response := server.handleRequest(httpRequest{
				method: "POST",
				path:   "/api/control/Master/volume",
				body:   []byte(tt.body),
			})
			gotStatus := response.statusCode
			if gotStatus == 0 {
				gotStatus = 200
			}
			if gotStatus != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d (body %s)", tt.wantStatus, gotStatus, response.body)
			}
			obj := decodeBody(t, response)
			if tt.wantError != "" {
				if obj["error"] != tt.wantError {
					t.Errorf("Expected error %q, got %v", tt.wantError, obj["error"])
				}
				return
			}
			if obj["success"] != true {
				t.Errorf("Expected success true, got %v", obj["success"])
			}
			if obj["value"] != tt.wantValue {
				t.Errorf("Expected value %v, got %v", tt.wantValue, obj["value"])
			}
		})
	}
}

func TestSetControlRoundTrip(t *testing.T) {
	server := testServer()

	post := server.handleRequest(httpRequest{
		method: "POST",
		path:   "/api/control/%5BMaster%5D/volume",
		body:   []byte(`{"value": 0.5}`),
	})
	obj := decodeBody(t, post)
	if obj["success"] != true || obj["group"] != "[Master]" || obj["item"] != "volume" || obj["value"] != 0.5 {
		t.Fatalf("Unexpected POST response: %s", post.body)
	}

	get := server.handleRequest(httpRequest{method: "GET", path: "/api/control/Master/volume"})
	obj = decodeBody(t, get)
	if obj["value"] != 0.5 {
		t.Errorf("Expected read-back value 0.5, got %v", obj["value"])
	}
}

func TestSetControlReportsClampedValue(t *testing.T) {
	server := testServer()
	response := server.handleRequest(httpRequest{
		method: "POST",
		path:   "/api/control/Master/volume",
		body:   []byte(`{"value": 2.5}`),
	})
	obj := decodeBody(t, response)
	if obj["value"] != 1.0 {
		t.Errorf("Expected clamped value 1, got %v", obj["value"])
	}
}
