package main

import (
	"bytes"
	"strings"
)

// parseHTTPRequest turns one chunk of bytes read from a connection into a
// request. The server reads a connection exactly once, so the chunk is
// assumed to hold the whole request; there is no reassembly against
// Content-Length. Malformed input degrades to an empty method/path, which the
// router turns into an error response.
func parseHTTPRequest(data []byte) httpRequest {
	req := httpRequest{headers: make(map[string]string)}

	lines := bytes.Split(data, []byte{'\n'})
	if len(lines) == 0 {
		return req
	}

	// Request line, e.g. "GET /api/status HTTP/1.1".
	requestLine := strings.Fields(string(bytes.TrimSpace(lines[0])))
	if len(requestLine) >= 2 {
		req.method = requestLine[0]
		req.path = requestLine[1]
	}

	// Headers run until the first blank line. Lines without a colon, or with
	// a colon in position zero, are skipped.
	headerEnd := 1
	for i := 1; i < len(lines); i++ {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 {
			headerEnd = i + 1
			break
		}
		colon := bytes.IndexByte(line, ':')
		if colon > 0 {
			key := strings.ToLower(strings.TrimSpace(string(line[:colon])))
			value := strings.TrimSpace(string(line[colon+1:]))
			req.headers[key] = value
		}
	}

	// Everything after the blank line is the raw body, embedded line breaks
	// preserved.
	if headerEnd < len(lines) {
		req.body = bytes.Join(lines[headerEnd:], []byte{'\n'})
	}

	return req
}
