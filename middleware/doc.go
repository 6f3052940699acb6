// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Stack

Every request passes through chi's request-scoped middleware before routing:

	server := http.Server{
		Handler: middleware.Stack(mux),
	}

Stack assigns a request ID (reusing an incoming X-Request-Id), rewrites
RemoteAddr from True-Client-IP, X-Real-IP or X-Forwarded-For, recovers panics
as 500 responses, and applies CORS.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(handler))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms). The request ID is echoed in the X-Request-Id response
header.

# CORS Middleware

Allows methods GET, POST, PUT, PATCH, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key. Content-Disposition is exposed so
browsers can read the export filename.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
