// Package api provides the HTTP surface for the Color Wars server.
//
// The api package implements:
//   - Read-only REST endpoints for rooms and server stats
//   - WebSocket upgrade handling
//   - Health and Prometheus metrics endpoints
//   - Static file serving for the browser client
//
// Endpoints:
//
// Rooms:
//   - GET /api/rooms - List active rooms (most recently active first,
//     optional ?limit=N)
//   - GET /api/rooms/{id} - Full public state of one room
//   - GET /api/stats - Aggregate room/player counts
//
// Operational:
//   - GET /healthz - Liveness probe with version, uptime, and room/client counts
//   - GET /metrics - Prometheus metrics
//
// Gameplay:
//   - /ws - WebSocket upgrade; all joins, moves and chat flow here
//
// All mutation happens over the WebSocket. The REST surface exists for
// lobby screens, dashboards, and probes, and never changes game state.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
