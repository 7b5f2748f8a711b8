// Package service provides the business logic layer for Color Wars.
//
// The service package implements:
//   - The createOrJoin / submitMove / leave transactions
//   - The player-facing rejection taxonomy
//   - Read-only room metadata for the operational surface
//
// Core Interfaces:
//
// GameService is the single boundary the transports (WebSocket, MCP) invoke.
// It sits between the transport layer and the game engine, resolving rooms
// through the session registry and mapping engine rule errors to Reject
// values with stable machine-readable codes.
//
// Error Handling:
//
// Every failure is a synchronous *Reject returned to the caller, never a
// partial mutation: a rejected move leaves board, roster, and first-move
// bookkeeping exactly as they were, and the same player's turn. Transports
// deliver rejections to the originating client only; room-wide broadcasts
// follow successful mutations exclusively.
//
// Usage:
//
//	registry := session.NewManager()
//	svc := service.NewGameService(registry)
//
//	join, err := svc.CreateOrJoin(ctx, "r1", connID, "alice", 2)
//	if err != nil {
//		var rej *service.Reject
//		if errors.As(err, &rej) {
//			// surface rej.Message to the client
//		}
//	}
package service
