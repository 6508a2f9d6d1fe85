// Package websocket serves 2048 boards over WebSocket connections.
//
// Every connection owns one engine, built from the variant named in the
// query string (/ws?variant=2048_mini). An optional seed parameter makes
// the spawns reproducible. The current state is sent as soon as the
// connection opens.
//
// Message Protocol:
//
// Incoming messages are JSON commands:
//   - {"type": "move", "direction": "left"}
//   - {"type": "new_game"}
//   - {"type": "state"}
//
// Every command is answered with either a state event carrying the move
// result and the board snapshot, or an error event:
//   - {"event": "state", "variant": "2048", "result": {...}, "state": {...}}
//   - {"event": "error", "error": "unknown command \"jump\""}
//
// Commands on one connection are applied in order by a single goroutine,
// so the engine is never touched concurrently.
//
// Usage:
//
//	srv := websocket.NewServer(logger)
//	http.ListenAndServe(":8080", srv.Handler())
package websocket
