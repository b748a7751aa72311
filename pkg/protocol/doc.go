// Package protocol implements the tally wire format between the browser
// client and a live session.
//
// Every WebSocket message is one binary frame with a 4-byte header followed by
// a JSON payload:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameEvent (0x01): client → server, an Event ({"hid":"h1","event":"click"})
//   - FrameRender (0x02): server → client, a Render ({"seq":3,"html":"..."})
//   - FrameError (0x05): server → client, an ErrorMessage
//
// Payloads are limited to MaxPayloadSize bytes.
package protocol
