package parameter

import "time"

// Stream Server
const (
	// StreamPath is the websocket endpoint
	StreamPath = "/ws"

	// StreamPingInterval is the keepalive period for idle viewers
	StreamPingInterval = 30 * time.Second

	// StreamPongWait bounds how long a viewer may stay silent
	StreamPongWait = 2 * StreamPingInterval

	// StreamWriteWait is the deadline for a single frame write
	StreamWriteWait = 5 * time.Second

	// StreamSendBuffer is the per-viewer queue depth; frames beyond it are dropped
	StreamSendBuffer = 8

	// StreamFrameInterval throttles broadcasts below the simulation tick rate
	StreamFrameInterval = 50 * time.Millisecond

	// StreamReadLimit caps inbound viewer messages
	StreamReadLimit = 512
)
