package events

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Event is a single wheel event: a spin lifecycle change or a collision
// passing the pointer.
type Event struct {
	Time     string   `json:"t"`
	Kind     string   `json:"kind"` // "spin", "landed", "collision_edge", "collision_center", "log"
	Index    *int     `json:"index,omitempty"`
	Progress *float64 `json:"progress,omitempty"` // absent in continuous mode
	Msg      string   `json:"msg,omitempty"`
}

// Broadcaster distributes wheel events to multiple in-process
// subscribers. Delivery is best effort: slow subscribers drop events
// rather than stall the animation tick.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan string]struct{}
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan string]struct{}),
	}
}

// Subscribe returns a channel that receives broadcast events as JSON
// payloads and a cleanup function. The caller must call the returned
// cleanup when done.
func (b *Broadcaster) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 64)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	unsub := func() {
		b.mu.Lock()
		delete(b.clients, ch)
		b.mu.Unlock()
		close(ch)
	}
	return ch, unsub
}

// Broadcast sends an event to all subscribers. The timestamp is filled
// in here. Non-blocking: full subscriber channels miss the event.
func (b *Broadcaster) Broadcast(evt Event) {
	evt.Time = time.Now().Format(time.RFC3339)
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	payload := string(data)

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- payload:
		default:
			// channel full, skip
		}
	}
}

// Collision broadcasts a collision event. progress is reported only when
// hasProgress is true (continuous rotation has no bounded tween).
func (b *Broadcaster) Collision(kind string, index int, progress float64, hasProgress bool) {
	evt := Event{Kind: "collision_" + kind, Index: &index}
	if hasProgress {
		evt.Progress = &progress
	}
	b.Broadcast(evt)
}

// Spin broadcasts the start of a spin toward the given slice.
func (b *Broadcaster) Spin(index int) {
	b.Broadcast(Event{Kind: "spin", Index: &index})
}

// Landed broadcasts the completion of a spin on the given slice.
func (b *Broadcaster) Landed(index int) {
	b.Broadcast(Event{Kind: "landed", Index: &index})
}

// LogWriter implements io.Writer; each Write broadcasts the content as a
// "log" event. Use with debug.SetOutput to mirror the logger into the
// event stream.
func LogWriter(b *Broadcaster) *logWriter {
	return &logWriter{b: b}
}

type logWriter struct {
	b *Broadcaster
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg != "" {
		w.b.Broadcast(Event{Kind: "log", Msg: msg})
	}
	return len(p), nil
}
