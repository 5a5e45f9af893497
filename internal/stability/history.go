package stability

import "github.com/banshee-data/pathguard/internal/zones"

// DefaultHistorySize is the number of frames the stabilizer looks back over.
const DefaultHistorySize = 3

// History maintains a sliding window of recent frame zone maps.
type History struct {
	frames   []zones.FrameZoneMap
	capacity int
	head     int // next write position
	size     int
}

// NewHistory creates a history buffer with the specified capacity.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistorySize
	}
	return &History{
		frames:   make([]zones.FrameZoneMap, capacity),
		capacity: capacity,
	}
}

// Add stores a frame, overwriting the oldest if at capacity.
func (h *History) Add(frame zones.FrameZoneMap) {
	h.frames[h.head] = frame
	h.head = (h.head + 1) % h.capacity
	if h.size < h.capacity {
		h.size++
	}
}

// Previous returns the frame n steps back from the most recent.
// Previous(1) is the most recently added frame. Returns nil if the
// requested frame doesn't exist.
func (h *History) Previous(n int) zones.FrameZoneMap {
	if n < 1 || n > h.size {
		return nil
	}
	idx := (h.head - n + h.capacity) % h.capacity
	return h.frames[idx]
}

// Size returns the current number of frames in history.
func (h *History) Size() int {
	return h.size
}

// Capacity returns the maximum number of frames that can be stored.
func (h *History) Capacity() int {
	return h.capacity
}

// Clear removes all frames from history.
func (h *History) Clear() {
	for i := range h.frames {
		h.frames[i] = nil
	}
	h.head = 0
	h.size = 0
}

// All returns the buffered frames from oldest to newest.
func (h *History) All() []zones.FrameZoneMap {
	if h.size == 0 {
		return nil
	}
	result := make([]zones.FrameZoneMap, h.size)
	for i := 0; i < h.size; i++ {
		idx := (h.head - h.size + i + h.capacity) % h.capacity
		result[i] = h.frames[idx]
	}
	return result
}
