package mocks

import (
	"image"
	"sync"

	"github.com/user/gifatlas/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Frames      map[string]map[int]image.Image
	Overlays    map[string]image.Image
	BandHeights map[string]int
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:     enabled,
		Frames:      make(map[string]map[int]image.Image),
		Overlays:    make(map[string]image.Image),
		BandHeights: make(map[string]int),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveFrame(name string, index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Frames[name] == nil {
		m.Frames[name] = make(map[int]image.Image)
	}
	m.Frames[name][index] = img
	return nil
}

func (m *DebugSink) SaveAtlasOverlay(name string, atlas image.Image, bandHeight int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Overlays[name] = atlas
	m.BandHeights[name] = bandHeight
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
