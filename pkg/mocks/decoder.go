package mocks

import (
	"fmt"
	"sync"

	"github.com/user/gifatlas/pkg/ports"
)

// FrameDecoder is a mock implementation of ports.FrameDecoder.
// Frames and errors are looked up by path.
type FrameDecoder struct {
	mu sync.Mutex

	Frames map[string][]ports.AnimationFrame
	Errors map[string]error

	DecodeFramesFunc func(path string) ([]ports.AnimationFrame, error)

	Calls []string
}

// NewFrameDecoder creates a new mock FrameDecoder.
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{
		Frames: make(map[string][]ports.AnimationFrame),
		Errors: make(map[string]error),
	}
}

func (m *FrameDecoder) DecodeFrames(path string) ([]ports.AnimationFrame, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, path)
	m.mu.Unlock()

	if m.DecodeFramesFunc != nil {
		return m.DecodeFramesFunc(path)
	}
	if err, ok := m.Errors[path]; ok {
		return nil, err
	}
	if frames, ok := m.Frames[path]; ok {
		return frames, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

var _ ports.FrameDecoder = (*FrameDecoder)(nil)
