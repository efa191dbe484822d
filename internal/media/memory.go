package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"
)

// Memory is an in-process media store for tests and local development
// without an Imgur client ID. Objects live in a map keyed by their
// generated delete identifier.
type Memory struct {
	mu      sync.Mutex
	nextID  int
	Objects map[string]string // publicID -> filename
}

func NewMemory() *Memory {
	return &Memory{Objects: make(map[string]string)}
}

func (m *Memory) Upload(_ context.Context, _ multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	publicID := fmt.Sprintf("%s/%d", folder, m.nextID)
	m.Objects[publicID] = header.Filename
	return &UploadResult{
		URL:      "memory://" + publicID,
		PublicID: publicID,
	}, nil
}

func (m *Memory) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, publicID)
	return nil
}

// Len reports how many objects are currently stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}
