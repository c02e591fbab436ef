package objectstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryFolder struct {
	id       string
	name     string
	parentID string
}

type memoryFile struct {
	file     File
	folderID string
	content  []byte
}

// Memory is an in-process Store for tests and local development.
type Memory struct {
	mu      sync.Mutex
	folders map[string]memoryFolder
	files   map[string]memoryFile
}

func NewMemory() *Memory {
	return &Memory{
		folders: make(map[string]memoryFolder),
		files:   make(map[string]memoryFile),
	}
}

func (m *Memory) FindOrCreateFolder(_ context.Context, name, parentID string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.folders {
		if f.name == name && f.parentID == parentID {
			return f.id, m.folderURL(f.id), nil
		}
	}
	id := "FLD-" + uuid.NewString()[:8]
	m.folders[id] = memoryFolder{id: id, name: name, parentID: parentID}
	return id, m.folderURL(id), nil
}

func (m *Memory) Upload(_ context.Context, content []byte, name, folderID, mimeType string) (*File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.folders[folderID]; !ok {
		return nil, ErrFileNotFound
	}
	id := "FILE-" + uuid.NewString()[:8]
	file := File{
		ID:        id,
		Name:      name,
		URL:       fmt.Sprintf("memory://file/%s", id),
		MimeType:  mimeType,
		Size:      int64(len(content)),
		CreatedAt: time.Now(),
	}
	stored := make([]byte, len(content))
	copy(stored, content)
	m.files[id] = memoryFile{file: file, folderID: folderID, content: stored}
	return &file, nil
}

func (m *Memory) List(_ context.Context, folderID string) ([]File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.folders[folderID]; !ok {
		return nil, ErrFileNotFound
	}
	var files []File
	for _, f := range m.files {
		if f.folderID == folderID {
			files = append(files, f.file)
		}
	}
	// newest first, like the Drive listing the UI shows
	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

func (m *Memory) Delete(_ context.Context, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[fileID]; !ok {
		return ErrFileNotFound
	}
	delete(m.files, fileID)
	return nil
}

func (m *Memory) folderURL(id string) string {
	return fmt.Sprintf("memory://folder/%s", id)
}
