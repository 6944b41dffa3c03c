package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inventory/backend/internal/domain/system"
)

// MemoryObjectStore keeps objects in memory. Used when storage is disabled in development and in tests.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
	now     func() time.Time
}

type memoryObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// NewMemoryObjectStore creates an empty store; baseURL prefixes presigned and public URLs
func NewMemoryObjectStore(baseURL string) *MemoryObjectStore {
	if baseURL == "" {
		baseURL = "http://storage.local"
	}
	return &MemoryObjectStore{
		objects: make(map[string]memoryObject),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func (m *MemoryObjectStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, contentType: contentType, lastModified: m.now()}
	m.mu.Unlock()
	return nil
}

func (m *MemoryObjectStore) List(_ context.Context, prefix string) ([]system.BackupObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var objects []system.BackupObject
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, system.BackupObject{
				Key:          key,
				Size:         int64(len(obj.data)),
				LastModified: obj.lastModified,
			})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

func (m *MemoryObjectStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the object body
func (m *MemoryObjectStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, false
	}
	return bytes.Clone(obj.data), true
}

// SetLastModified backdates an object, used to exercise retention
func (m *MemoryObjectStore) SetLastModified(key string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if obj, ok := m.objects[key]; ok {
		obj.lastModified = at
		m.objects[key] = obj
	}
}

func (m *MemoryObjectStore) PresignUpload(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiry
	}
	expiresAt := m.now().Add(expiresIn)
	return m.baseURL + "/upload/" + key + "?expires=" + expiresAt.UTC().Format(time.RFC3339), expiresAt, nil
}

func (m *MemoryObjectStore) PublicURL(key string) string {
	return m.baseURL + "/" + strings.TrimLeft(key, "/")
}

var _ system.BackupStore = (*MemoryObjectStore)(nil)
