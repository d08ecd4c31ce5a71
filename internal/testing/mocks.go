package testing

import (
	"context"
	"sync"
)

// UploadedObject is one artifact captured by MockUploader
type UploadedObject struct {
	Key         string
	ContentType string
	Body        []byte
}

// MockUploader is a mock implementation of quotes.Uploader for testing
type MockUploader struct {
	mu      sync.RWMutex
	objects []UploadedObject
	err     error
	failAt  int
}

// NewMockUploader creates a new mock uploader
func NewMockUploader() *MockUploader {
	return &MockUploader{failAt: -1}
}

// SetError makes every upload fail with err
func (m *MockUploader) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	m.failAt = -1
}

// SetErrorAt makes only the n-th upload (0-based) fail with err
func (m *MockUploader) SetErrorAt(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	m.failAt = n
}

// Upload records the artifact
func (m *MockUploader) Upload(_ context.Context, key, contentType string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	attempt := len(m.objects)
	if m.err != nil && (m.failAt < 0 || m.failAt == attempt) {
		return m.err
	}
	m.objects = append(m.objects, UploadedObject{Key: key, ContentType: contentType, Body: append([]byte(nil), body...)})
	return nil
}

// Objects returns the uploaded artifacts in order
func (m *MockUploader) Objects() []UploadedObject {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]UploadedObject(nil), m.objects...)
}

// Object returns the artifact stored under key
func (m *MockUploader) Object(key string) (UploadedObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.objects {
		if o.Key == key {
			return o, true
		}
	}
	return UploadedObject{}, false
}
