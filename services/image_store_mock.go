package services

import (
	"io"
	"sync"

	"github.com/shoppy-store/shoppy-api/utils"
)

// MockImageStore is an in-memory ImageStore for testing. It records every
// save and delete and applies the same "_copy" collision cascade as the real
// backends.
type MockImageStore struct {
	mu      sync.Mutex
	files   map[string][]byte // "<dir>/<filename>" -> content
	Deleted []string          // keys passed to Delete, in call order

	// SaveError, when set, is returned by the next Save call
	SaveError error
}

// NewMockImageStore creates an empty mock image store
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{
		files: make(map[string][]byte),
	}
}

// Save stores the bytes in memory under the collision-resolved name
func (m *MockImageStore) Save(dir, filename string, r io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveError != nil {
		err := m.SaveError
		m.SaveError = nil
		return "", err
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	for {
		if _, taken := m.files[dir+"/"+filename]; !taken {
			break
		}
		filename = utils.CopyName(filename)
	}

	m.files[dir+"/"+filename] = content
	return filename, nil
}

// Delete removes the file if present and records the call
func (m *MockImageStore) Delete(dir, filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := dir + "/" + filename
	delete(m.files, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

// Exists reports whether the file was stored
func (m *MockImageStore) Exists(dir, filename string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.files[dir+"/"+filename]
	return ok, nil
}

// Stored returns the content saved under dir/filename, or nil
func (m *MockImageStore) Stored(dir, filename string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.files[dir+"/"+filename]
}

// Count returns the number of stored files
func (m *MockImageStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.files)
}
