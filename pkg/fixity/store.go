package fixity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const storeVersion = "1.0.0"

// Store is a JSON-file-backed map from file path to its recorded digest.
type Store struct {
	storePath string
	contents  storeContents
}

type storeContents struct {
	Version   string                  `json:"version"`
	UpdatedAt time.Time               `json:"updated_at"`
	Digests   map[string]DigestRecord `json:"digests"`
}

// LoadStore reads the digest store at storePath. A missing file yields an
// empty store; it is created on the first Save.
func LoadStore(storePath string) (*Store, error) {
	store := &Store{
		storePath: storePath,
		contents: storeContents{
			Version: storeVersion,
			Digests: make(map[string]DigestRecord),
		},
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read digest store %s: %w", storePath, err)
	}

	if err := json.Unmarshal(data, &store.contents); err != nil {
		return nil, fmt.Errorf("failed to parse digest store %s: %w", storePath, err)
	}
	if store.contents.Digests == nil {
		store.contents.Digests = make(map[string]DigestRecord)
	}

	return store, nil
}

// Save writes the store back to disk.
func (store *Store) Save() error {
	store.contents.UpdatedAt = time.Now()

	if dir := filepath.Dir(store.storePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create digest store directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(store.contents, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal digest store: %w", err)
	}

	if err := os.WriteFile(store.storePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write digest store %s: %w", store.storePath, err)
	}
	return nil
}

// Record adds or replaces the digest record for a path.
func (store *Store) Record(record DigestRecord) {
	store.contents.Digests[record.Path] = record
}

// Lookup returns the stored record for a path.
func (store *Store) Lookup(path string) (DigestRecord, bool) {
	record, found := store.contents.Digests[path]
	return record, found
}

// Len returns the number of stored records.
func (store *Store) Len() int {
	return len(store.contents.Digests)
}
