package fetcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Checkpoint records how far a fetch has progressed. It is written after every
// committed page, so a crash loses at most the in-flight page.
type Checkpoint struct {
	Cursor        int64  `json:"cursor"`
	FetchedCount  int64  `json:"fetched_count"`
	LastTimestamp string `json:"last_timestamp"`
}

type CheckpointStore struct {
	path string
}

func NewCheckpointStore(path string) *CheckpointStore {
	return &CheckpointStore{path: path}
}

// Load returns nil when no checkpoint exists, meaning a fresh run.
func (s *CheckpointStore) Load() (*Checkpoint, error) {
	body, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var checkpoint Checkpoint
	err = json.Unmarshal(body, &checkpoint)
	if err != nil {
		return nil, fmt.Errorf("corrupt checkpoint file %s: %w", s.path, err)
	}

	return &checkpoint, nil
}

// Save replaces the checkpoint atomically. A partially written file is never
// observable, the rename either happens or it does not.
func (s *CheckpointStore) Save(checkpoint Checkpoint) error {
	body, err := json.Marshal(checkpoint)
	if err != nil {
		return err
	}
	return atomicWriteFile(s.path, body)
}

func (s *CheckpointStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func atomicWriteFile(path string, body []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	_, err = tmp.Write(body)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	err = tmp.Sync()
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
