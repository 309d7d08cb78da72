package auth

import (
	"context"
	"encoding/json"
	"os"
)

// Snapshot is the flat two-field credential cache. There is no schema
// versioning; the field names match snapshot files already in the
// wild.
type Snapshot struct {
	StudentID string `json:"studentId"`
	Token     string `json:"token"`
}

func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	var s Snapshot
	err = json.Unmarshal(data, &s)
	if err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

func WriteSnapshot(path string, s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// saveCurrent captures an authenticator's current credentials into a
// snapshot file; shared by every variant's Save.
func saveCurrent(a Authenticator, path string) error {
	ctx := context.Background()
	id, err := a.StudentID(ctx)
	if err != nil {
		return err
	}
	token, err := a.Token(ctx)
	if err != nil {
		return err
	}
	return WriteSnapshot(path, Snapshot{StudentID: id, Token: token})
}
