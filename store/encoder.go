package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CurrentSchemaVersion tags newly written snapshots. Decode rejects versions
// it does not know how to read.
const CurrentSchemaVersion = 1

// ErrSnapshotCorrupt is returned when a persisted snapshot cannot be decoded.
var ErrSnapshotCorrupt = errors.New("session snapshot corrupt")

// Snapshot is the persisted session record: the auth flag plus the identity
// payload exactly as the backend sent it. The store does not interpret the
// user document; the session manager owns its shape.
type Snapshot struct {
	SchemaVersion int             `json:"v"`
	Authenticated bool            `json:"authenticated"`
	User          json.RawMessage `json:"user,omitempty"`
}

// Encode serializes a snapshot, stamping the current schema version.
func Encode(snap *Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, ErrSnapshotCorrupt
	}
	out := *snap
	out.SchemaVersion = CurrentSchemaVersion
	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	return data, nil
}

// Decode parses a persisted snapshot.
func Decode(data []byte) (*Snapshot, error) {
	if len(data) == 0 {
		return nil, ErrSnapshotCorrupt
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if snap.SchemaVersion < 1 || snap.SchemaVersion > CurrentSchemaVersion {
		return nil, fmt.Errorf("%w: unknown schema version %d", ErrSnapshotCorrupt, snap.SchemaVersion)
	}
	return &snap, nil
}
