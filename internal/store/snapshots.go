package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrNoSnapshot = errors.New("store: no snapshot")

// SnapshotStore — по одному JSON-файлу на схему: {dir}/{Schema}.json.
// Пишется сырой payload, тот же, что пришёл из API.
type SnapshotStore struct {
	dir string
}

func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SnapshotStore{dir: dir}, nil
}

func (s *SnapshotStore) Dir() string { return s.dir }

func (s *SnapshotStore) path(schema string) string {
	return filepath.Join(s.dir, schema+".json")
}

func (s *SnapshotStore) Write(schema string, v *structpb.Value) error {
	b, err := protojson.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: %s: %w", schema, err)
	}
	return writeFileAtomic(s.path(schema), b)
}

// Read — последний payload схемы. Нет файла -> ErrNoSnapshot.
func (s *SnapshotStore) Read(schema string) (*structpb.Value, error) {
	b, err := os.ReadFile(s.path(schema))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, schema)
		}
		return nil, err
	}
	v := &structpb.Value{}
	if err := protojson.Unmarshal(b, v); err != nil {
		return nil, fmt.Errorf("store: %s: %w", schema, err)
	}
	return v, nil
}
