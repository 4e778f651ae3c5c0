package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestTimerStoreRoundTripsThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "next_iter.json")
	ts, err := OpenTimers(path)
	require.NoError(t, err)

	_, ok := ts.Get("helldivers.get_latest_300s")
	assert.False(t, ok)

	at := time.Unix(1_700_000_500, 250_000_000)
	require.NoError(t, ts.Set("helldivers.get_latest_300s", at))
	require.NoError(t, ts.Set("helldivers.get_latest_10s", at.Add(time.Second)))
	require.NoError(t, ts.Remove("helldivers.get_latest_10s"))
	require.NoError(t, ts.Remove("never.set"))

	reopened, err := OpenTimers(path)
	require.NoError(t, err)
	got, ok := reopened.Get("helldivers.get_latest_300s")
	require.True(t, ok)
	assert.WithinDuration(t, at, got, time.Microsecond)
	_, ok = reopened.Get("helldivers.get_latest_10s")
	assert.False(t, ok)
}

func TestTimerStoreSkipsNulls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "next_iter.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": null, "b": 1700000000.5}`), 0o644))

	ts, err := OpenTimers(path)
	require.NoError(t, err)
	_, ok := ts.Get("a")
	assert.False(t, ok)
	b, ok := ts.Get("b")
	require.True(t, ok)
	assert.Equal(t, time.Unix(1_700_000_000, 500_000_000), b)
}

func TestSnapshotStore(t *testing.T) {
	s, err := NewSnapshotStore(filepath.Join(t.TempDir(), "hd2_dumps"))
	require.NoError(t, err)

	_, err = s.Read("MajorOrders")
	assert.True(t, errors.Is(err, ErrNoSnapshot))

	v := &structpb.Value{}
	require.NoError(t, protojson.Unmarshal([]byte(`[{"id32": 7, "progress": [1, 2]}]`), v))
	require.NoError(t, s.Write("MajorOrders", v))

	got, err := s.Read("MajorOrders")
	require.NoError(t, err)
	assert.True(t, proto.Equal(v, got))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "MajorOrders.json", entries[0].Name())
}

func TestLockDirIsExclusive(t *testing.T) {
	dir := t.TempDir()
	l, err := LockDir(dir)
	require.NoError(t, err)

	_, err = LockDir(dir)
	assert.True(t, errors.Is(err, ErrLocked))

	require.NoError(t, l.Unlock())
	l2, err := LockDir(dir)
	require.NoError(t, err)
	require.NoError(t, l2.Unlock())
}
