package poller

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/EgorLis/Helldiversbot/internal/hd2api"
	"github.com/EgorLis/Helldiversbot/internal/store"
	"github.com/EgorLis/Helldiversbot/internal/war"
)

const testBase = "http://hd2.test"

type fakeAPI struct {
	mu       sync.Mutex
	warID    int64
	warIDErr error
	bodies   map[string]string
	calls    map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{warID: 801, bodies: map[string]string{}, calls: map[string]int{}}
}

func (f *fakeAPI) Fetch(_ context.Context, u string, _ map[string]string) (*structpb.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := strings.TrimPrefix(u, testBase)
	f.calls[path]++
	raw, ok := f.bodies[path]
	if !ok {
		return nil, &hd2api.StatusError{Code: 404, Reason: "Not Found"}
	}
	v := &structpb.Value{}
	if err := protojson.Unmarshal([]byte(raw), v); err != nil {
		return nil, err
	}
	return v, nil
}

func (f *fakeAPI) CurrentWarID(context.Context, *hd2api.Endpoints) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.warID, f.warIDErr
}

func (f *fakeAPI) set(path, body string) {
	f.mu.Lock()
	f.bodies[path] = body
	f.mu.Unlock()
}

func (f *fakeAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) callsTo(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

var testNow = time.Unix(1_700_000_000, 0)

type fixture struct {
	s      *Scheduler
	api    *fakeAPI
	cache  *war.Cache
	timers *store.TimerStore
	dumps  *store.SnapshotStore
	notes  []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	timers, err := store.OpenTimers(filepath.Join(dir, "next_iter.json"))
	require.NoError(t, err)
	dumps, err := store.NewSnapshotStore(filepath.Join(dir, "hd2_dumps"))
	require.NoError(t, err)

	f := &fixture{api: newFakeAPI(), cache: war.NewCache(nil, 5*time.Minute), timers: timers, dumps: dumps}
	f.s, err = New(Config{
		Cache:     f.cache,
		API:       f.api,
		Endpoints: hd2api.NewEndpoints(testBase, ""),
		Timers:    timers,
		Dumps:     dumps,
		Notify:    func(m string) { f.notes = append(f.notes, m) },
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return f
}

func mustValue(t *testing.T, raw string) *structpb.Value {
	t.Helper()
	v := &structpb.Value{}
	require.NoError(t, protojson.Unmarshal([]byte(raw), v))
	return v
}

func (f *fixture) serveSeason(id string) {
	f.api.set("/WarSeason/"+id+"/WarInfo", `{"warId": `+id+`, "planetInfos": [{"index": 0, "maxHealth": 1000000, "initialOwner": 1}]}`)
	f.api.set("/WarSeason/"+id+"/Status", `{"planetStatus": [{"index": 0, "owner": 1, "health": 1000000}]}`)
	f.api.set("/Stats/War/"+id+"/Summary", `{"galaxy_stats": {"missionsWon": 1}}`)
	f.api.set("/WarSeason/"+id+"/WarTime", `{"time": 10}`)
	f.api.set("/WarSeason/"+id+"/TimeSinceStart", `{"secondsSinceStart": 20}`)
	f.api.set("/NewsFeed/"+id, `[{"id": 1, "message": "news"}]`)
	f.api.set("/v2/Assignment/War/"+id, `[{"id32": 5}]`)
	f.api.set("/Leaderboard/HotF/v2/Player/"+id, `{"entries": []}`)
	f.api.set("/Configuration/GameClient", `{}`)
}

func TestRestartRecoveryRestoresDumpAndWaits(t *testing.T) {
	f := newFixture(t)
	tier := f.s.byName["300s"]

	require.NoError(t, f.timers.Set(tier.key, testNow.Add(500*time.Second)))
	require.NoError(t, f.dumps.Write(string(war.SchemaMajorOrders), mustValue(t, `[{"id32": 42, "setting": {"overrideTitle": "HOLD"}}]`)))

	slept := make(chan time.Duration, 1)
	f.s.sleep = func(ctx context.Context, d time.Duration) error {
		slept <- d
		<-ctx.Done()
		return ctx.Err()
	}
	f.s.markSeasonReady()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.s.runTier(ctx, tier)
		close(done)
	}()

	select {
	case d := <-slept:
		assert.Equal(t, 500*time.Second, d)
	case <-time.After(5 * time.Second):
		t.Fatal("tier never went to sleep")
	}

	mo := f.cache.MajorOrders()
	require.NotNil(t, mo)
	require.Len(t, mo.Orders, 1)
	assert.Equal(t, int64(42), mo.Orders[0].ID)
	assert.Equal(t, "HOLD", mo.Orders[0].Title)
	assert.Zero(t, f.api.totalCalls())
	assert.Equal(t, Scheduled, tier.State())
	assert.True(t, tier.isReady())

	cancel()
	<-done
	assert.Equal(t, Stopped, tier.State())
	assert.Zero(t, f.api.totalCalls())
}

func TestPastTimerFetchesImmediately(t *testing.T) {
	f := newFixture(t)
	f.serveSeason("801")
	f.s.endpoints.SetSeason(801)
	tier := f.s.byName["900s"]
	require.NoError(t, f.timers.Set(tier.key, testNow.Add(-time.Second)))

	ctx, cancel := context.WithCancel(context.Background())
	f.s.sleep = func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	}
	f.s.markSeasonReady()
	f.s.runTier(ctx, tier)

	assert.Equal(t, 1, f.api.callsTo("/Configuration/GameClient"))
	assert.NotNil(t, f.cache.GameClientConfiguration())
}

func TestBadPayloadIsNotCommitted(t *testing.T) {
	f := newFixture(t)
	f.serveSeason("801")
	f.s.endpoints.SetSeason(801)
	f.api.set("/Stats/War/801/Summary", `"503 Service Unavailable"`)

	tier := f.s.byName["10s"]
	err := f.s.iterate(context.Background(), tier)
	require.Error(t, err)
	assert.True(t, errors.Is(err, war.ErrPayloadShape))

	assert.Nil(t, f.cache.WarStats())
	assert.Nil(t, f.cache.WarStatus())
	_, err = f.dumps.Read(string(war.SchemaWarStatus))
	assert.True(t, errors.Is(err, store.ErrNoSnapshot))
	_, ok := f.timers.Get(tier.key)
	assert.False(t, ok)
	assert.False(t, tier.isReady())
}

func TestTransportErrorKeepsPreviousSnapshot(t *testing.T) {
	f := newFixture(t)
	f.serveSeason("801")
	f.s.endpoints.SetSeason(801)

	tier := f.s.byName["60s"]
	require.NoError(t, f.s.iterate(context.Background(), tier))
	before := f.cache.NewsFeed()
	require.NotNil(t, before)

	f.api.set("/NewsFeed/801", `not json`)
	assert.Error(t, f.s.iterate(context.Background(), tier))
	assert.Same(t, before, f.cache.NewsFeed())
}

func TestRemapWaitsForAllTiers(t *testing.T) {
	f := newFixture(t)
	f.serveSeason("801")
	ctx := context.Background()
	require.NoError(t, f.s.initSeason(ctx))

	require.NoError(t, f.s.iterate(ctx, f.s.byName["10s"]))
	assert.False(t, f.cache.Ready())

	for _, name := range []string{"900s", "300s", "60s"} {
		require.NoError(t, f.s.iterate(ctx, f.s.byName[name]), name)
	}
	assert.False(t, f.cache.Ready())

	require.NoError(t, f.s.iterate(ctx, f.s.byName["10s"]))
	assert.True(t, f.cache.Ready())
	assert.Contains(t, f.notes, "[remap] Helldivers 2 data is ready")

	wt := f.cache.WarTime()
	require.NotNil(t, wt)
	assert.Equal(t, int64(10), wt.ElapsedWarTime)
	assert.Equal(t, int64(20), wt.TimeSinceStart)

	for _, tier := range f.s.tiers {
		at, ok := f.timers.Get(tier.key)
		require.True(t, ok, tier.key)
		assert.Equal(t, testNow.Add(tier.every), at, tier.key)
	}
	for _, schema := range []war.Schema{war.SchemaWarInfo, war.SchemaWarTime, war.SchemaLeaderboard, war.SchemaGameClientConfiguration} {
		_, err := f.dumps.Read(string(schema))
		assert.NoError(t, err, schema)
	}
}

func TestSeasonChangeReconfiguresEndpoints(t *testing.T) {
	f := newFixture(t)
	f.serveSeason("801")
	f.serveSeason("802")
	ctx := context.Background()
	require.NoError(t, f.s.initSeason(ctx))

	require.NoError(t, f.s.iterate(ctx, f.s.byName["60s"]))
	assert.Equal(t, 1, f.api.callsTo("/WarSeason/801/WarInfo"))

	f.api.mu.Lock()
	f.api.warID = 802
	f.api.mu.Unlock()
	require.NoError(t, f.s.iterate(ctx, f.s.byName["60s"]))

	id, _ := f.cache.CurrentWarID()
	assert.Equal(t, int64(802), id)
	season, _ := f.s.endpoints.Season()
	assert.Equal(t, int64(802), season)
	assert.Equal(t, 1, f.api.callsTo("/WarSeason/802/WarInfo"))
	assert.Equal(t, int64(802), f.cache.WarInfo().WarID)
}

func TestBootstrapFallsBackToDefaultsAndDump(t *testing.T) {
	f := newFixture(t)
	f.api.warIDErr = errors.New("down")
	require.NoError(t, f.dumps.Write(string(war.SchemaWarInfo), mustValue(t, `{"warId": 801, "planetInfos": []}`)))

	require.NoError(t, f.s.bootstrap(context.Background()))
	select {
	case <-f.s.SeasonReady():
	default:
		t.Fatal("season gate is still closed")
	}

	season, ok := f.s.endpoints.Season()
	require.True(t, ok)
	assert.Equal(t, int64(hd2api.DefaultWarID), season)
	require.NotNil(t, f.cache.WarInfo())
	assert.True(t, f.s.warInfoStale.Load())
	require.NotEmpty(t, f.notes)

	// как только API ответит, устаревший WarInfo перечитывается
	f.api.mu.Lock()
	f.api.warIDErr = nil
	f.api.mu.Unlock()
	f.serveSeason("801")
	require.NoError(t, f.s.checkSeason(context.Background()))
	assert.False(t, f.s.warInfoStale.Load())
	assert.Equal(t, 2, f.api.callsTo("/WarSeason/801/WarInfo"))
}

func TestBootstrapRetriesWithBackoff(t *testing.T) {
	f := newFixture(t)
	var waits []time.Duration
	f.s.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		if len(waits) == 3 {
			f.serveSeason("801")
		}
		return nil
	}

	require.NoError(t, f.s.bootstrap(context.Background()))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, waits)
	assert.Len(t, f.notes, 3)
	assert.NotNil(t, f.cache.WarInfo())
}

func TestTierWaitsForHost(t *testing.T) {
	f := newFixture(t)
	host := make(chan struct{})
	f.s.hostReady = host
	f.s.markSeasonReady()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	tier := f.s.byName["10s"]
	go func() {
		f.s.runTier(ctx, tier)
		close(done)
	}()

	require.Eventually(t, func() bool { return tier.State() == Waiting }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, Stopped, tier.State())
	assert.Zero(t, f.api.totalCalls())
}

func TestStateNames(t *testing.T) {
	f := newFixture(t)
	states := f.s.States()
	assert.Len(t, states, 4)
	assert.Equal(t, Uninitialized, states["900s"])
	assert.Equal(t, "scheduled", Scheduled.String())
	assert.Equal(t, "helldivers.get_latest_10s", f.s.byName["10s"].key)
}
