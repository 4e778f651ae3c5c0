package war

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func twoPlanetTables() *Tables {
	return &Tables{
		Planets: map[int]string{0: "Alpha", 1: "Beta", 2: "Gamma"},
		Sectors: []SectorDef{
			{Index: 0, Name: "Shared", Planets: []int{0, 1}},
			{Index: 1, Name: "Empty", Planets: []int{2}},
		},
		Factions: factionDefs,
	}
}

const twoPlanetInfo = `{
	"warId": 801,
	"planetInfos": [
		{"index": 0, "maxHealth": 1000000, "initialOwner": 1},
		{"index": 1, "maxHealth": 1000000, "initialOwner": 2, "waypoints": [0]}
	],
	"homeWorlds": [{"race": 2, "planetIndices": [1]}]
}`

const twoPlanetStatus = `{
	"planetStatus": [
		{"index": 0, "owner": 1, "health": 500000},
		{"index": 1, "owner": 2, "health": 1000000}
	],
	"planetAttacks": [{"source": 1, "target": 0}],
	"campaigns": [{"id": 10, "planetIndex": 0}],
	"jointOperations": [{"id": 20, "planetIndex": 0}],
	"planetEvents": [{"id": 30, "planetIndex": 0, "race": 2, "campaignId": 10, "jointOperationIds": [20]}],
	"globalEvents": [{"eventId": 40, "race": 2, "planetIndices": [1]}]
}`

func newTestCache(t *testing.T, tables *Tables, now time.Time) *Cache {
	t.Helper()
	d := NewDecoder(tables)
	d.now = func() time.Time { return now }
	c := NewCache(d, 5*time.Minute)
	c.now = func() time.Time { return now }
	return c
}

func commit(t *testing.T, c *Cache, schema Schema, raw string) {
	t.Helper()
	require.NoError(t, c.Commit(map[Schema]*structpb.Value{schema: mustValue(t, raw)}))
}

func TestRemapEndToEnd(t *testing.T) {
	c := newTestCache(t, twoPlanetTables(), time.Unix(1_700_000_000, 0))
	commit(t, c, SchemaWarInfo, twoPlanetInfo)
	commit(t, c, SchemaWarStatus, twoPlanetStatus)

	assert.False(t, c.Ready())
	_, err := c.Require()
	assert.ErrorIs(t, err, ErrNotReady)

	require.NoError(t, c.Remap())
	assert.True(t, c.Ready())

	g, err := c.Require()
	require.NoError(t, err)

	p0, ok := g.Planet(0)
	require.True(t, ok)
	assert.Equal(t, 0.5, p0.Liberation)
	assert.Equal(t, 0.5, g.Statuses[0].Liberation)
	assert.Equal(t, "Shared", p0.Sector)
	assert.True(t, p0.Playable)
	assert.Equal(t, []int64{10}, p0.InvolvedCampaigns)
	assert.Equal(t, []int64{20}, p0.InvolvedJointOperations)
	assert.Equal(t, []int64{30}, p0.Events)
	assert.Equal(t, []int{0}, p0.AttacksFrom)
	assert.Empty(t, p0.AttacksTo)
	assert.False(t, p0.IsHomeWorld())

	p1, _ := g.Planet(1)
	assert.Equal(t, []int{0}, p1.WaypointPlanets)
	assert.Equal(t, 2, p1.HomeWorldOf)
	assert.False(t, p1.Playable)
	assert.Equal(t, []int64{40}, p1.InvolvedGlobalEvents)
	assert.Equal(t, 0.0, p1.Liberation)

	shared, ok := g.Sector("Shared")
	require.True(t, ok)
	require.NotNil(t, shared.Contested)
	assert.Equal(t, ContestedFactionID, shared.Faction)
	assert.Equal(t, []int{1, 2}, shared.Contested.Contesters)
	assert.Equal(t, []int{1, 2}, shared.ControllingFactions)
	require.Len(t, g.Contested, 1)
	assert.Same(t, shared.Contested, g.Contested[0])
}

func TestRemapEmptySectorFallsBackToUnknown(t *testing.T) {
	c := newTestCache(t, twoPlanetTables(), time.Now())
	commit(t, c, SchemaWarInfo, twoPlanetInfo)
	commit(t, c, SchemaWarStatus, twoPlanetStatus)
	require.NoError(t, c.Remap())

	empty, ok := c.Graph().Sector("Empty")
	require.True(t, ok)
	assert.Nil(t, empty.Contested)
	assert.Empty(t, empty.Members)
	assert.Equal(t, FactionUnknown, empty.Faction)
}

func TestRemapSingleOwnerSector(t *testing.T) {
	c := newTestCache(t, twoPlanetTables(), time.Now())
	commit(t, c, SchemaWarInfo, twoPlanetInfo)
	commit(t, c, SchemaWarStatus, `{"planetStatus": [{"index": 0, "owner": 2}, {"index": 1, "owner": 2}]}`)
	require.NoError(t, c.Remap())

	g := c.Graph()
	shared, _ := g.Sector("Shared")
	assert.Nil(t, shared.Contested)
	assert.Equal(t, FactionTerminid, shared.Faction)
	assert.Empty(t, g.Contested)

	terminids, _ := g.Faction(FactionTerminid)
	assert.Equal(t, []int{0, 1}, terminids.CurrentPlanets)
	assert.Equal(t, []int{1}, terminids.InitialPlanets)
	assert.Equal(t, []int{1}, terminids.HomeWorlds)
	assert.Equal(t, []string{"Shared"}, terminids.Sectors)
}

func TestRemapEventReferencesAreBound(t *testing.T) {
	c := newTestCache(t, twoPlanetTables(), time.Now())
	commit(t, c, SchemaWarInfo, twoPlanetInfo)
	commit(t, c, SchemaWarStatus, twoPlanetStatus)
	require.NoError(t, c.Remap())

	g := c.Graph()
	for _, e := range g.PlanetEvents {
		_, ok := g.Planet(e.Planet)
		assert.True(t, ok)
		_, ok = g.Faction(e.FactionID)
		assert.True(t, ok)
		_, ok = g.CampaignByID(e.Campaign)
		assert.True(t, ok)
	}
	require.Len(t, g.GlobalEvents, 1)
	assert.Equal(t, []string{"Shared"}, g.GlobalEvents[0].SectorIDs)
}

func TestRemapDanglingKeyKeepsPreviousGraph(t *testing.T) {
	c := newTestCache(t, twoPlanetTables(), time.Now())
	commit(t, c, SchemaWarInfo, twoPlanetInfo)
	commit(t, c, SchemaWarStatus, `{"planetStatus": [{"index": 0, "owner": 9}, {"index": 1, "owner": 2}]}`)

	err := c.Remap()
	var rerr *ResolveError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 1, rerr.Stage)
	assert.True(t, errors.Is(err, ErrUnresolved))
	assert.False(t, c.Ready())
	assert.Nil(t, c.Graph())

	commit(t, c, SchemaWarStatus, twoPlanetStatus)
	require.NoError(t, c.Remap())
	good := c.Graph()

	commit(t, c, SchemaWarStatus, `{"planetStatus": [{"index": 0, "owner": 1}, {"index": 1, "owner": 2}], "campaigns": [{"id": 1, "planetIndex": 77}]}`)
	require.Error(t, c.Remap())
	assert.True(t, c.Ready())
	assert.Same(t, good, c.Graph())
}

func TestRemapMissingStatusIsError(t *testing.T) {
	c := newTestCache(t, twoPlanetTables(), time.Now())
	commit(t, c, SchemaWarInfo, twoPlanetInfo)
	commit(t, c, SchemaWarStatus, `{"planetStatus": [{"index": 0, "owner": 1}]}`)

	err := c.Remap()
	var rerr *ResolveError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 6, rerr.Stage)
}

func TestRemapPlanetStatsFallback(t *testing.T) {
	c := newTestCache(t, twoPlanetTables(), time.Now())
	commit(t, c, SchemaWarInfo, twoPlanetInfo)
	commit(t, c, SchemaWarStatus, twoPlanetStatus)
	commit(t, c, SchemaWarStats, `{"planets_stats": [{"planetIndex": 1, "deaths": 7}]}`)
	require.NoError(t, c.Remap())

	g := c.Graph()
	assert.Equal(t, int64(7), g.Stats(1).Deaths)
	assert.Equal(t, 0, g.Stats(0).PlanetIndex)
	assert.Equal(t, int64(1), g.Stats(0).MissionsWon)
}

func TestRemapMajorOrderTargets(t *testing.T) {
	c := newTestCache(t, twoPlanetTables(), time.Now())
	commit(t, c, SchemaWarInfo, twoPlanetInfo)
	commit(t, c, SchemaWarStatus, twoPlanetStatus)
	commit(t, c, SchemaMajorOrders, `[{"id32": 1, "setting": {"tasks": [{"type": 11, "values": [2, 1], "valueTypes": [1, 12]}]}}]`)
	require.NoError(t, c.Remap())
	require.Len(t, c.Graph().Orders, 1)

	commit(t, c, SchemaMajorOrders, `[{"id32": 1, "setting": {"tasks": [{"type": 11, "values": [2, 55], "valueTypes": [1, 12]}]}}]`)
	err := c.Remap()
	var rerr *ResolveError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 10, rerr.Stage)
}

func TestRemapLiberationInvariantWithDefaultTables(t *testing.T) {
	c := newTestCache(t, nil, time.Now())
	commit(t, c, SchemaWarInfo, `{"planetInfos": [
		{"index": 0, "maxHealth": 1000000, "initialOwner": 1},
		{"index": 196, "maxHealth": 750000, "initialOwner": 3},
		{"index": 64, "maxHealth": 3, "initialOwner": 2}
	]}`)
	commit(t, c, SchemaWarStatus, `{"planetStatus": [
		{"index": 0, "owner": 1, "health": 1000000},
		{"index": 196, "owner": 3, "health": 123457},
		{"index": 64, "owner": 2, "health": 1}
	]}`)
	require.NoError(t, c.Remap())

	g := c.Graph()
	for _, p := range g.PlanetList() {
		st, ok := g.Status(p.Index)
		require.True(t, ok)
		assert.Equal(t, 1-float64(st.Health)/float64(p.MaxHealth), st.Liberation, p.Name)
	}
	creek, ok := g.PlanetByName("Malevelon Creek")
	require.True(t, ok)
	assert.Equal(t, "Severin", creek.Sector)
}
