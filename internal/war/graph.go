package war

import (
	"sort"
	"time"
)

// Graph — результат одного прохода резолвера. Связи хранятся индексами
// (id планет, фракций, имена секторов); сами сущности лежат в map-ах графа.
// После публикации в Cache граф не меняется: следующий проход строит новый.
type Graph struct {
	BuiltAt time.Time
	WarID   int64

	Planets  map[int]*PlanetView
	Factions map[int]*FactionView
	Sectors  map[string]*SectorView

	// Contested — псевдо-фракции оспариваемых секторов, по одной на сектор
	Contested  []*ContestedFaction
	HomeWorlds []HomeWorldGroup

	Statuses        map[int]*PlanetStatus
	Attacks         []PlanetAttack
	Campaigns       []*CampaignView
	JointOperations []*JointOperationView
	PlanetEvents    []*PlanetEventView
	GlobalEvents    []*GlobalEventView
	PlanetStats     map[int]*PlanetStats
	Orders          []*MajorOrderView

	planetOrder []int
	sectorOrder []string
}

type PlanetView struct {
	Planet

	WaypointPlanets []int
	Sector          string
	Playable        bool
	// индексы в Graph.Attacks
	AttacksTo   []int
	AttacksFrom []int

	InvolvedCampaigns       []int64
	InvolvedJointOperations []int64
	Events                  []int64
	InvolvedGlobalEvents    []int64
	// -1 — не домашний мир
	HomeWorldOf int

	// поля статуса, продублированные на планету
	CurrentFaction int
	CurrentHealth  int64
	RegenPerSecond float64
	RegenPerHour   float64
	Players        int64
	Liberation     float64
}

func (p *PlanetView) IsHomeWorld() bool { return p.HomeWorldOf >= 0 }

type FactionView struct {
	FactionDef
	CurrentPlanets []int
	InitialPlanets []int
	HomeWorlds     []int
	Sectors        []string
}

// ContestedFaction — псевдо-фракция для сектора, где планеты держат разные фракции.
type ContestedFaction struct {
	FactionDef
	Sector     string
	Contesters []int
	Planets    []int
}

type SectorView struct {
	SectorDef
	Members []int
	// отсортированные различные id фракций-владельцев планет сектора
	ControllingFactions []int
	// Faction валиден, если Contested == nil
	Faction   int
	Contested *ContestedFaction
}

type HomeWorldGroup struct {
	Faction int
	Planets []int
}

type CampaignView struct {
	Campaign
	Planet int
}

type JointOperationView struct {
	JointOperation
	Planet int
}

type PlanetEventView struct {
	PlanetEvent
	Planet          int
	FactionID       int
	Campaign        int64
	JointOperations []int64
}

type GlobalEventView struct {
	GlobalEvent
	PlanetIDs []int
	SectorIDs []string
	FactionID int
}

type MajorOrderView struct {
	MajorOrder
}

// ========================= lookups =========================

func (g *Graph) Planet(id int) (*PlanetView, bool) {
	p, ok := g.Planets[id]
	return p, ok
}

func (g *Graph) PlanetByName(name string) (*PlanetView, bool) {
	for _, id := range g.planetOrder {
		if p := g.Planets[id]; p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// PlanetList — планеты в порядке WarInfo.
func (g *Graph) PlanetList() []*PlanetView {
	out := make([]*PlanetView, 0, len(g.planetOrder))
	for _, id := range g.planetOrder {
		out = append(out, g.Planets[id])
	}
	return out
}

func (g *Graph) PlanetNames() []string {
	out := make([]string, 0, len(g.planetOrder))
	for _, id := range g.planetOrder {
		out = append(out, g.Planets[id].Name)
	}
	return out
}

func (g *Graph) Faction(id int) (*FactionView, bool) {
	f, ok := g.Factions[id]
	return f, ok
}

func (g *Graph) FactionList() []*FactionView {
	ids := make([]int, 0, len(g.Factions))
	for id := range g.Factions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*FactionView, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.Factions[id])
	}
	return out
}

func (g *Graph) Sector(name string) (*SectorView, bool) {
	s, ok := g.Sectors[name]
	return s, ok
}

func (g *Graph) SectorList() []*SectorView {
	out := make([]*SectorView, 0, len(g.sectorOrder))
	for _, name := range g.sectorOrder {
		out = append(out, g.Sectors[name])
	}
	return out
}

func (g *Graph) Status(planet int) (*PlanetStatus, bool) {
	s, ok := g.Statuses[planet]
	return s, ok
}

// Stats — статистика планеты; для планет без данных резолвер кладёт заглушку.
func (g *Graph) Stats(planet int) *PlanetStats {
	if s, ok := g.PlanetStats[planet]; ok {
		return s
	}
	s := EmptyPlanetStats(planet)
	return &s
}

func (g *Graph) CampaignByID(id int64) (*CampaignView, bool) {
	for _, c := range g.Campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// GroupBySector: сектор -> фракция -> отсортированные имена планет.
func (g *Graph) GroupBySector() map[string]map[int][]string {
	out := make(map[string]map[int][]string, len(g.Sectors))
	for _, p := range g.PlanetList() {
		byFaction := out[p.Sector]
		if byFaction == nil {
			byFaction = map[int][]string{}
			out[p.Sector] = byFaction
		}
		byFaction[p.CurrentFaction] = append(byFaction[p.CurrentFaction], p.Name)
	}
	for _, byFaction := range out {
		for _, names := range byFaction {
			sort.Strings(names)
		}
	}
	return out
}
