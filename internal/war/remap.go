package war

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"
)

// ErrUnresolved — внешний ключ не нашёл цели в текущем снимке.
var ErrUnresolved = errors.New("war: unresolved reference")

type ResolveError struct {
	Stage  int
	Entity string
	Key    string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("remap stage %d: %s: %s not found", e.Stage, e.Entity, e.Key)
}

func (e *ResolveError) Unwrap() error { return ErrUnresolved }

func unresolved(stage int, entity, format string, args ...any) error {
	return &ResolveError{Stage: stage, Entity: entity, Key: fmt.Sprintf(format, args...)}
}

// Snapshots — последние декодированные снимки, которые нужны резолверу.
// WarInfo и WarStatus обязательны, WarStats и MajorOrders могут отсутствовать.
type Snapshots struct {
	WarInfo     *WarInfo
	WarStatus   *WarStatus
	WarStats    *WarStats
	MajorOrders *MajorOrders
}

// Resolve строит граф связей за один проход. Порядок стадий фиксирован:
// каждая стадия читает только результаты предыдущих. Любой висячий ключ —
// ошибка всего прохода, частичный граф наружу не отдаётся.
func Resolve(in Snapshots, t *Tables, now time.Time) (*Graph, error) {
	if in.WarInfo == nil {
		return nil, unresolved(0, "snapshot", "WarInfo")
	}
	if in.WarStatus == nil {
		return nil, unresolved(0, "snapshot", "WarStatus")
	}
	if t == nil {
		t = DefaultTables()
	}
	r := &resolver{in: in, t: t, g: newGraph(in, t, now)}

	stages := []func() error{
		r.statuses,
		r.foldStatuses,
		r.attacksAndCampaigns,
		r.planetEvents,
		r.globalEvents,
		r.planets,
		r.homeWorlds,
		r.factions,
		r.sectors,
		r.statsAndOrders,
	}
	for _, stage := range stages {
		if err := stage(); err != nil {
			return nil, err
		}
	}
	return r.g, nil
}

type resolver struct {
	in Snapshots
	t  *Tables
	g  *Graph

	sectorOf map[int]string
}

func newGraph(in Snapshots, t *Tables, now time.Time) *Graph {
	g := &Graph{
		BuiltAt:     now,
		WarID:       in.WarInfo.WarID,
		Planets:     make(map[int]*PlanetView, len(in.WarInfo.Planets)),
		Factions:    make(map[int]*FactionView, len(t.Factions)),
		Sectors:     make(map[string]*SectorView, len(t.Sectors)),
		Statuses:    make(map[int]*PlanetStatus, len(in.WarStatus.PlanetStatus)),
		PlanetStats: map[int]*PlanetStats{},
	}
	for _, p := range in.WarInfo.Planets {
		if _, dup := g.Planets[p.Index]; !dup {
			g.planetOrder = append(g.planetOrder, p.Index)
		}
		g.Planets[p.Index] = &PlanetView{Planet: p, HomeWorldOf: -1}
	}
	for _, f := range t.Factions {
		g.Factions[f.Index] = &FactionView{FactionDef: f}
	}
	for _, s := range t.Sectors {
		g.Sectors[s.Name] = &SectorView{SectorDef: s}
		g.sectorOrder = append(g.sectorOrder, s.Name)
	}
	return g
}

func (r *resolver) hasPlanet(id int) bool {
	_, ok := r.g.Planets[id]
	return ok
}

func (r *resolver) hasFaction(id int) bool {
	_, ok := r.g.Factions[id]
	return ok
}

// 1. PlanetStatus -> фракция и планета
func (r *resolver) statuses() error {
	for _, ps := range r.in.WarStatus.PlanetStatus {
		if !r.hasFaction(ps.Owner) {
			return unresolved(1, "planet status", "faction %d (planet %d)", ps.Owner, ps.PlanetIndex)
		}
		if !r.hasPlanet(ps.PlanetIndex) {
			return unresolved(1, "planet status", "planet %d", ps.PlanetIndex)
		}
		st := ps
		r.g.Statuses[ps.PlanetIndex] = &st
	}
	return nil
}

// 2. скалярные поля статуса дублируются на планету
func (r *resolver) foldStatuses() error {
	for id, st := range r.g.Statuses {
		p := r.g.Planets[id]
		p.CurrentFaction = st.Owner
		p.CurrentHealth = st.Health
		p.RegenPerSecond = st.RegenPerSecond
		p.RegenPerHour = st.RegenPerHour
		p.Players = st.Players
	}
	return nil
}

// 3. атаки, кампании, совместные операции -> планеты
func (r *resolver) attacksAndCampaigns() error {
	for _, a := range r.in.WarStatus.PlanetAttacks {
		if !r.hasPlanet(a.Source) {
			return unresolved(3, "planet attack", "source planet %d", a.Source)
		}
		if !r.hasPlanet(a.Target) {
			return unresolved(3, "planet attack", "target planet %d", a.Target)
		}
		r.g.Attacks = append(r.g.Attacks, a)
	}
	for _, c := range r.in.WarStatus.Campaigns {
		if !r.hasPlanet(c.PlanetIndex) {
			return unresolved(3, "campaign", "planet %d (campaign %d)", c.PlanetIndex, c.ID)
		}
		r.g.Campaigns = append(r.g.Campaigns, &CampaignView{Campaign: c, Planet: c.PlanetIndex})
	}
	for _, j := range r.in.WarStatus.JointOperations {
		if !r.hasPlanet(j.PlanetIndex) {
			return unresolved(3, "joint operation", "planet %d (operation %d)", j.PlanetIndex, j.ID)
		}
		r.g.JointOperations = append(r.g.JointOperations, &JointOperationView{JointOperation: j, Planet: j.PlanetIndex})
	}
	return nil
}

func (r *resolver) hasJointOperation(id int64) bool {
	for _, j := range r.g.JointOperations {
		if j.ID == id {
			return true
		}
	}
	return false
}

// 4. PlanetEvent -> планета, фракция, кампания, совместные операции
func (r *resolver) planetEvents() error {
	for _, e := range r.in.WarStatus.PlanetEvents {
		if !r.hasPlanet(e.PlanetIndex) {
			return unresolved(4, "planet event", "planet %d (event %d)", e.PlanetIndex, e.ID)
		}
		if !r.hasFaction(e.Faction) {
			return unresolved(4, "planet event", "faction %d (event %d)", e.Faction, e.ID)
		}
		if _, ok := r.g.CampaignByID(e.CampaignID); !ok {
			return unresolved(4, "planet event", "campaign %d (event %d)", e.CampaignID, e.ID)
		}
		ops := make([]int64, 0, len(e.JointOperationID))
		for _, id := range e.JointOperationID {
			if !r.hasJointOperation(id) {
				return unresolved(4, "planet event", "joint operation %d (event %d)", id, e.ID)
			}
			ops = append(ops, id)
		}
		r.g.PlanetEvents = append(r.g.PlanetEvents, &PlanetEventView{
			PlanetEvent:     e,
			Planet:          e.PlanetIndex,
			FactionID:       e.Faction,
			Campaign:        e.CampaignID,
			JointOperations: ops,
		})
	}
	return nil
}

// 5. GlobalEvent -> планеты, секторы этих планет, фракция
func (r *resolver) globalEvents() error {
	for _, e := range r.in.WarStatus.GlobalEvents {
		for _, id := range e.Planets {
			if !r.hasPlanet(id) {
				return unresolved(5, "global event", "planet %d (event %d)", id, e.ID)
			}
		}
		if !r.hasFaction(e.Faction) {
			return unresolved(5, "global event", "faction %d (event %d)", e.Faction, e.ID)
		}
		var sectors []string
		for _, s := range r.t.Sectors {
			for _, id := range e.Planets {
				if slices.Contains(s.Planets, id) {
					sectors = append(sectors, s.Name)
					break
				}
			}
		}
		r.g.GlobalEvents = append(r.g.GlobalEvents, &GlobalEventView{
			GlobalEvent: e,
			PlanetIDs:   slices.Clone(e.Planets),
			SectorIDs:   sectors,
			FactionID:   e.Faction,
		})
	}
	return nil
}

// 6. все связи планеты + ликвидация
func (r *resolver) planets() error {
	r.sectorOf = make(map[int]string, len(r.g.Planets))
	for _, s := range r.t.Sectors {
		for _, id := range s.Planets {
			if _, seen := r.sectorOf[id]; !seen {
				r.sectorOf[id] = s.Name
			}
		}
	}
	for _, id := range r.g.planetOrder {
		p := r.g.Planets[id]

		for _, w := range p.Waypoints {
			if !r.hasPlanet(w) {
				return unresolved(6, "planet", "waypoint %d (planet %d)", w, id)
			}
		}
		p.WaypointPlanets = slices.Clone(p.Waypoints)

		sector, ok := r.sectorOf[id]
		if !ok {
			return unresolved(6, "planet", "sector of planet %d", id)
		}
		p.Sector = sector

		if !r.hasFaction(p.InitialFaction) {
			return unresolved(6, "planet", "initial faction %d (planet %d)", p.InitialFaction, id)
		}
		st, ok := r.g.Statuses[id]
		if !ok {
			return unresolved(6, "planet", "status of planet %d", id)
		}

		for i, a := range r.g.Attacks {
			if a.Source == id {
				p.AttacksTo = append(p.AttacksTo, i)
			}
			if a.Target == id {
				p.AttacksFrom = append(p.AttacksFrom, i)
			}
		}
		for _, c := range r.g.Campaigns {
			if c.Planet == id {
				p.InvolvedCampaigns = append(p.InvolvedCampaigns, c.ID)
			}
		}
		p.Playable = len(p.InvolvedCampaigns) > 0
		for _, j := range r.g.JointOperations {
			if j.Planet == id {
				p.InvolvedJointOperations = append(p.InvolvedJointOperations, j.ID)
			}
		}
		for _, e := range r.g.PlanetEvents {
			if e.Planet == id {
				p.Events = append(p.Events, e.ID)
			}
		}
		for _, e := range r.g.GlobalEvents {
			if slices.Contains(e.PlanetIDs, id) {
				p.InvolvedGlobalEvents = append(p.InvolvedGlobalEvents, e.ID)
			}
		}

		for _, hw := range r.in.WarInfo.HomeWorlds {
			if !slices.Contains(hw.Planets, id) {
				continue
			}
			if !r.hasFaction(hw.Faction) {
				return unresolved(6, "planet", "home world faction %d (planet %d)", hw.Faction, id)
			}
			p.HomeWorldOf = hw.Faction
			break
		}

		st.Liberation = Liberation(st.Health, p.MaxHealth)
		p.Liberation = st.Liberation
	}
	return nil
}

// Liberation = 1 - health/max. Для max <= 0 считаем 0.
func Liberation(health, max int64) float64 {
	if max <= 0 {
		return 0
	}
	return 1 - float64(health)/float64(max)
}

// 7. фракция -> домашние миры
func (r *resolver) homeWorlds() error {
	byFaction := map[int][]int{}
	for _, id := range r.g.planetOrder {
		if p := r.g.Planets[id]; p.IsHomeWorld() {
			byFaction[p.HomeWorldOf] = append(byFaction[p.HomeWorldOf], id)
		}
	}
	for _, f := range r.g.FactionList() {
		r.g.HomeWorlds = append(r.g.HomeWorlds, HomeWorldGroup{Faction: f.Index, Planets: byFaction[f.Index]})
		f.HomeWorlds = byFaction[f.Index]
	}
	return nil
}

// 8. фракция -> текущие/начальные планеты и секторы
func (r *resolver) factions() error {
	for _, f := range r.g.Factions {
		var current []int
		for _, id := range r.g.planetOrder {
			p := r.g.Planets[id]
			if p.CurrentFaction == f.Index {
				current = append(current, id)
			}
			if p.InitialFaction == f.Index {
				f.InitialPlanets = append(f.InitialPlanets, id)
			}
		}
		f.CurrentPlanets = current
		for _, s := range r.t.Sectors {
			for _, id := range current {
				if slices.Contains(s.Planets, id) {
					f.Sectors = append(f.Sectors, s.Name)
					break
				}
			}
		}
	}
	return nil
}

// 9. сектор -> планеты и владелец; несколько владельцев дают псевдо-фракцию
func (r *resolver) sectors() error {
	for _, name := range r.g.sectorOrder {
		s := r.g.Sectors[name]
		owners := map[int]struct{}{}
		for _, id := range s.Planets {
			p, ok := r.g.Planets[id]
			if !ok {
				continue
			}
			s.Members = append(s.Members, id)
			owners[p.CurrentFaction] = struct{}{}
		}
		for id := range owners {
			s.ControllingFactions = append(s.ControllingFactions, id)
		}
		sort.Ints(s.ControllingFactions)

		switch len(s.ControllingFactions) {
		case 0:
			// ни одной планеты в снимке — владелец неизвестен
			s.Faction = FactionUnknown
		case 1:
			s.Faction = s.ControllingFactions[0]
		default:
			c := &ContestedFaction{
				FactionDef: contestedDef,
				Sector:     name,
				Contesters: slices.Clone(s.ControllingFactions),
				Planets:    slices.Clone(s.Members),
			}
			s.Faction = ContestedFactionID
			s.Contested = c
			r.g.Contested = append(r.g.Contested, c)
		}
	}
	return nil
}

// 10. статистика планет и задачи приказов
func (r *resolver) statsAndOrders() error {
	if ws := r.in.WarStats; ws != nil {
		for _, st := range ws.Planets {
			if !r.hasPlanet(st.PlanetIndex) {
				return unresolved(10, "planet stats", "planet %d", st.PlanetIndex)
			}
			s := st
			r.g.PlanetStats[st.PlanetIndex] = &s
		}
	}
	for _, id := range r.g.planetOrder {
		if _, ok := r.g.PlanetStats[id]; !ok {
			s := EmptyPlanetStats(id)
			r.g.PlanetStats[id] = &s
		}
	}
	if mo := r.in.MajorOrders; mo != nil {
		for _, o := range mo.Orders {
			for i, task := range o.Tasks {
				if !r.hasFaction(task.TargetFaction) {
					return unresolved(10, "major order task", "faction %d (order %d, task %d)", task.TargetFaction, o.ID, i)
				}
				if task.HasTargetPlanet && !r.hasPlanet(task.TargetPlanet) {
					return unresolved(10, "major order task", "planet %d (order %d, task %d)", task.TargetPlanet, o.ID, i)
				}
			}
			r.g.Orders = append(r.g.Orders, &MajorOrderView{MajorOrder: o})
		}
	}
	return nil
}
