package httpapi

import (
	"time"

	"github.com/EgorLis/Helldiversbot/internal/war"
)

type planetJSON struct {
	Index               int        `json:"index"`
	Name                string     `json:"name"`
	Sector              string     `json:"sector"`
	FactionID           int        `json:"faction_id"`
	Faction             string     `json:"faction"`
	Health              int64      `json:"health"`
	MaxHealth           int64      `json:"max_health"`
	Liberation          float64    `json:"liberation"`
	RegenPerHour        float64    `json:"regen_per_hour"`
	Players             int64      `json:"players"`
	Playable            bool       `json:"playable"`
	HomeWorld           bool       `json:"home_world"`
	Waypoints           []string   `json:"waypoints"`
	Rate                float64    `json:"rate"`
	NetRate             float64    `json:"net_rate"`
	RawRate             float64    `json:"raw_rate"`
	EstimatedLiberation *time.Time `json:"estimated_liberation,omitempty"`
}

type planetDetailJSON struct {
	planetJSON
	Campaigns       []int64         `json:"campaigns"`
	JointOperations []int64         `json:"joint_operations"`
	Events          []int64         `json:"events"`
	GlobalEvents    []int64         `json:"global_events"`
	AttackedFrom    []string        `json:"attacked_from"`
	Attacking       []string        `json:"attacking"`
	Stats           war.PlanetStats `json:"stats"`
}

type sectorJSON struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	FactionID  int      `json:"faction_id"`
	Faction    string   `json:"faction"`
	Planets    []string `json:"planets"`
	Contesters []string `json:"contesters,omitempty"`
}

type factionJSON struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	Emoji      string   `json:"emoji"`
	Planets    int      `json:"planets"`
	HomeWorlds []string `json:"home_worlds"`
	Sectors    []string `json:"sectors"`
}

type taskJSON struct {
	Type          string  `json:"type"`
	TargetFaction string  `json:"target_faction"`
	TargetPlanet  *string `json:"target_planet,omitempty"`
	Current       int64   `json:"current"`
	Total         int64   `json:"total"`
	Progress      float64 `json:"progress"`
	Misaligned    bool    `json:"misaligned,omitempty"`
}

type orderJSON struct {
	ID        int64      `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Task      string     `json:"task"`
	Reward    string     `json:"reward"`
	Progress  float64    `json:"progress"`
	ExpiresAt time.Time  `json:"expires_at"`
	Tasks     []taskJSON `json:"tasks"`
}

func factionName(g *war.Graph, id int) string {
	if f, ok := g.Faction(id); ok {
		return f.Name
	}
	if id == war.ContestedFactionID {
		return "Contested"
	}
	return "Unknown"
}

func planetNames(g *war.Graph, ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := g.Planet(id); ok {
			out = append(out, p.Name)
		}
	}
	return out
}

func newPlanetJSON(g *war.Graph, p *war.PlanetView) planetJSON {
	out := planetJSON{
		Index:        p.Index,
		Name:         p.Name,
		Sector:       p.Sector,
		FactionID:    p.CurrentFaction,
		Faction:      factionName(g, p.CurrentFaction),
		Health:       p.CurrentHealth,
		MaxHealth:    p.MaxHealth,
		Liberation:   p.Liberation,
		RegenPerHour: p.RegenPerHour,
		Players:      p.Players,
		Playable:     p.Playable,
		HomeWorld:    p.IsHomeWorld(),
		Waypoints:    planetNames(g, p.WaypointPlanets),
	}
	if st, ok := g.Status(p.Index); ok {
		out.Rate, out.NetRate, out.RawRate = st.Rate, st.NetRate, st.RawRate
		out.EstimatedLiberation = st.EstimatedLiberation
	}
	return out
}

func newPlanetDetailJSON(g *war.Graph, p *war.PlanetView) planetDetailJSON {
	d := planetDetailJSON{
		planetJSON:      newPlanetJSON(g, p),
		Campaigns:       p.InvolvedCampaigns,
		JointOperations: p.InvolvedJointOperations,
		Events:          p.Events,
		GlobalEvents:    p.InvolvedGlobalEvents,
		Stats:           *g.Stats(p.Index),
	}
	for _, i := range p.AttacksFrom {
		d.AttackedFrom = append(d.AttackedFrom, planetNames(g, []int{g.Attacks[i].Source})...)
	}
	for _, i := range p.AttacksTo {
		d.Attacking = append(d.Attacking, planetNames(g, []int{g.Attacks[i].Target})...)
	}
	return d
}

func newSectorJSON(g *war.Graph, s *war.SectorView) sectorJSON {
	out := sectorJSON{
		Index:     s.Index,
		Name:      s.Name,
		FactionID: s.Faction,
		Faction:   factionName(g, s.Faction),
		Planets:   planetNames(g, s.Members),
	}
	if s.Contested != nil {
		for _, id := range s.Contested.Contesters {
			out.Contesters = append(out.Contesters, factionName(g, id))
		}
	}
	return out
}

func newFactionJSON(g *war.Graph, f *war.FactionView) factionJSON {
	return factionJSON{
		Index:      f.Index,
		Name:       f.Name,
		Emoji:      f.Emoji,
		Planets:    len(f.CurrentPlanets),
		HomeWorlds: planetNames(g, f.HomeWorlds),
		Sectors:    f.Sectors,
	}
}

func newOrderJSON(g *war.Graph, o *war.MajorOrderView) orderJSON {
	out := orderJSON{
		ID:        o.ID,
		Type:      o.Type,
		Title:     o.Title,
		Message:   o.Message,
		Task:      o.TaskTitle,
		Reward:    o.Reward.Type,
		Progress:  o.Progress,
		ExpiresAt: o.ExpiresAt,
	}
	for _, t := range o.Tasks {
		tj := taskJSON{
			Type:          t.Type,
			TargetFaction: factionName(g, t.TargetFaction),
			Current:       t.Current,
			Total:         t.TotalCount,
			Progress:      t.Progress,
			Misaligned:    t.Misaligned,
		}
		if t.HasTargetPlanet {
			if p, ok := g.Planet(t.TargetPlanet); ok {
				name := p.Name
				tj.TargetPlanet = &name
			}
		}
		out.Tasks = append(out.Tasks, tj)
	}
	return out
}
