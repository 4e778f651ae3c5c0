package war

import "fmt"

// Идентификаторы фракций из API (поле "race"/"owner").
const (
	FactionUnknown    = 0
	FactionHuman      = 1
	FactionTerminid   = 2
	FactionAutomaton  = 3
	FactionIlluminate = 4
)

// ContestedFactionID — условный id псевдо-фракции "сектор оспаривается".
const ContestedFactionID = -1

type FactionDef struct {
	Index int
	Name  string
	Emoji string
}

type SectorDef struct {
	Index   int
	Name    string
	Planets []int
}

var factionDefs = []FactionDef{
	{Index: FactionUnknown, Name: "Unknown", Emoji: "❓"},
	{Index: FactionHuman, Name: "Human", Emoji: "<:superearth:1218539071669014538>"},
	{Index: FactionTerminid, Name: "Terminid", Emoji: "<:terminids:1218539026974380183>"},
	{Index: FactionAutomaton, Name: "Automaton", Emoji: "<:automatons:1218538972012085268>"},
	{Index: FactionIlluminate, Name: "Illuminate", Emoji: "🔺"},
}

var contestedDef = FactionDef{Index: ContestedFactionID, Name: "Contested", Emoji: "⚔️"}

// Коды типов. Неизвестный код не ошибка: см. typeName.
var (
	campaignTypes        = map[int]string{1: "Recon", 2: "Story"}
	planetEventTypes     = map[int]string{1: "Defense Campaign"}
	globalEventFlags     = map[int]string{}
	newsPostTypes        = map[int]string{}
	majorOrderTypes      = map[int]string{4: "Galactic War"}
	majorOrderTaskTypes  = map[int]string{3: "Eradication", 11: "Liberation", 12: "Defense", 13: "Control"}
	majorOrderRewards    = map[int]string{1: "Medals"}
	majorOrderRewardFlag = map[int]string{}
)

// типы значений в MajorOrderTask.values (сопоставляются с valueTypes по позиции)
const (
	taskValueTargetFaction    = 1
	taskValueTotalCount       = 3
	taskValueLiberationNeeded = 11
	taskValueTargetPlanet     = 12
)

// campaignTypeLiberation — тип 0: "Defense" для планет под контролем людей,
// иначе "Liberation".
const campaignTypeLiberation = 0

// Tables — набор справочников, с которыми работают декодер и резолвер.
// DefaultTables() отдаёт встроенные данные; в тестах можно собрать свои.
type Tables struct {
	Planets  map[int]string
	Sectors  []SectorDef
	Factions []FactionDef
}

func DefaultTables() *Tables {
	return &Tables{
		Planets:  planetNames,
		Sectors:  sectorDefs,
		Factions: factionDefs,
	}
}

// PlanetName возвращает имя планеты или "Planet {n}", если индекс не известен.
func (t *Tables) PlanetName(index int) string {
	if name, ok := t.Planets[index]; ok {
		return name
	}
	return fmt.Sprintf("Planet %d", index)
}

func (t *Tables) Faction(index int) (FactionDef, bool) {
	for _, f := range t.Factions {
		if f.Index == index {
			return f, true
		}
	}
	return FactionDef{}, false
}

func typeName(table map[int]string, raw int, placeholder string) string {
	if name, ok := table[raw]; ok {
		return name
	}
	return fmt.Sprintf("%s %d", placeholder, raw)
}
