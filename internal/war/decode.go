package war

import (
	"fmt"
	"log"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

const defaultHealth = 1_000_000

// Decoder превращает сырой JSON (structpb.Value) в записи схем. Связей между
// сущностями он не строит — этим занимается Resolve.
type Decoder struct {
	tables *Tables
	now    func() time.Time
}

func NewDecoder(t *Tables) *Decoder {
	if t == nil {
		t = DefaultTables()
	}
	return &Decoder{tables: t, now: time.Now}
}

// Decode выбирает декодер по имени схемы. Результат — указатель на запись
// (*WarStatus, *WarInfo, ...).
func (d *Decoder) Decode(schema Schema, v *structpb.Value) (any, error) {
	switch schema {
	case SchemaWarStatus:
		return d.WarStatus(v)
	case SchemaWarInfo:
		return d.WarInfo(v)
	case SchemaNewsFeed:
		return d.NewsFeed(v)
	case SchemaMajorOrders:
		return d.MajorOrders(v)
	case SchemaWarTime:
		return d.WarTime(v)
	case SchemaWarStats:
		return d.WarStats(v)
	case SchemaLeaderboard:
		return d.Leaderboard(v)
	case SchemaGameClientConfiguration:
		return d.GameClientConfiguration(v)
	}
	return nil, fmt.Errorf("war: unknown schema %q", schema)
}

func (d *Decoder) WarStatus(v *structpb.Value) (*WarStatus, error) {
	o, err := requireObject(SchemaWarStatus, v)
	if err != nil {
		return nil, err
	}
	ws := &WarStatus{
		WarID:                       o.Int("warId", 0),
		ElapsedTime:                 o.Int("time", 0),
		ImpactMultiplier:            o.Float("impactMultiplier", 0),
		StoryBeatID32:               o.Int("storyBeatId32", 0),
		CommunityTargets:            len(o.List("communityTargets")),
		PlanetActiveEffects:         len(o.List("planetActiveEffects")),
		ActiveElectionPolicyEffects: len(o.List("activeElectionPolicyEffects")),
	}
	ws.StartTime = d.now().Add(-time.Duration(ws.ElapsedTime) * time.Second)

	for _, p := range o.Objects("planetStatus") {
		ws.PlanetStatus = append(ws.PlanetStatus, decodePlanetStatus(p))
	}
	for _, p := range o.Objects("planetAttacks") {
		ws.PlanetAttacks = append(ws.PlanetAttacks, PlanetAttack{
			Source: p.Index("source", 0),
			Target: p.Index("target", 260),
		})
	}
	for _, p := range o.Objects("campaigns") {
		raw := p.Index("type", 0)
		ws.Campaigns = append(ws.Campaigns, Campaign{
			ID:          p.Int("id", 0),
			PlanetIndex: p.Index("planetIndex", 0),
			RawType:     raw,
			Type:        campaignTypeName(raw),
			Count:       p.Int("count", 0),
		})
	}
	for _, p := range o.Objects("jointOperations") {
		ws.JointOperations = append(ws.JointOperations, JointOperation{
			ID:          p.Int("id", 0),
			PlanetIndex: p.Index("planetIndex", 0),
			HQNodeIndex: p.Int("hqNodeIndex", 0),
		})
	}
	for _, p := range o.Objects("planetEvents") {
		raw := p.Index("eventType", 0)
		ws.PlanetEvents = append(ws.PlanetEvents, PlanetEvent{
			ID:               p.Int("id", 0),
			PlanetIndex:      p.Index("planetIndex", 0),
			RawType:          raw,
			Type:             typeName(planetEventTypes, raw, "Event Type"),
			Faction:          p.Index("race", 0),
			Health:           p.Int("health", defaultHealth),
			MaxHealth:        p.Int("maxHealth", defaultHealth),
			StartTime:        p.Int("startTime", 0),
			ExpireTime:       p.Int("expireTime", 0),
			CampaignID:       p.Int("campaignId", 0),
			JointOperationID: p.Ints("jointOperationIds"),
		})
	}
	for _, p := range o.Objects("globalEvents") {
		ws.GlobalEvents = append(ws.GlobalEvents, decodeGlobalEvent(p))
	}
	return ws, nil
}

func decodePlanetStatus(p obj) PlanetStatus {
	regen := p.Float("regenPerSecond", 0)
	return PlanetStatus{
		PlanetIndex:    p.Index("index", 0),
		Owner:          p.Index("owner", 0),
		Health:         p.Int("health", defaultHealth),
		RegenPerSecond: regen,
		RegenPerMinute: regen * 60,
		RegenPerHour:   regen * 3600,
		Players:        p.Int("players", 0),
	}
}

func campaignTypeName(raw int) string {
	if raw == campaignTypeLiberation {
		return "Liberation"
	}
	return typeName(campaignTypes, raw, "Campaign Type")
}

func decodeGlobalEvent(p obj) GlobalEvent {
	flag := p.Index("flag", 0)
	// в API ключ действительно с опечаткой
	effects := p.Ints("efffectIds")
	if !p.Has("efffectIds") {
		effects = p.Ints("effectIds")
	}
	return GlobalEvent{
		ID:             p.Int("eventId", 0),
		ID32:           p.Int("id32", 0),
		PortraitID32:   p.Int("portraitId32", 0),
		Title:          p.String("title", "EVENT"),
		TitleID32:      p.Int("titleId32", 0),
		Message:        p.String("message", ""),
		MessageID32:    p.Int("messageId32", 0),
		Faction:        p.Index("race", 0),
		RawFlag:        flag,
		Flag:           typeName(globalEventFlags, flag, "Flag"),
		AssignmentID32: p.Int("assignmentId32", 0),
		Effects:        effects,
		Planets:        p.Indices("planetIndices"),
	}
}

func (d *Decoder) WarInfo(v *structpb.Value) (*WarInfo, error) {
	o, err := requireObject(SchemaWarInfo, v)
	if err != nil {
		return nil, err
	}
	now := d.now().Unix()
	wi := &WarInfo{
		WarID:                  o.Int("warId", 0),
		StartDate:              time.Unix(o.Int("startDate", now), 0),
		EndDate:                time.Unix(o.Int("endDate", now), 0),
		MinimumClientVersion:   o.String("minimumClientVersion", "0.0.1"),
		Capitals:               len(o.List("capitals")),
		PlanetPermanentEffects: len(o.List("planetPermanentEffects")),
	}
	for _, p := range o.Objects("planetInfos") {
		index := p.Index("index", 0)
		pos := p.Object("position")
		wi.Planets = append(wi.Planets, Planet{
			Index:          index,
			Name:           d.tables.PlanetName(index),
			SettingsHash:   p.Int("settingsHash", 0),
			Position:       Position{X: pos.Float("x", 0), Y: pos.Float("y", 0)},
			Waypoints:      p.Indices("waypoints"),
			RawSector:      p.Index("sector", 0),
			MaxHealth:      p.Int("maxHealth", defaultHealth),
			Disabled:       p.Bool("disabled", false),
			InitialFaction: p.Index("initialOwner", 0),
		})
	}
	for _, hw := range o.Objects("homeWorlds") {
		wi.HomeWorlds = append(wi.HomeWorlds, HomeWorld{
			Faction: hw.Index("race", 0),
			Planets: hw.Indices("planetIndices"),
		})
	}
	return wi, nil
}

func (d *Decoder) NewsFeed(v *structpb.Value) (*NewsFeed, error) {
	items, err := requireList(SchemaNewsFeed, v)
	if err != nil {
		return nil, err
	}
	nf := &NewsFeed{}
	for _, p := range objectsOf(items) {
		raw := p.Index("type", 0)
		nf.Posts = append(nf.Posts, NewsPost{
			ID:        p.Int("id", 0),
			Published: p.Int("published", 0),
			RawType:   raw,
			Type:      typeName(newsPostTypes, raw, "News Type"),
			TagIDs:    p.Ints("tagIds"),
			Message:   p.String("message", "SOMETHING HAPPENED\nThe message was lost, however!"),
		})
	}
	return nf, nil
}

func (d *Decoder) MajorOrders(v *structpb.Value) (*MajorOrders, error) {
	items, err := requireList(SchemaMajorOrders, v)
	if err != nil {
		return nil, err
	}
	mo := &MajorOrders{}
	for _, p := range objectsOf(items) {
		mo.Orders = append(mo.Orders, d.majorOrder(p))
	}
	return mo, nil
}

func (d *Decoder) majorOrder(p obj) MajorOrder {
	setting := p.Object("setting")
	progress := p.Ints("progress")
	rawType := setting.Index("type", 0)

	o := MajorOrder{
		ID:        p.Int("id32", 0),
		ExpiresIn: p.Int("expiresIn", 0),
		RawType:   rawType,
		Type:      typeName(majorOrderTypes, rawType, "Order Type"),
		Title:     setting.String("overrideTitle", "MAJOR ORDER"),
		Message:   setting.String("overrideBrief", "There is an ongoing major order."),
		TaskTitle: setting.String("taskDescription", "Spread Democracy."),
		Reward:    decodeReward(setting.Object("reward")),
		Flags:     setting.Int("flags", 0),
	}
	o.ExpiresAt = d.now().Add(time.Duration(o.ExpiresIn) * time.Second)

	var cur, total int64
	for i, t := range setting.Objects("tasks") {
		task := decodeTask(t)
		// progress[i] относится к tasks[i]: связь только по позиции
		if i < len(progress) {
			task.Current = progress[i]
		}
		if task.TotalCount > 0 {
			task.Progress = float64(task.Current) / float64(task.TotalCount)
		}
		if task.Misaligned {
			log.Printf("[hd2] major order %d task %d: values/valueTypes length mismatch", o.ID, i)
		}
		total += task.TotalCount
		o.Tasks = append(o.Tasks, task)
	}
	for _, n := range progress {
		cur += n
	}
	if total > 0 {
		o.Progress = float64(cur) / float64(total)
	}
	return o
}

func decodeTask(p obj) MajorOrderTask {
	raw := p.Index("type", 0)
	t := MajorOrderTask{
		RawType:    raw,
		Type:       typeName(majorOrderTaskTypes, raw, "Task Type"),
		TotalCount: 1,
		Unknowns:   map[int]int64{},
	}
	values := p.Ints("values")
	types := p.Indices("valueTypes")
	t.Misaligned = len(values) != len(types)

	n := min(len(values), len(types))
	for i := 0; i < n; i++ {
		value := values[i]
		switch types[i] {
		case taskValueTargetFaction:
			t.TargetFaction = int(value)
		case taskValueTotalCount:
			t.TotalCount = value
		case taskValueLiberationNeeded:
			t.LiberationNeeded = value != 0
		case taskValueTargetPlanet:
			t.TargetPlanet = int(value)
			t.HasTargetPlanet = true
		default:
			t.Unknowns[types[i]] = value
		}
	}
	return t
}

func decodeReward(p obj) MajorOrderReward {
	raw := p.Index("type", 0)
	flag := p.Index("flags", 0)
	return MajorOrderReward{
		RawType: raw,
		Type:    typeName(majorOrderRewards, raw, "Reward Type"),
		ID:      p.Int("id32", 0),
		Amount:  p.Int("amount", 0),
		RawFlag: flag,
		Flags:   typeName(majorOrderRewardFlag, flag, "Flag"),
	}
}

// WarTime принимает склейку двух ответов: {"WarTime": {...}, "TimeSinceStart": {...}}.
func (d *Decoder) WarTime(v *structpb.Value) (*WarTime, error) {
	o, err := requireObject(SchemaWarTime, v)
	if err != nil {
		return nil, err
	}
	return &WarTime{
		ElapsedWarTime: o.Object("WarTime").Int("time", 0),
		TimeSinceStart: o.Object("TimeSinceStart").Int("secondsSinceStart", 0),
	}, nil
}

func (d *Decoder) WarStats(v *structpb.Value) (*WarStats, error) {
	o, err := requireObject(SchemaWarStats, v)
	if err != nil {
		return nil, err
	}
	ws := &WarStats{Galaxy: decodeStats(o.Object("galaxy_stats"))}
	// встречаются оба варианта ключа
	for _, p := range o.Objects("planets_stats") {
		ws.Planets = append(ws.Planets, decodePlanetStats(p))
	}
	for _, p := range o.Objects("planet_stats") {
		ws.Planets = append(ws.Planets, decodePlanetStats(p))
	}
	return ws, nil
}

func decodePlanetStats(p obj) PlanetStats {
	return PlanetStats{BaseStats: decodeStats(p), PlanetIndex: p.Index("planetIndex", 0)}
}

// EmptyPlanetStats — статистика-заглушка для планет без данных.
func EmptyPlanetStats(planet int) PlanetStats {
	return PlanetStats{BaseStats: decodeStats(obj{}), PlanetIndex: planet}
}

func decodeStats(p obj) BaseStats {
	s := BaseStats{
		MissionsWon:        p.Int("missionsWon", 1),
		MissionsLost:       p.Int("missionsLost", 0),
		MissionTimePlayed:  p.Int("missionTime", 0),
		MissionSuccessRate: p.Int("missionSuccessRate", 0),
		TerminidKills:      p.Int("bugKills", 0),
		AutomatonKills:     p.Int("automatonKills", 0),
		IlluminateKills:    p.Int("illuminateKills", 0),
		ShotsFired:         p.Int("bulletsFired", 0),
		ShotsHit:           p.Int("bulletsHit", 0),
		RawAccuracy:        p.Int("accurracy", 0),
		TimePlayed:         p.Int("timePlayed", 0),
		Deaths:             p.Int("deaths", 0),
		FriendlyKills:      p.Int("friendlies", 0),
		Revives:            p.Int("revives", 0),
	}
	s.TotalMissions = s.MissionsWon + s.MissionsLost
	s.SuccessRate = ratio(s.MissionsWon, s.TotalMissions)
	s.Accuracy = ratio(s.ShotsHit, s.ShotsFired)
	s.MissionTimeShare = ratio(s.MissionTimePlayed, s.TimePlayed)
	s.FriendlyFireRate = ratio(s.FriendlyKills, s.Deaths)
	return s
}

func ratio(a, b int64) float64 {
	if b <= 0 {
		b = 1
	}
	return float64(a) / float64(b)
}

func (d *Decoder) Leaderboard(v *structpb.Value) (*Leaderboard, error) {
	o, err := requireObject(SchemaLeaderboard, v)
	if err != nil {
		return nil, err
	}
	lb := &Leaderboard{
		PageNumber:   o.Int("pageNumber", 0),
		PageSize:     o.Int("pageSize", 10),
		TotalRecords: o.Int("totalRecords", 0),
	}
	for _, e := range o.Objects("entries") {
		rank := e.Int("rank", 0)
		lb.Entries = append(lb.Entries, LeaderboardEntry{
			Rank:       rank,
			Ranking:    Ordinal(rank),
			Experience: e.Int("experience", 0),
			Banner:     e.Int("banner", 0),
			Name:       e.String("name", "Unknown"),
			IsSelf:     e.Bool("isSelf", false),
			Score:      e.Int("score", 0),
		})
	}
	return lb, nil
}

// Ordinal: 1 -> "1st", 12 -> "12th", 23 -> "23rd".
func Ordinal(n int64) string {
	a := n
	if a < 0 {
		a = -a
	}
	suffix := "th"
	if a%100 < 11 || a%100 > 13 {
		switch a % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func (d *Decoder) GameClientConfiguration(v *structpb.Value) (*GameClientConfiguration, error) {
	o, err := requireObject(SchemaGameClientConfiguration, v)
	if err != nil {
		return nil, err
	}
	gc := &GameClientConfiguration{Matchmaking: map[string][]MatchmakingValue{}}
	for _, p := range o.Objects("pollingConfiguration") {
		gc.Polling = append(gc.Polling, PollingConfiguration{
			ID32:     p.Int("id32", 0),
			Interval: p.Int("interval", 60),
		})
	}
	for _, p := range o.Objects("featureConfiguration") {
		gc.Features = append(gc.Features, FeatureConfiguration{
			ID32:    p.Int("id32", 0),
			Enabled: p.Bool("enabled", true),
		})
	}
	// matchmakingConfiguration: {имя атрибута: [{weight, value}, ...]}
	for name, raw := range o.Object("matchmakingConfiguration").s.GetFields() {
		var vals []MatchmakingValue
		for _, mv := range objectsOf(raw.GetListValue().GetValues()) {
			vals = append(vals, MatchmakingValue{
				Weight: mv.Int("weight", 1),
				Value:  mv.Int("value", 0),
			})
		}
		gc.Matchmaking[name] = vals
	}
	return gc, nil
}
