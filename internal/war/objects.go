package war

import "time"

// Schema — имя схемы ответа API. Совпадает с именем dump-файла.
type Schema string

const (
	SchemaWarStatus               Schema = "WarStatus"
	SchemaWarInfo                 Schema = "WarInfo"
	SchemaNewsFeed                Schema = "NewsFeed"
	SchemaMajorOrders             Schema = "MajorOrders"
	SchemaWarTime                 Schema = "WarTime"
	SchemaWarStats                Schema = "WarStats"
	SchemaLeaderboard             Schema = "Leaderboard"
	SchemaGameClientConfiguration Schema = "GameClientConfiguration"
)

// ========================= WarStatus =========================

type WarStatus struct {
	WarID            int64
	ElapsedTime      int64
	StartTime        time.Time // now - ElapsedTime, оценка
	ImpactMultiplier float64
	StoryBeatID32    int64

	PlanetStatus    []PlanetStatus
	PlanetAttacks   []PlanetAttack
	Campaigns       []Campaign
	JointOperations []JointOperation
	PlanetEvents    []PlanetEvent
	GlobalEvents    []GlobalEvent

	// пока не размечены в API, храним только количество
	CommunityTargets            int
	PlanetActiveEffects         int
	ActiveElectionPolicyEffects int
}

// PlanetStatus заменяется целиком каждые 10 секунд. Поля Liberation и *Rate
// пересчитываются на каждом проходе резолвера.
type PlanetStatus struct {
	PlanetIndex    int
	Owner          int
	Health         int64
	RegenPerSecond float64
	RegenPerMinute float64
	RegenPerHour   float64
	Players        int64

	Liberation float64
	Rate       float64
	NetRate    float64
	RawRate    float64
	// nil — оценки нет (прогресс стоит или откатывается)
	EstimatedLiberation *time.Time
}

type PlanetAttack struct {
	Source int
	Target int
}

type Campaign struct {
	ID          int64
	PlanetIndex int
	RawType     int
	Type        string
	Count       int64
}

// TypeFor — тип 0 зависит от текущего владельца планеты.
func (c Campaign) TypeFor(humanControlled bool) string {
	if c.RawType != campaignTypeLiberation {
		return c.Type
	}
	if humanControlled {
		return "Defense"
	}
	return "Liberation"
}

type JointOperation struct {
	ID          int64
	PlanetIndex int
	HQNodeIndex int64
}

type PlanetEvent struct {
	ID               int64
	PlanetIndex      int
	RawType          int
	Type             string
	Faction          int
	Health           int64
	MaxHealth        int64
	StartTime        int64 // секунды от начала войны (WarTime)
	ExpireTime       int64
	CampaignID       int64
	JointOperationID []int64
}

type GlobalEvent struct {
	ID             int64
	ID32           int64
	PortraitID32   int64
	Title          string
	TitleID32      int64
	Message        string
	MessageID32    int64
	Faction        int
	RawFlag        int
	Flag           string
	AssignmentID32 int64
	Effects        []int64
	Planets        []int
}

// ========================= WarInfo =========================

type WarInfo struct {
	WarID                  int64
	StartDate              time.Time
	EndDate                time.Time
	MinimumClientVersion   string
	Planets                []Planet
	HomeWorlds             []HomeWorld
	Capitals               int
	PlanetPermanentEffects int
}

type HomeWorld struct {
	Faction int
	Planets []int
}

type Position struct {
	X float64
	Y float64
}

type Planet struct {
	Index          int
	Name           string
	SettingsHash   int64
	Position       Position
	Waypoints      []int
	RawSector      int // по данным API, бывает неточным; сектор берём из справочника
	MaxHealth      int64
	Disabled       bool
	InitialFaction int
}

// ========================= NewsFeed =========================

type NewsFeed struct {
	Posts []NewsPost
}

type NewsPost struct {
	ID        int64
	Published int64
	RawType   int
	Type      string
	TagIDs    []int64
	Message   string
}

// ========================= MajorOrders =========================

type MajorOrders struct {
	Orders []MajorOrder
}

type MajorOrder struct {
	ID        int64
	ExpiresIn int64
	ExpiresAt time.Time
	RawType   int
	Type      string
	Title     string
	Message   string
	TaskTitle string
	Reward    MajorOrderReward
	Flags     int64
	Tasks     []MajorOrderTask
	// Progress — сумма progress[] / сумма TotalCount всех задач
	Progress float64
}

type MajorOrderTask struct {
	RawType          int
	Type             string
	TargetFaction    int
	TotalCount       int64
	LiberationNeeded bool
	TargetPlanet     int
	HasTargetPlanet  bool
	// значение progress[i] для этой задачи (по позиции в массиве)
	Current  int64
	Progress float64
	// value types без известного смысла: type -> value
	Unknowns map[int]int64
	// len(values) != len(valueTypes): сопоставление по позиции могло съехать
	Misaligned bool
}

type MajorOrderReward struct {
	RawType int
	Type    string
	ID      int64
	Amount  int64
	RawFlag int
	Flags   string
}

// ========================= WarTime =========================

type WarTime struct {
	ElapsedWarTime int64
	TimeSinceStart int64
}

// ========================= WarStats =========================

type BaseStats struct {
	MissionsWon        int64
	MissionsLost       int64
	MissionTimePlayed  int64
	TotalMissions      int64
	MissionSuccessRate int64 // как отдаёт API (округлено, *100)
	SuccessRate        float64
	TerminidKills      int64
	AutomatonKills     int64
	IlluminateKills    int64
	ShotsFired         int64
	ShotsHit           int64
	RawAccuracy        int64
	Accuracy           float64
	TimePlayed         int64
	MissionTimeShare   float64
	Deaths             int64
	FriendlyKills      int64
	FriendlyFireRate   float64
	Revives            int64
}

type PlanetStats struct {
	BaseStats
	PlanetIndex int
}

type WarStats struct {
	Galaxy  BaseStats
	Planets []PlanetStats
}

// ========================= Leaderboard =========================

type Leaderboard struct {
	PageNumber   int64
	PageSize     int64
	TotalRecords int64
	Entries      []LeaderboardEntry
}

type LeaderboardEntry struct {
	Rank       int64
	Ranking    string // "1st", "12th", ...
	Experience int64
	Banner     int64
	Name       string
	IsSelf     bool
	Score      int64
}

// ========================= GameClientConfiguration =========================

type GameClientConfiguration struct {
	Polling     []PollingConfiguration
	Features    []FeatureConfiguration
	Matchmaking map[string][]MatchmakingValue
}

type PollingConfiguration struct {
	ID32     int64
	Interval int64
}

type FeatureConfiguration struct {
	ID32    int64
	Enabled bool
}

type MatchmakingValue struct {
	Weight int64
	Value  int64
}
