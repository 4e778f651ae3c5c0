package hd2api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

var ErrNotConfigured = errors.New("hd2api: season endpoints are not configured")

const (
	DefaultDiveHarderBase = "https://api.diveharder.com/raw"
	DefaultWarID          = 801
)

// Endpoints — адреса API. Сезонные (WarSeason/{id}/...) появляются только
// после SetSeason, до этого методы возвращают ErrNotConfigured.
type Endpoints struct {
	base       string
	diveHarder string

	mu     sync.RWMutex
	warID  int64
	season bool
}

func NewEndpoints(base, diveHarder string) *Endpoints {
	if diveHarder == "" {
		diveHarder = DefaultDiveHarderBase
	}
	return &Endpoints{
		base:       strings.TrimRight(base, "/"),
		diveHarder: strings.TrimRight(diveHarder, "/"),
	}
}

func (e *Endpoints) Base() string { return e.base }

// SetSeason переключает все сезонные адреса на warID.
func (e *Endpoints) SetSeason(warID int64) {
	e.mu.Lock()
	e.warID, e.season = warID, true
	e.mu.Unlock()
}

func (e *Endpoints) Season() (int64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.warID, e.season
}

func (e *Endpoints) seasonURL(format string) (string, error) {
	id, ok := e.Season()
	if !ok {
		return "", ErrNotConfigured
	}
	return e.base + fmt.Sprintf(format, id), nil
}

func (e *Endpoints) CurrentWarID() string { return e.base + "/WarSeason/Current/WarID" }

func (e *Endpoints) GameClientConfiguration() string { return e.base + "/Configuration/GameClient" }

func (e *Endpoints) WarStatus() (string, error) { return e.seasonURL("/WarSeason/%d/Status") }

func (e *Endpoints) WarInfo() (string, error) { return e.seasonURL("/WarSeason/%d/WarInfo") }

func (e *Endpoints) WarTime() (string, error) { return e.seasonURL("/WarSeason/%d/WarTime") }

func (e *Endpoints) TimeSinceStart() (string, error) {
	return e.seasonURL("/WarSeason/%d/TimeSinceStart")
}

func (e *Endpoints) NewsFeed() (string, error) { return e.seasonURL("/NewsFeed/%d") }

func (e *Endpoints) MajorOrders() (string, error) { return e.seasonURL("/v2/Assignment/War/%d") }

func (e *Endpoints) WarStats() (string, error) { return e.seasonURL("/Stats/War/%d/Summary") }

// Leaderboard: page/size <= 0 — параметр не передаётся.
func (e *Endpoints) Leaderboard(page, size int) (string, error) {
	u, err := e.seasonURL("/Leaderboard/HotF/v2/Player/%d")
	if err != nil {
		return "", err
	}
	q := url.Values{}
	if page > 0 {
		q.Set("PageNumber", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("PageSize", strconv.Itoa(size))
	}
	if len(q) == 0 {
		return u, nil
	}
	return u + "?" + q.Encode(), nil
}

// Сырые эндпоинты diveharder. В кеш не попадают, отдаются как адреса.
const (
	NewsTicker         = "NewsTicker"
	GalacticWarEffects = "GalacticWarEffects"
	LevelSpec          = "LevelSpec"
	Items              = "Items"
	MissionRewards     = "MissionRewards"
)

var diveHarderNames = []string{NewsTicker, GalacticWarEffects, LevelSpec, Items, MissionRewards}

func (e *Endpoints) DiveHarder(name string) (string, bool) {
	for _, n := range diveHarderNames {
		if n == name {
			return e.diveHarder + "/" + n, true
		}
	}
	return "", false
}

// DiveHarderAll — имя -> адрес.
func (e *Endpoints) DiveHarderAll() map[string]string {
	out := make(map[string]string, len(diveHarderNames))
	for _, n := range diveHarderNames {
		out[n] = e.diveHarder + "/" + n
	}
	return out
}
