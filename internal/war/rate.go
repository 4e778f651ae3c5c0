package war

import (
	"math"
	"time"
)

// дальше этого горизонта ETA не показываем
const maxEstimateHorizon = 365 * 24 * time.Hour

type healthSample struct {
	health int64
	at     time.Time
}

// Estimate — скорости в единицах "в час". Положительное значение — прогресс
// освобождения (здоровье планеты падает).
type Estimate struct {
	RawRate             float64 // здоровья в час
	NetRate             float64 // доля освобождения в час
	Rate                float64 // NetRate + регенерация (доля в час)
	EstimatedLiberation *time.Time
}

// EstimateRate считает скорость по двум замерам здоровья, разделённым elapsed.
// ok == false, если считать не из чего (elapsed <= 0).
func EstimateRate(prev, cur, maxHealth int64, regenPerHour float64, elapsed time.Duration, now time.Time) (Estimate, bool) {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return Estimate{}, false
	}
	removed := float64(prev - cur)
	perSecond := removed / secs

	est := Estimate{RawRate: perSecond * 3600}
	if maxHealth > 0 {
		est.NetRate = removed / float64(maxHealth) / secs * 3600
		// регенерация в тех же единицах, что NetRate: доля здоровья в час
		est.Rate = est.NetRate + regenPerHour/float64(maxHealth)
	}
	// стоим на месте или откатываемся — оценки нет
	if perSecond > 0 {
		left := float64(cur) / perSecond
		if !math.IsInf(left, 0) && !math.IsNaN(left) && left <= maxEstimateHorizon.Seconds() {
			eta := now.Add(time.Duration(left * float64(time.Second)))
			est.EstimatedLiberation = &eta
		}
	}
	return est, true
}

// Estimator хранит последнее замеренное здоровье каждой планеты (cached_health)
// и последнюю оценку, чтобы переносить её на свежие PlanetStatus.
// Не потокобезопасен: вызывается только из Cache.Remap.
type Estimator struct {
	window    time.Duration
	cached    map[int]healthSample
	estimates map[int]Estimate
}

// NewEstimator: window — минимальный интервал между замерами.
func NewEstimator(window time.Duration) *Estimator {
	return &Estimator{
		window:    window,
		cached:    map[int]healthSample{},
		estimates: map[int]Estimate{},
	}
}

// Apply проставляет скорости в статусы графа. Первый замер планеты только
// запоминается, расчёта нет.
func (e *Estimator) Apply(g *Graph, now time.Time) {
	for id, st := range g.Statuses {
		p, ok := g.Planets[id]
		if !ok {
			continue
		}
		prev, seen := e.cached[id]
		if !seen {
			e.cached[id] = healthSample{health: st.Health, at: now}
			continue
		}
		if elapsed := now.Sub(prev.at); elapsed >= e.window {
			if est, ok := EstimateRate(prev.health, st.Health, p.MaxHealth, st.RegenPerHour, elapsed, now); ok {
				e.estimates[id] = est
				e.cached[id] = healthSample{health: st.Health, at: now}
			}
		}
		if est, ok := e.estimates[id]; ok {
			st.RawRate = est.RawRate
			st.NetRate = est.NetRate
			st.Rate = est.Rate
			st.EstimatedLiberation = est.EstimatedLiberation
		}
	}
}

func (e *Estimator) CachedHealth(planet int) (int64, bool) {
	s, ok := e.cached[planet]
	return s.health, ok
}
