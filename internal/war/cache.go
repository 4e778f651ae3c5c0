package war

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

var ErrNotReady = errors.New("war: Helldivers 2 data is not ready yet")

// Cache — корневой объект: последние снимки всех схем + граф связей.
// Пишут в него только тиры опроса (Commit) и резолвер (Remap); остальные
// только читают. Возвращаемые указатели менять нельзя.
type Cache struct {
	dec *Decoder
	est *Estimator
	now func() time.Time

	mu          sync.RWMutex
	warID       int64
	hasWarID    bool
	warStatus   *WarStatus
	warInfo     *WarInfo
	newsFeed    *NewsFeed
	majorOrders *MajorOrders
	warTime     *WarTime
	warStats    *WarStats
	leaderboard *Leaderboard
	gameClient  *GameClientConfiguration
	graph       *Graph

	remapMu sync.Mutex
	ready   atomic.Bool
	readyCh chan struct{}
}

func NewCache(dec *Decoder, rateWindow time.Duration) *Cache {
	if dec == nil {
		dec = NewDecoder(nil)
	}
	return &Cache{
		dec:     dec,
		est:     NewEstimator(rateWindow),
		now:     time.Now,
		readyCh: make(chan struct{}),
	}
}

// Commit декодирует все payload-ы тира и только если все прошли — кладёт их
// в кеш под одним локом. Резолвер видит либо старый, либо полностью новый тир.
func (c *Cache) Commit(payloads map[Schema]*structpb.Value) error {
	decoded := make(map[Schema]any, len(payloads))
	for schema, raw := range payloads {
		v, err := c.dec.Decode(schema, raw)
		if err != nil {
			return err
		}
		decoded[schema] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for schema, v := range decoded {
		if err := c.set(schema, v); err != nil {
			return err
		}
	}
	return nil
}

// вызывается под c.mu
func (c *Cache) set(schema Schema, v any) error {
	switch rec := v.(type) {
	case *WarStatus:
		c.warStatus = rec
	case *WarInfo:
		c.warInfo = rec
	case *NewsFeed:
		c.newsFeed = rec
	case *MajorOrders:
		c.majorOrders = rec
	case *WarTime:
		c.warTime = rec
	case *WarStats:
		c.warStats = rec
	case *Leaderboard:
		c.leaderboard = rec
	case *GameClientConfiguration:
		c.gameClient = rec
	default:
		return fmt.Errorf("war: %s: unexpected record %T", schema, v)
	}
	return nil
}

// Remap — проход резолвера по текущим снимкам. При ошибке опубликованный
// граф не трогается, а ready не взводится.
func (c *Cache) Remap() error {
	c.remapMu.Lock()
	defer c.remapMu.Unlock()

	c.mu.RLock()
	in := Snapshots{
		WarInfo:     c.warInfo,
		WarStatus:   c.warStatus,
		WarStats:    c.warStats,
		MajorOrders: c.majorOrders,
	}
	c.mu.RUnlock()

	now := c.now()
	g, err := Resolve(in, c.dec.tables, now)
	if err != nil {
		return err
	}
	c.est.Apply(g, now)

	c.mu.Lock()
	c.graph = g
	c.mu.Unlock()

	if c.ready.CompareAndSwap(false, true) {
		close(c.readyCh)
	}
	return nil
}

func (c *Cache) Ready() bool { return c.ready.Load() }

// ReadyC закрывается после первого успешного прохода резолвера.
func (c *Cache) ReadyC() <-chan struct{} { return c.readyCh }

// Require — для обработчиков команд: граф или ErrNotReady.
func (c *Cache) Require() (*Graph, error) {
	if !c.Ready() {
		return nil, ErrNotReady
	}
	return c.Graph(), nil
}

func (c *Cache) Graph() *Graph {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.graph
}

func (c *Cache) CachedHealth(planet int) (int64, bool) {
	c.remapMu.Lock()
	defer c.remapMu.Unlock()
	return c.est.CachedHealth(planet)
}

func (c *Cache) SetCurrentWarID(id int64) {
	c.mu.Lock()
	c.warID, c.hasWarID = id, true
	c.mu.Unlock()
}

func (c *Cache) CurrentWarID() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.warID, c.hasWarID
}

func (c *Cache) WarStatus() *WarStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.warStatus
}

func (c *Cache) WarInfo() *WarInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.warInfo
}

func (c *Cache) NewsFeed() *NewsFeed {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.newsFeed
}

func (c *Cache) MajorOrders() *MajorOrders {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.majorOrders
}

func (c *Cache) WarTime() *WarTime {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.warTime
}

func (c *Cache) WarStats() *WarStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.warStats
}

func (c *Cache) Leaderboard() *Leaderboard {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.leaderboard
}

func (c *Cache) GameClientConfiguration() *GameClientConfiguration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gameClient
}
