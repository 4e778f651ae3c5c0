package poller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/EgorLis/Helldiversbot/internal/hd2api"
	"github.com/EgorLis/Helldiversbot/internal/store"
	"github.com/EgorLis/Helldiversbot/internal/war"
)

// API — то, что нужно планировщику от HTTP-клиента (*hd2api.Client).
type API interface {
	Fetch(ctx context.Context, url string, headers map[string]string) (*structpb.Value, error)
	CurrentWarID(ctx context.Context, e *hd2api.Endpoints) (int64, error)
}

type Config struct {
	Cache     *war.Cache
	API       API
	Endpoints *hd2api.Endpoints
	Timers    *store.TimerStore
	Dumps     *store.SnapshotStore

	DefaultWarID int64
	Headers      map[string]string

	// HostReady закрывается, когда хост готов; nil — готов сразу.
	HostReady <-chan struct{}
	// Notify — канал оператора. Ошибки циклов и смена сезона идут сюда и в лог.
	Notify func(string)

	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

type Scheduler struct {
	cache     *war.Cache
	api       API
	endpoints *hd2api.Endpoints
	timers    *store.TimerStore
	dumps     *store.SnapshotStore

	defaultWarID int64
	headers      map[string]string
	hostReady    <-chan struct{}
	notify       func(string)
	now          func() time.Time
	sleep        func(ctx context.Context, d time.Duration) error

	seasonReady  chan struct{}
	seasonOnce   sync.Once
	warInfoStale atomic.Bool

	tiers  []*tier
	byName map[string]*tier
}

func New(cfg Config) (*Scheduler, error) {
	switch {
	case cfg.Cache == nil:
		return nil, errors.New("poller: cache is required")
	case cfg.API == nil:
		return nil, errors.New("poller: api client is required")
	case cfg.Endpoints == nil:
		return nil, errors.New("poller: endpoints are required")
	case cfg.Timers == nil || cfg.Dumps == nil:
		return nil, errors.New("poller: timer and snapshot stores are required")
	}
	s := &Scheduler{
		cache:        cfg.Cache,
		api:          cfg.API,
		endpoints:    cfg.Endpoints,
		timers:       cfg.Timers,
		dumps:        cfg.Dumps,
		defaultWarID: cfg.DefaultWarID,
		headers:      cfg.Headers,
		hostReady:    cfg.HostReady,
		notify:       cfg.Notify,
		now:          cfg.Now,
		sleep:        cfg.Sleep,
		seasonReady:  make(chan struct{}),
		byName:       map[string]*tier{},
	}
	if s.defaultWarID == 0 {
		s.defaultWarID = hd2api.DefaultWarID
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.sleep == nil {
		s.sleep = sleepCtx
	}

	e := s.endpoints
	s.addTier(newTier(900*time.Second,
		s.urlSource(war.SchemaGameClientConfiguration, func() (string, error) { return e.GameClientConfiguration(), nil }),
	))
	s.addTier(newTier(300*time.Second,
		s.urlSource(war.SchemaMajorOrders, e.MajorOrders),
		s.warTimeSource(),
		s.urlSource(war.SchemaLeaderboard, func() (string, error) { return e.Leaderboard(0, 0) }),
	))
	s.addTier(newTier(60*time.Second,
		s.urlSource(war.SchemaNewsFeed, e.NewsFeed),
	)).after = s.checkSeason
	s.addTier(newTier(10*time.Second,
		s.urlSource(war.SchemaWarStats, e.WarStats),
		s.urlSource(war.SchemaWarStatus, e.WarStatus),
	)).after = s.remapIfReady
	return s, nil
}

func (s *Scheduler) addTier(t *tier) *tier {
	s.tiers = append(s.tiers, t)
	s.byName[t.name] = t
	return t
}

// Run — сезон + четыре цикла до отмены ctx. Возвращает nil при остановке.
func (s *Scheduler) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.bootstrap(gctx) })
	for _, t := range s.tiers {
		t := t
		g.Go(func() error {
			s.runTier(gctx, t)
			return nil
		})
	}
	return g.Wait()
}

// States — снимок состояний циклов ("10s" -> running ...).
func (s *Scheduler) States() map[string]State {
	out := make(map[string]State, len(s.tiers))
	for _, t := range s.tiers {
		out[t.name] = t.State()
	}
	return out
}

func (s *Scheduler) SeasonReady() <-chan struct{} { return s.seasonReady }

func (s *Scheduler) markSeasonReady() {
	s.seasonOnce.Do(func() { close(s.seasonReady) })
}

func (s *Scheduler) runTier(ctx context.Context, t *tier) {
	defer t.setState(Stopped)

	t.setState(Waiting)
	if err := s.waitDependencies(ctx); err != nil {
		return
	}

	// после рестарта: таймер ещё в будущем -> поднимаем дампы и досыпаем
	if at, ok := s.timers.Get(t.key); ok {
		if d := at.Sub(s.now()); d > 0 && s.restore(t) {
			t.setState(Scheduled)
			log.Printf("[poll %s] restored from dumps, next fetch in %s", t.name, d.Round(time.Second))
			if s.sleep(ctx, d) != nil {
				return
			}
		}
	}

	for {
		started := s.now()
		t.setState(Running)
		if err := s.iterate(ctx, t); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.report(fmt.Sprintf("[poll %s] %v", t.name, err))
		}
		t.setState(Scheduled)
		if s.sleep(ctx, started.Add(t.every).Sub(s.now())) != nil {
			return
		}
	}
}

func (s *Scheduler) waitDependencies(ctx context.Context) error {
	if s.hostReady != nil {
		select {
		case <-s.hostReady:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	select {
	case <-s.seasonReady:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// iterate — один проход тира: всё скачали -> проверили форму -> один Commit
// -> дампы и таймер -> ready-флаг тира -> шаг после (сезон / remap).
func (s *Scheduler) iterate(ctx context.Context, t *tier) error {
	payloads, err := s.fetchAll(ctx, t.sources)
	if err != nil {
		return err
	}
	for schema, v := range payloads {
		if err := checkShape(schema, v); err != nil {
			return err
		}
	}
	if err := s.cache.Commit(payloads); err != nil {
		return err
	}
	s.persist(payloads)
	if err := s.timers.Set(t.key, s.now().Add(t.every)); err != nil {
		log.Printf("[poll %s] save timer: %v", t.name, err)
	}
	t.markReady()

	if t.after != nil {
		return t.after(ctx)
	}
	return nil
}

func (s *Scheduler) fetchAll(ctx context.Context, sources []source) (map[war.Schema]*structpb.Value, error) {
	out := make(map[war.Schema]*structpb.Value, len(sources))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			v, err := src.fetch(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", src.schema, err)
			}
			mu.Lock()
			out[src.schema] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ошибка записи дампа только логируется: кеш в памяти уже обновлён
func (s *Scheduler) persist(payloads map[war.Schema]*structpb.Value) {
	for schema, v := range payloads {
		if err := s.dumps.Write(string(schema), v); err != nil {
			log.Printf("[poll] dump %s: %v", schema, err)
		}
	}
}

// restore кладёт в кеш всё, что нашлось в дампах тира.
func (s *Scheduler) restore(t *tier) bool {
	payloads := map[war.Schema]*structpb.Value{}
	for _, src := range t.sources {
		v, err := s.dumps.Read(string(src.schema))
		if err != nil {
			log.Printf("[poll %s] restore: %v", t.name, err)
			continue
		}
		payloads[src.schema] = v
	}
	if len(payloads) == 0 {
		return false
	}
	if err := s.cache.Commit(payloads); err != nil {
		log.Printf("[poll %s] restore: %v", t.name, err)
		return false
	}
	t.markReady()
	return true
}

func (s *Scheduler) remapIfReady(context.Context) error {
	for _, name := range []string{"60s", "300s", "900s"} {
		if !s.byName[name].isReady() {
			return nil
		}
	}
	wasReady := s.cache.Ready()
	if err := s.cache.Remap(); err != nil {
		return fmt.Errorf("remap: %w", err)
	}
	if !wasReady {
		s.report("[remap] Helldivers 2 data is ready")
	}
	return nil
}

func (s *Scheduler) report(msg string) {
	log.Println(msg)
	if s.notify != nil {
		s.notify(msg)
	}
}

func (s *Scheduler) urlSource(schema war.Schema, url func() (string, error)) source {
	return source{schema: schema, fetch: func(ctx context.Context) (*structpb.Value, error) {
		u, err := url()
		if err != nil {
			return nil, err
		}
		return s.api.Fetch(ctx, u, s.headers)
	}}
}

// WarTime хранится одним объектом {"WarTime": ..., "TimeSinceStart": ...}.
func (s *Scheduler) warTimeSource() source {
	wt := s.urlSource(war.SchemaWarTime, s.endpoints.WarTime)
	since := s.urlSource(war.SchemaWarTime, s.endpoints.TimeSinceStart)
	return source{schema: war.SchemaWarTime, fetch: func(ctx context.Context) (*structpb.Value, error) {
		a, err := wt.fetch(ctx)
		if err != nil {
			return nil, err
		}
		b, err := since.fetch(ctx)
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"WarTime":        a,
			"TimeSinceStart": b,
		}}), nil
	}}
}

// checkShape: на верхнем уровне допустимы только объект или список.
// Строка вместо JSON ("503 Service Unavailable") сюда не пройдёт.
func checkShape(schema war.Schema, v *structpb.Value) error {
	if err := objectOrList(schema, v); err != nil {
		return err
	}
	if schema == war.SchemaWarTime {
		for _, k := range []string{"WarTime", "TimeSinceStart"} {
			inner, ok := v.GetStructValue().GetFields()[k]
			if !ok {
				continue
			}
			if _, isObj := inner.GetKind().(*structpb.Value_StructValue); !isObj {
				return fmt.Errorf("%w: %s.%s is %v", war.ErrPayloadShape, schema, k, inner.AsInterface())
			}
		}
	}
	return nil
}

func objectOrList(schema war.Schema, v *structpb.Value) error {
	if v == nil {
		return fmt.Errorf("%w: %s: empty payload", war.ErrPayloadShape, schema)
	}
	switch v.GetKind().(type) {
	case *structpb.Value_StructValue, *structpb.Value_ListValue:
		return nil
	}
	return fmt.Errorf("%w: %s: payload is %v", war.ErrPayloadShape, schema, v.AsInterface())
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
