package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/EgorLis/Helldiversbot/internal/feed"
	"github.com/EgorLis/Helldiversbot/internal/hd2api"
	"github.com/EgorLis/Helldiversbot/internal/httpapi"
	"github.com/EgorLis/Helldiversbot/internal/poller"
	"github.com/EgorLis/Helldiversbot/internal/store"
	"github.com/EgorLis/Helldiversbot/internal/war"
)

const (
	timersFile = "next_iter.json"
	dumpsDir   = "hd2_dumps"
)

type HelldiversBot struct {
	cfg *configStore

	cache     *war.Cache
	endpoints *hd2api.Endpoints
	hub       *feed.Hub
	sched     *poller.Scheduler
	lock      *store.Lock
	srv       *http.Server
	addr      net.Addr

	stopCh chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func New() *HelldiversBot {
	return &HelldiversBot{}
}

// Cache — общий кэш; только чтение.
func (bot *HelldiversBot) Cache() *war.Cache {
	bot.mu.Lock()
	defer bot.mu.Unlock()
	return bot.cache
}

// Addr — адрес HTTP-листенера после Start.
func (bot *HelldiversBot) Addr() net.Addr {
	bot.mu.Lock()
	defer bot.mu.Unlock()
	return bot.addr
}

func (bot *HelldiversBot) Start() error {
	if bot == nil {
		return errors.New("бот не инициализирован")
	}
	bot.mu.Lock()
	defer bot.mu.Unlock()
	if bot.stopCh != nil {
		return errors.New("уже запущен")
	}
	if bot.cfg == nil {
		bot.cfg = newConfigStore("")
	}
	cfg := bot.cfg.effective()

	lock, err := store.LockDir(cfg.JSONDir)
	if err != nil {
		return err
	}
	timers, err := store.OpenTimers(filepath.Join(cfg.JSONDir, timersFile))
	if err != nil {
		_ = lock.Unlock()
		return err
	}
	dumps, err := store.NewSnapshotStore(filepath.Join(cfg.JSONDir, dumpsDir))
	if err != nil {
		_ = lock.Unlock()
		return err
	}

	cache := war.NewCache(war.NewDecoder(nil), cfg.rateWindow())
	endpoints := hd2api.NewEndpoints(cfg.APIBase, cfg.DiveHarderBase)
	hub := feed.NewHub(0)
	hostReady := make(chan struct{})

	sched, err := poller.New(poller.Config{
		Cache:        cache,
		API:          hd2api.NewClientFromConf(cfg.apiConf()),
		Endpoints:    endpoints,
		Timers:       timers,
		Dumps:        dumps,
		DefaultWarID: cfg.DefaultWarID,
		Headers:      cfg.headers(),
		HostReady:    hostReady,
		Notify:       hub.Notify,
	})
	if err != nil {
		_ = lock.Unlock()
		return err
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		_ = lock.Unlock()
		return fmt.Errorf("listen %s: %w", cfg.ListenAddr, err)
	}
	srv := &http.Server{
		Handler: httpapi.NewRouter(httpapi.Deps{
			Cache:     cache,
			Endpoints: endpoints,
			Feed:      hub,
			States:    sched.States,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	bot.cache, bot.endpoints, bot.hub, bot.sched = cache, endpoints, hub, sched
	bot.lock, bot.srv, bot.addr = lock, srv, ln.Addr()
	bot.stopCh = make(chan struct{})
	stopCh := bot.stopCh

	ctx, cancel := context.WithCancel(context.Background())

	bot.wg.Add(3)
	go func() {
		defer bot.wg.Done()
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Println("[hd2] http:", err)
		}
	}()
	go func() {
		defer bot.wg.Done()
		if err := sched.Run(ctx); err != nil {
			log.Println("[hd2] poller:", err)
		}
	}()
	go func() {
		defer bot.wg.Done()
		select {
		case <-cache.ReadyC():
			id, _ := cache.CurrentWarID()
			hub.Publish(feed.KindReady, fmt.Sprintf("[hd2] war %d resolved", id))
		case <-ctx.Done():
		}
	}()

	log.Printf("[hd2] listening on %s", ln.Addr())
	close(hostReady)

	// сторож для остановки
	bot.wg.Add(1)
	go func() {
		defer bot.wg.Done()
		<-stopCh
		cancel()
		shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shCancel()
		_ = srv.Shutdown(shCtx)
		hub.Close()
	}()
	return nil
}

func (bot *HelldiversBot) Stop() {
	bot.mu.Lock()
	ch := bot.stopCh
	bot.stopCh = nil
	lock := bot.lock
	bot.lock = nil
	bot.mu.Unlock()

	if ch != nil {
		close(ch)     // повторный Stop() ничего не делает
		bot.wg.Wait() // дождёмся циклов и HTTP
	}
	if lock != nil {
		_ = lock.Unlock()
	}
}
