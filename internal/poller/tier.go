package poller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/EgorLis/Helldiversbot/internal/war"
)

// State — состояние цикла опроса.
type State int32

const (
	Uninitialized State = iota
	Waiting             // ждём хост и сезон
	Scheduled           // спим до следующего запуска
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Waiting:
		return "waiting"
	case Scheduled:
		return "scheduled"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// source — одна схема тира и способ её получить.
type source struct {
	schema war.Schema
	fetch  func(ctx context.Context) (*structpb.Value, error)
}

type tier struct {
	name    string
	every   time.Duration
	key     string // ключ в next_iter.json
	sources []source
	after   func(ctx context.Context) error

	state     atomic.Int32
	ready     chan struct{}
	readyOnce sync.Once
}

func newTier(every time.Duration, sources ...source) *tier {
	name := fmt.Sprintf("%ds", int(every/time.Second))
	return &tier{
		name:    name,
		every:   every,
		key:     "helldivers.get_latest_" + name,
		sources: sources,
		ready:   make(chan struct{}),
	}
}

func (t *tier) setState(s State) { t.state.Store(int32(s)) }

func (t *tier) State() State { return State(t.state.Load()) }

func (t *tier) markReady() { t.readyOnce.Do(func() { close(t.ready) }) }

func (t *tier) isReady() bool {
	select {
	case <-t.ready:
		return true
	default:
		return false
	}
}
