package store

import (
	"encoding/json"
	"math"
	"os"
	"sync"
	"time"
)

// TimerStore — next_iter.json: ключ цикла -> unix-время следующего запуска
// (секунды, дробные). Каждый Set/Remove сразу пишется на диск.
type TimerStore struct {
	mu   sync.Mutex
	path string
	data map[string]float64
}

// OpenTimers читает файл; отсутствующий файл — пустой стор.
func OpenTimers(path string) (*TimerStore, error) {
	ts := &TimerStore{path: path, data: map[string]float64{}}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ts, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return ts, nil
	}
	// значения null встречаются: цикл ещё не знал следующего запуска
	var raw map[string]*float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	for k, v := range raw {
		if v != nil {
			ts.data[k] = *v
		}
	}
	return ts, nil
}

func (ts *TimerStore) Get(key string) (time.Time, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	v, ok := ts.data[key]
	if !ok {
		return time.Time{}, false
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9)), true
}

func (ts *TimerStore) Set(key string, at time.Time) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.data[key] = float64(at.UnixNano()) / 1e9
	return ts.save()
}

func (ts *TimerStore) Remove(key string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if _, ok := ts.data[key]; !ok {
		return nil
	}
	delete(ts.data, key)
	return ts.save()
}

// вызывается под ts.mu
func (ts *TimerStore) save() error {
	b, err := json.MarshalIndent(ts.data, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(ts.path, b)
}
