package bot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/EgorLis/Helldiversbot/internal/hd2api"
)

// EnvAPIBase перекрывает api_base из файла.
const EnvAPIBase = "HELLDIVERS_API"

const DefaultAPIBase = "https://api.live.prod.thehelldiversgame.com/api"

type BotConfig struct {
	APIBase        string `json:"api_base"`
	DiveHarderBase string `json:"diveharder_base"`
	// каталог с next_iter.json и hd2_dumps/
	JSONDir    string `json:"json_dir"`
	ListenAddr string `json:"listen_addr"`

	RequestsPerSecond  float64 `json:"requests_per_second"`
	RequestBurst       int     `json:"request_burst"`
	HTTPTimeoutSeconds int     `json:"http_timeout_seconds"`
	AcceptLanguage     string  `json:"accept_language,omitempty"`

	// минимальное окно между замерами для оценки скорости
	RateWindowSeconds int   `json:"rate_window_seconds"`
	DefaultWarID      int64 `json:"default_war_id"`
}

func defaultConfig() BotConfig {
	return BotConfig{
		APIBase:            DefaultAPIBase,
		DiveHarderBase:     hd2api.DefaultDiveHarderBase,
		JSONDir:            "json",
		ListenAddr:         "127.0.0.1:8080",
		RequestsPerSecond:  5,
		RequestBurst:       4,
		HTTPTimeoutSeconds: 10,
		AcceptLanguage:     "en-US",
		RateWindowSeconds:  300,
		DefaultWarID:       hd2api.DefaultWarID,
	}
}

func (c BotConfig) rateWindow() time.Duration {
	return time.Duration(c.RateWindowSeconds) * time.Second
}

func (c BotConfig) apiConf() hd2api.Conf {
	return hd2api.Conf{
		Timeout:           time.Duration(c.HTTPTimeoutSeconds) * time.Second,
		RequestsPerSecond: c.RequestsPerSecond,
		Burst:             c.RequestBurst,
	}
}

func (c BotConfig) headers() map[string]string {
	if c.AcceptLanguage == "" {
		return nil
	}
	return map[string]string{"Accept-Language": c.AcceptLanguage}
}

type configStore struct {
	mu   sync.Mutex
	path string
	data BotConfig
}

func newConfigStore(path string) *configStore {
	return &configStore{path: path, data: defaultConfig()}
}

func (cs *configStore) Load() error {
	cs.mu.Lock()
	f := cs.path
	_ = os.MkdirAll(filepath.Dir(f), 0755)
	b, err := os.ReadFile(f)
	if err != nil {
		cs.mu.Unlock()
		if os.IsNotExist(err) {
			return cs.Save() // создаём с дефолтами
		}
		return err
	}
	err = json.Unmarshal(b, &cs.data)
	cs.mu.Unlock()
	return err
}

func (cs *configStore) Save() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	b, err := json.MarshalIndent(&cs.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cs.path, b, 0644)
}

// effective — конфиг с учётом переменных окружения.
func (cs *configStore) effective() BotConfig {
	cs.mu.Lock()
	c := cs.data
	cs.mu.Unlock()
	if v := os.Getenv(EnvAPIBase); v != "" {
		c.APIBase = v
	}
	return c
}

func (bot *HelldiversBot) UseConfig(path string) error {
	cs := newConfigStore(path)
	if err := cs.Load(); err != nil {
		return err
	}
	bot.mu.Lock()
	bot.cfg = cs
	bot.mu.Unlock()
	return nil
}

// Config — действующая конфигурация (файл + окружение).
func (bot *HelldiversBot) Config() BotConfig {
	bot.mu.Lock()
	cs := bot.cfg
	bot.mu.Unlock()
	if cs == nil {
		cs = newConfigStore("")
	}
	return cs.effective()
}
