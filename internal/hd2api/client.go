package hd2api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// StatusError — ответ не 200. Code/Reason как в строке статуса HTTP.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Reason)
}

type Conf struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
}

type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	agent   string

	mu    sync.RWMutex
	etags map[string]cachedBody // url -> последний ответ с ETag
}

type cachedBody struct {
	etag  string
	value *structpb.Value
}

// Создает клиент с дефолтами: 10s таймаут, 5 rps.
func NewClient() *Client {
	return NewClientFromConf(Conf{})
}

func NewClientFromConf(conf Conf) *Client {
	if conf.Timeout <= 0 {
		conf.Timeout = 10 * time.Second
	}
	if conf.RequestsPerSecond <= 0 {
		conf.RequestsPerSecond = 5
	}
	if conf.Burst <= 0 {
		conf.Burst = 4
	}
	return &Client{
		http:    &http.Client{Timeout: conf.Timeout},
		limiter: rate.NewLimiter(rate.Limit(conf.RequestsPerSecond), conf.Burst),
		agent:   conf.UserAgent,
		etags:   map[string]cachedBody{},
	}
}

// Fetch делает GET и возвращает разобранный JSON как есть (объект, список,
// строка...). Проверка формы — дело декодеров. Не-200 -> *StatusError.
func (c *Client) Fetch(ctx context.Context, url string, headers map[string]string) (*structpb.Value, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.agent != "" {
		req.Header.Set("User-Agent", c.agent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.mu.RLock()
	cached, hasCached := c.etags[url]
	c.mu.RUnlock()
	if hasCached {
		req.Header.Set("If-None-Match", cached.etag)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 304 — ничего не изменилось, отдадим предыдущий ответ
	if resp.StatusCode == http.StatusNotModified && hasCached {
		return cached.value, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	v := &structpb.Value{}
	if err := protojson.Unmarshal(body, v); err != nil {
		return nil, fmt.Errorf("hd2api: %s: %w", url, err)
	}

	if et := resp.Header.Get("ETag"); et != "" {
		c.mu.Lock()
		c.etags[url] = cachedBody{etag: et, value: v}
		c.mu.Unlock()
	}
	return v, nil
}

// CurrentWarID читает {"id": N}. Любая ошибка, в т.ч. отсутствие поля,
// возвращается как есть: вызывающий решает, брать ли дефолт.
func (c *Client) CurrentWarID(ctx context.Context, e *Endpoints) (int64, error) {
	v, err := c.Fetch(ctx, e.CurrentWarID(), nil)
	if err != nil {
		return 0, err
	}
	id, ok := v.GetStructValue().GetFields()["id"]
	if !ok {
		return 0, errors.New("hd2api: current war id: no \"id\" in response")
	}
	if _, isNum := id.GetKind().(*structpb.Value_NumberValue); !isNum {
		return 0, fmt.Errorf("hd2api: current war id: unexpected value %v", id.AsInterface())
	}
	log.Printf("[api] current war id: %d", int64(id.GetNumberValue()))
	return int64(id.GetNumberValue()), nil
}
