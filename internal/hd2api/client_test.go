package hd2api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDecodesAnyJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "en-US", r.Header.Get("Accept-Language"))
		_, _ = w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	}))
	defer srv.Close()

	v, err := NewClient().Fetch(context.Background(), srv.URL, map[string]string{"Accept-Language": "en-US"})
	require.NoError(t, err)
	require.NotNil(t, v.GetListValue())
	assert.Len(t, v.GetListValue().GetValues(), 2)
}

func TestFetchNon200IsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient().Fetch(context.Background(), srv.URL, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 503, se.Code)
	assert.Equal(t, "503 Service Unavailable", se.Error())
}

func TestFetchUsesETag(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(`{"id": 801}`))
	}))
	defer srv.Close()

	c := NewClient()
	first, err := c.Fetch(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient().Fetch(ctx, "http://127.0.0.1:1", nil)
	assert.Error(t, err)
}

func TestCurrentWarID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/WarSeason/Current/WarID":
			_, _ = w.Write([]byte(`{"id": 802}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	id, err := NewClient().CurrentWarID(context.Background(), NewEndpoints(srv.URL, ""))
	require.NoError(t, err)
	assert.Equal(t, int64(802), id)

	_, err = NewClient().CurrentWarID(context.Background(), NewEndpoints(srv.URL+"/missing", ""))
	assert.Error(t, err)
}

func TestEndpoints(t *testing.T) {
	e := NewEndpoints("https://api.example/", "")

	_, err := e.WarStatus()
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "https://api.example/WarSeason/Current/WarID", e.CurrentWarID())
	assert.Equal(t, "https://api.example/Configuration/GameClient", e.GameClientConfiguration())

	e.SetSeason(801)
	cases := map[string]func() (string, error){
		"https://api.example/WarSeason/801/Status":         e.WarStatus,
		"https://api.example/WarSeason/801/WarInfo":        e.WarInfo,
		"https://api.example/WarSeason/801/WarTime":        e.WarTime,
		"https://api.example/WarSeason/801/TimeSinceStart": e.TimeSinceStart,
		"https://api.example/NewsFeed/801":                 e.NewsFeed,
		"https://api.example/v2/Assignment/War/801":        e.MajorOrders,
		"https://api.example/Stats/War/801/Summary":        e.WarStats,
	}
	for want, fn := range cases {
		got, err := fn()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	lb, err := e.Leaderboard(2, 50)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example/Leaderboard/HotF/v2/Player/801?PageNumber=2&PageSize=50", lb)
	lb, _ = e.Leaderboard(0, 0)
	assert.Equal(t, "https://api.example/Leaderboard/HotF/v2/Player/801", lb)

	e.SetSeason(802)
	ws, _ := e.WarStatus()
	assert.Equal(t, "https://api.example/WarSeason/802/Status", ws)

	u, ok := e.DiveHarder(Items)
	assert.True(t, ok)
	assert.Equal(t, "https://api.diveharder.com/raw/Items", u)
	_, ok = e.DiveHarder("Nope")
	assert.False(t, ok)
	assert.Len(t, e.DiveHarderAll(), 5)
}
