package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgorLis/Helldiversbot/internal/hd2api"
	"github.com/EgorLis/Helldiversbot/internal/match"
	"github.com/EgorLis/Helldiversbot/internal/poller"
	"github.com/EgorLis/Helldiversbot/internal/war"
)

// NotReadyMessage — ответ, пока резолвер ни разу не отработал.
const NotReadyMessage = "Helldivers 2 is not ready! The bot either just started or it has restarted " +
	"the Helldivers 2 feature-set for updates. This shouldn't take long - please wait about a minute."

const graphKey = "hd2.graph"

type Deps struct {
	Cache     *war.Cache
	Endpoints *hd2api.Endpoints
	// Feed — websocket-канал оператора на /ws; nil — маршрута нет
	Feed http.Handler
	// States — состояния циклов опроса для /ready; может быть nil
	States func() map[string]poller.State
}

type handler struct {
	Deps
}

func NewRouter(d Deps) *gin.Engine {
	h := &handler{Deps: d}

	router := gin.Default()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", h.ready)
	if d.Feed != nil {
		router.GET("/ws", gin.WrapH(d.Feed))
	}
	if d.Endpoints != nil {
		router.GET("/diveharder", func(c *gin.Context) {
			c.JSON(http.StatusOK, d.Endpoints.DiveHarderAll())
		})
		router.GET("/diveharder/:name", h.diveHarder)
	}

	api := router.Group("/")
	api.Use(h.requireReady)
	{
		api.GET("/planets", h.planets)
		api.GET("/planets/:name", h.planet)
		api.GET("/sectors", h.sectors)
		api.GET("/sectors/:name", h.sector)
		api.GET("/factions", h.factions)
		api.GET("/orders", h.orders)
		api.GET("/news", h.news)
		api.GET("/stats", h.stats)
	}
	return router
}

func (h *handler) ready(c *gin.Context) {
	body := gin.H{"ready": h.Cache.Ready()}
	if id, ok := h.Cache.CurrentWarID(); ok {
		body["war_id"] = id
	}
	if h.Endpoints != nil {
		body["api_base"] = h.Endpoints.Base()
	}
	if h.States != nil {
		tiers := gin.H{}
		for name, st := range h.States() {
			tiers[name] = st.String()
		}
		body["tiers"] = tiers
	}
	code := http.StatusOK
	if !h.Cache.Ready() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, body)
}

func (h *handler) diveHarder(c *gin.Context) {
	name := c.Param("name")
	u, ok := h.Endpoints.DiveHarder(name)
	if !ok {
		names := make([]string, 0)
		for n := range h.Endpoints.DiveHarderAll() {
			names = append(names, n)
		}
		r := match.Complete(name, names)
		if !r.OK {
			c.JSON(http.StatusNotFound, gin.H{"error": r.Message, "suggestions": r.Suggestions})
			return
		}
		u, _ = h.Endpoints.DiveHarder(r.Match)
		name = r.Match
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "url": u})
}

func (h *handler) requireReady(c *gin.Context) {
	g, err := h.Cache.Require()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": NotReadyMessage})
		return
	}
	c.Set(graphKey, g)
	c.Next()
}

func graphOf(c *gin.Context) *war.Graph {
	return c.MustGet(graphKey).(*war.Graph)
}

func (h *handler) planets(c *gin.Context) {
	g := graphOf(c)
	if c.Query("group") == "sector" {
		out := map[string]map[string][]string{}
		for sector, byFaction := range g.GroupBySector() {
			named := make(map[string][]string, len(byFaction))
			for id, names := range byFaction {
				named[factionName(g, id)] = names
			}
			out[sector] = named
		}
		c.JSON(http.StatusOK, out)
		return
	}

	list := g.PlanetList()
	out := make([]planetJSON, 0, len(list))
	for _, p := range list {
		out = append(out, newPlanetJSON(g, p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) planet(c *gin.Context) {
	g := graphOf(c)
	r := match.Complete(c.Param("name"), g.PlanetNames())
	if !r.OK {
		c.JSON(http.StatusNotFound, gin.H{"error": r.Message, "suggestions": r.Suggestions})
		return
	}
	p, _ := g.PlanetByName(r.Match)
	c.JSON(http.StatusOK, newPlanetDetailJSON(g, p))
}

func (h *handler) sectors(c *gin.Context) {
	g := graphOf(c)
	list := g.SectorList()
	out := make([]sectorJSON, 0, len(list))
	for _, s := range list {
		out = append(out, newSectorJSON(g, s))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) sector(c *gin.Context) {
	g := graphOf(c)
	names := make([]string, 0, len(g.Sectors))
	for _, s := range g.SectorList() {
		names = append(names, s.Name)
	}
	r := match.Complete(c.Param("name"), names)
	if !r.OK {
		c.JSON(http.StatusNotFound, gin.H{"error": r.Message, "suggestions": r.Suggestions})
		return
	}
	s, _ := g.Sector(r.Match)
	c.JSON(http.StatusOK, newSectorJSON(g, s))
}

func (h *handler) factions(c *gin.Context) {
	g := graphOf(c)
	list := g.FactionList()
	out := make([]factionJSON, 0, len(list))
	for _, f := range list {
		out = append(out, newFactionJSON(g, f))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) orders(c *gin.Context) {
	g := graphOf(c)
	out := make([]orderJSON, 0, len(g.Orders))
	for _, o := range g.Orders {
		out = append(out, newOrderJSON(g, o))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) news(c *gin.Context) {
	nf := h.Cache.NewsFeed()
	if nf == nil {
		c.JSON(http.StatusOK, []war.NewsPost{})
		return
	}
	c.JSON(http.StatusOK, nf.Posts)
}

func (h *handler) stats(c *gin.Context) {
	ws := h.Cache.WarStats()
	if ws == nil {
		c.JSON(http.StatusOK, war.BaseStats{})
		return
	}
	c.JSON(http.StatusOK, ws.Galaxy)
}
