package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mawaqit-dev/mawaqit/internal/astro"
	"github.com/mawaqit-dev/mawaqit/internal/cache"
	"github.com/mawaqit-dev/mawaqit/internal/hijri"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
	"github.com/mawaqit-dev/mawaqit/internal/schedule"
	"github.com/mawaqit-dev/mawaqit/internal/timeline"
	"github.com/rs/zerolog"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	cfg    *Config
	cache  *cache.Cache // nil when caching is disabled
	logger zerolog.Logger
	now    func() time.Time // swapped in tests
}

// NewHandlers creates a Handlers instance. c may be nil to disable the
// schedule cache.
func NewHandlers(cfg *Config, c *cache.Cache, logger zerolog.Logger) *Handlers {
	return &Handlers{cfg: cfg, cache: c, logger: logger, now: time.Now}
}

// request holds the calculation inputs parsed from one request's query
// string, with server defaults already applied.
type request struct {
	coords      prayer.Coordinates
	params      prayer.Params
	hijriOffset int
	date        time.Time
}

// parseRequest resolves coordinates and calculation parameters from the
// query string, falling back to the server's configured defaults.
//
// Recognized parameters: latitude, longitude, timezone, method, madhab,
// high_latitude_rule, hijri_offset, date (YYYY-MM-DD).
func (h *Handlers) parseRequest(r *http.Request) (request, error) {
	q := r.URL.Query()

	lat := h.cfg.DefaultLatitude
	lon := h.cfg.DefaultLongitude
	if s := q.Get("latitude"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return request{}, fmt.Errorf("invalid latitude %q", s)
		}
		lat = v
	}
	if s := q.Get("longitude"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return request{}, fmt.Errorf("invalid longitude %q", s)
		}
		lon = v
	}
	coords, err := prayer.NewCoordinates(lat, lon)
	if err != nil {
		return request{}, err
	}

	method, err := prayer.ParseMethod(h.cfg.DefaultMethod)
	if err != nil {
		method = prayer.MuslimWorldLeague
	}
	if s := q.Get("method"); s != "" {
		method, err = prayer.ParseMethod(s)
		if err != nil {
			return request{}, err
		}
	}

	madhab := prayer.Shafi
	if s := q.Get("madhab"); s != "" {
		madhab, err = prayer.ParseMadhab(s)
		if err != nil {
			return request{}, err
		}
	}

	rule := prayer.HighLatAngleBased
	if s := q.Get("high_latitude_rule"); s != "" {
		rule, err = prayer.ParseHighLatitudeRule(s)
		if err != nil {
			return request{}, err
		}
	}

	tz := h.cfg.DefaultTimezone
	if s := q.Get("timezone"); s != "" {
		tz = s
	}

	params := method.Params(madhab, rule, tz)
	if err := params.Validate(); err != nil {
		return request{}, err
	}
	loc, err := params.Location()
	if err != nil {
		return request{}, err
	}

	offset := 0
	if s := q.Get("hijri_offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < -2 || v > 2 {
			return request{}, fmt.Errorf("invalid hijri_offset %q: must be an integer between -2 and 2", s)
		}
		offset = v
	}

	date := h.now().In(loc)
	if s := q.Get("date"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			return request{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
		}
		date = parsed
	}

	return request{coords: coords, params: params, hijriOffset: offset, date: date}, nil
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]string{
		"status": "healthy",
	})
}

// GetTimings handles GET /v1/timings
func (h *Handlers) GetTimings(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	agg, err := schedule.New(req.coords, req.params, req.hijriOffset)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	day, err := agg.Daily(req.date)
	if err != nil {
		h.logger.Error().Err(err).Str("date", req.date.Format("2006-01-02")).Msg("failed to compute timings")
		writeInternalError(w, "Failed to compute timings")
		return
	}

	writeData(w, day)
}

// GetMonthCalendar handles GET /v1/calendar/{year}/{month}
func (h *Handlers) GetMonthCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		writeBadRequest(w, "Invalid year")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeBadRequest(w, "Invalid month: must be 1-12")
		return
	}

	req, err := h.parseRequest(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	loc, _ := req.params.Location()
	anchor := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	label := anchor.Format("2006-01")

	if entry := h.loadCached(label, req); entry != nil {
		writeData(w, schedule.Month{Label: anchor.Format("January 2006"), Days: entry.Days})
		return
	}

	agg, err := schedule.New(req.coords, req.params, req.hijriOffset)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	m, err := agg.Monthly(anchor)
	if err != nil {
		h.logger.Error().Err(err).Str("month", label).Msg("failed to compute month calendar")
		writeInternalError(w, "Failed to compute calendar")
		return
	}

	h.saveCached(label, req, m.Days)
	writeData(w, m)
}

// GetYearCalendar handles GET /v1/calendar/{year}
func (h *Handlers) GetYearCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		writeBadRequest(w, "Invalid year")
		return
	}

	req, err := h.parseRequest(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	loc, _ := req.params.Location()
	anchor := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	label := anchor.Format("2006")

	if entry := h.loadCached(label, req); entry != nil {
		writeData(w, schedule.Year{Label: label, Days: entry.Days})
		return
	}

	agg, err := schedule.New(req.coords, req.params, req.hijriOffset)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	y, err := agg.Yearly(anchor)
	if err != nil {
		h.logger.Error().Err(err).Str("year", label).Msg("failed to compute year calendar")
		writeInternalError(w, "Failed to compute calendar")
		return
	}

	h.saveCached(label, req, y.Days)
	writeData(w, y)
}

// GetHijri handles GET /v1/hijri
func (h *Handlers) GetHijri(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	hd, err := hijri.FromTime(req.date, req.hijriOffset)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	writeData(w, map[string]interface{}{
		"gregorian": req.date.Format("2006-01-02"),
		"hijri":     hd,
		"formatted": hd.Format(),
	})
}

// GetTimeline handles GET /v1/timeline
func (h *Handlers) GetTimeline(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	agg, err := schedule.New(req.coords, req.params, req.hijriOffset)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	day, err := agg.Daily(req.date)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute timeline day")
		writeInternalError(w, "Failed to compute timeline")
		return
	}
	next, err := agg.Daily(req.date.AddDate(0, 0, 1))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute timeline next day")
		writeInternalError(w, "Failed to compute timeline")
		return
	}

	writeData(w, map[string]interface{}{
		"date":     req.date.Format("2006-01-02"),
		"timeline": timeline.Build(day.Times, next.Times.Fajr),
		"progress": timeline.Progress(h.now(), day.Times, next.Times.Fajr),
	})
}

// GetSun handles GET /v1/sun
func (h *Handlers) GetSun(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	now := h.now()
	writeData(w, map[string]interface{}{
		"coords":   req.coords,
		"time":     now.UTC().Format(time.RFC3339),
		"position": astro.SunPosition(req.coords.Latitude, req.coords.Longitude, now),
	})
}

// GetMethods handles GET /v1/methods
func (h *Handlers) GetMethods(w http.ResponseWriter, r *http.Request) {
	type methodJSON struct {
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		FajrAngle    float64 `json:"fajr_angle"`
		IshaAngle    float64 `json:"isha_angle,omitempty"`
		IshaInterval int     `json:"isha_interval,omitempty"`
	}

	out := make([]methodJSON, 0, len(prayer.Methods))
	for _, m := range prayer.Methods {
		p := m.Params(prayer.Shafi, prayer.HighLatAngleBased, "")
		out = append(out, methodJSON{
			Name:         m.String(),
			Description:  m.Description(),
			FajrAngle:    p.FajrAngle,
			IshaAngle:    p.IshaAngle,
			IshaInterval: p.IshaInterval,
		})
	}

	writeData(w, out)
}

// loadCached returns the cached days for the given range, or nil when
// caching is off or the entry is missing.
func (h *Handlers) loadCached(label string, req request) *cache.ScheduleEntry {
	if h.cache == nil {
		return nil
	}
	return h.cache.LoadSchedule(label, req.coords, req.params)
}

// saveCached stores computed days; failures are logged, never surfaced.
func (h *Handlers) saveCached(label string, req request, days []*schedule.Day) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SaveSchedule(label, req.coords, req.params, days); err != nil {
		h.logger.Warn().Err(err).Str("range", label).Msg("failed to write schedule cache")
	}
}
