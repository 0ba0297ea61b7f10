package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/clock"
	"github.com/zapponejosh/rawtime/internal/config"
	"github.com/zapponejosh/rawtime/internal/database"
	"github.com/zapponejosh/rawtime/internal/instant"
	"github.com/zapponejosh/rawtime/internal/logger"
	"github.com/zapponejosh/rawtime/internal/render"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	engine *instant.Engine
	clock  clock.Clock
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance reading the system clock.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		engine: instant.NewEngine(cfg.Floors()),
		clock:  clock.System,
		cfg:    cfg,
		logger: logger,
	}
}

// WithClock returns a copy of h that reads c instead of the system clock.
func (h *Handlers) WithClock(c clock.Clock) *Handlers {
	cp := *h
	cp.clock = c
	return &cp
}

// =============================================================================
// Response Types
// =============================================================================

// InstantResponse describes an Instant.
type InstantResponse struct {
	Rawtime   float64        `json:"rawtime"`
	Drift     float64        `json:"drift"`
	Era       string         `json:"era"`
	Fields    calendar.Tuple `json:"fields"`
	Kind      string         `json:"kind"`
	Formatted string         `json:"formatted"`
	Weekday   string         `json:"weekday,omitempty"`
}

// view is the projection kind and era style requested for a response.
type view struct {
	kind  render.Kind
	style render.Style
}

// describe projects i for a response. Weekdays are only given for AC dates.
func describe(i instant.Instant, v view) (*InstantResponse, error) {
	p, err := i.Project(v.kind)
	if err != nil {
		return nil, err
	}
	formatted, err := p.Format(v.style)
	if err != nil {
		return nil, err
	}

	resp := &InstantResponse{
		Rawtime:   i.Rawtime(),
		Drift:     i.Drift(),
		Era:       p.Era.String(),
		Fields:    p.Fields,
		Kind:      p.Kind.String(),
		Formatted: formatted,
	}
	if p.Era == calendar.AC {
		resp.Weekday = calendar.DayName(p.Fields)
	}
	return resp, nil
}

// =============================================================================
// Request Helpers
// =============================================================================

// decodeJSON reads a JSON body into dst. Numbers in interface fields are
// kept as json.Number.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// viewParams reads ?kind= and ?style=, defaulting to the full projection and
// the configured era style.
func (h *Handlers) viewParams(r *http.Request) (view, error) {
	kind, err := render.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		return view{}, err
	}

	style := h.cfg.Style()
	if s := r.URL.Query().Get("style"); s != "" {
		style = render.Style(s)
		if !style.Valid() {
			return view{}, calendar.NewError(calendar.ErrInvalidField, "style", s, "",
				"style must be plain or dotted")
		}
	}
	return view{kind: kind, style: style}, nil
}

// driftParam reads ?drift=, defaulting to the configured drift.
func (h *Handlers) driftParam(r *http.Request) (float64, error) {
	s := r.URL.Query().Get("drift")
	if s == "" {
		return h.cfg.Drift, nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, calendar.NewError(calendar.ErrInvalidAnchorValue, "drift", s, "",
			"drift must be a finite number of seconds")
	}
	return d, nil
}

// resolveDrift turns a JSON drift value into seconds; a missing drift is the
// configured default.
func (h *Handlers) resolveDrift(v any) (float64, error) {
	if v == nil {
		return h.cfg.Drift, nil
	}
	return instant.ResolveAnchor(v)
}

// =============================================================================
// Health
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.log(ctx).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// =============================================================================
// Conversion Handlers
// =============================================================================

// EncodeRequest is the body of POST /api/v1/encode. Values are up to six
// numbers in y, m, d, h, mi, s order (s ... y when reverse is set).
type EncodeRequest struct {
	Values  []float64 `json:"values"`
	Reverse bool      `json:"reverse"`
	Era     string    `json:"era"`
	Drift   any       `json:"drift"`
}

// Encode handles POST /api/v1/encode
func (h *Handlers) Encode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	v, err := h.viewParams(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	era, err := calendar.ParseEra(req.Era)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	drift, err := h.resolveDrift(req.Drift)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	i, err := h.engine.FromValues(req.Values, era, drift, req.Reverse)
	if err != nil {
		h.engineError(w, r, "encode failed", err)
		return
	}
	h.writeInstant(w, r, i, v)
}

// Decode handles GET /api/v1/decode/{seconds}?drift=&kind=&style=
func (h *Handlers) Decode(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "seconds")
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid seconds: %s", raw))
		return
	}

	v, err := h.viewParams(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	drift, err := h.driftParam(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	i, err := h.engine.FromSeconds(seconds, drift)
	if err != nil {
		h.engineError(w, r, "decode failed", err)
		return
	}
	h.writeInstant(w, r, i, v)
}

// StampRequest is the body of POST /api/v1/stamp.
type StampRequest struct {
	Input    string `json:"input"`
	Template string `json:"template"`
	Era      string `json:"era"`
	Drift    any    `json:"drift"`
}

// Stamp handles POST /api/v1/stamp
func (h *Handlers) Stamp(w http.ResponseWriter, r *http.Request) {
	var req StampRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Template == "" {
		req.Template = "y m d h mi s"
	}

	v, err := h.viewParams(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	era, err := calendar.ParseEra(req.Era)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	drift, err := h.resolveDrift(req.Drift)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	i, err := h.engine.FromStamp(req.Input, req.Template, era, drift)
	if err != nil {
		h.engineError(w, r, "stamp failed", err)
		return
	}
	h.writeInstant(w, r, i, v)
}

// Now handles GET /api/v1/now?drift=&kind=&style=
func (h *Handlers) Now(w http.ResponseWriter, r *http.Request) {
	v, err := h.viewParams(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	drift, err := h.driftParam(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	i, err := h.engine.Now(h.clock, drift)
	if err != nil {
		h.engineError(w, r, "now failed", err)
		return
	}
	h.writeInstant(w, r, i, v)
}

// CalcRequest is the body of POST /api/v1/calc. The left side is built from
// seconds and drift; the operand is a number of seconds.
type CalcRequest struct {
	Seconds float64 `json:"seconds"`
	Drift   any     `json:"drift"`
	Op      string  `json:"op"`
	Operand any     `json:"operand"`
}

// CalcResponse holds exactly one of Instant, Number or Bool.
type CalcResponse struct {
	Op      string           `json:"op"`
	Type    string           `json:"type"`
	Instant *InstantResponse `json:"instant,omitempty"`
	Number  *float64         `json:"number,omitempty"`
	Bool    *bool            `json:"bool,omitempty"`
}

// Calc handles POST /api/v1/calc
func (h *Handlers) Calc(w http.ResponseWriter, r *http.Request) {
	var req CalcRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	v, err := h.viewParams(r)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	op, err := instant.ParseOp(req.Op)
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	drift, err := h.resolveDrift(req.Drift)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	left, err := h.engine.FromSeconds(req.Seconds, drift)
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	res, err := left.Eval(op, req.Operand)
	if err != nil {
		h.engineError(w, r, "calc failed", err)
		return
	}

	resp := CalcResponse{Op: string(op)}
	switch res.Type {
	case instant.ResultInstant:
		resp.Type = "instant"
		resp.Instant, err = describe(res.Instant, v)
		if err != nil {
			h.engineError(w, r, "calc failed", err)
			return
		}
	case instant.ResultNumber:
		resp.Type = "number"
		resp.Number = &res.Number
	case instant.ResultBool:
		resp.Type = "bool"
		resp.Bool = &res.Bool
	}
	WriteSuccess(w, resp)
}

// FeastsResponse lists the moveable feasts of a year.
type FeastsResponse struct {
	Year         int              `json:"year"`
	Advent       *InstantResponse `json:"advent"`
	AshWednesday *InstantResponse `json:"ash_wednesday"`
	Easter       *InstantResponse `json:"easter"`
	Ascension    *InstantResponse `json:"ascension"`
	Pentecost    *InstantResponse `json:"pentecost"`
}

// Feasts handles GET /api/v1/feasts/{year}
func (h *Handlers) Feasts(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "year")
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %s. Use a positive integer", raw))
		return
	}

	v := view{kind: render.Date, style: h.cfg.Style()}
	resp := FeastsResponse{Year: year}
	targets := []struct {
		dst **InstantResponse
		t   calendar.Tuple
	}{
		{&resp.Advent, calendar.Advent(year)},
		{&resp.AshWednesday, calendar.AshWednesday(year)},
		{&resp.Easter, calendar.Easter(year)},
		{&resp.Ascension, calendar.Ascension(year)},
		{&resp.Pentecost, calendar.Pentecost(year)},
	}
	for _, tg := range targets {
		i, err := h.engine.FromTuple(tg.t.Fields(), calendar.AC, 0)
		if err != nil {
			h.engineError(w, r, "feasts failed", err)
			return
		}
		if *tg.dst, err = describe(i, v); err != nil {
			h.engineError(w, r, "feasts failed", err)
			return
		}
	}

	WriteSuccess(w, resp)
}

// =============================================================================
// Shared
// =============================================================================

func (h *Handlers) writeInstant(w http.ResponseWriter, r *http.Request, i instant.Instant, v view) {
	resp, err := describe(i, v)
	if err != nil {
		h.engineError(w, r, "projection failed", err)
		return
	}
	h.log(r.Context()).Debug("instant computed", logger.Instant("instant", i))
	WriteSuccess(w, resp)
}

// log returns the handler logger tagged with the request ID.
func (h *Handlers) log(ctx context.Context) *slog.Logger {
	if id := logger.RequestID(ctx); id != "" {
		return h.logger.With(slog.String("request_id", id))
	}
	return h.logger
}

// engineError logs and writes an engine error. Engine errors are bad input
// and are logged at debug level; anything else is logged as an error.
func (h *Handlers) engineError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if kind := calendar.KindName(err); kind != "" {
		h.log(r.Context()).Debug(msg, slog.Any("error", err), slog.String("kind", kind))
	} else {
		h.log(r.Context()).Error(msg, slog.Any("error", err))
	}
	WriteEngineError(w, err)
}
