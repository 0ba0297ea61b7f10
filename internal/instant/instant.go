// Package instant provides Instant, a point in time held as a signed count of
// seconds ("rawtime") with arithmetic, comparison and calendar views.
//
// Drift shifts the reference point: rawtime counts seconds from an anchor
// that lies drift seconds after the calendar epoch. The era sign belongs to
// the calendar position, so a tuple encodes to
//
//	rawtime = ±(calendar seconds) - drift
//
// and decodes from rawtime + drift, whose sign is the era (negative is BC).
// With no drift the sign of rawtime itself is the era.
//
// Instants are values. No method modifies its receiver or its arguments;
// arithmetic and extraction always produce new values.
package instant

import (
	"fmt"
	"math"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/clock"
	"github.com/zapponejosh/rawtime/internal/render"
	"github.com/zapponejosh/rawtime/internal/stamp"
)

// Instant is a point in time.
type Instant struct {
	rawtime float64
	drift   float64
	floors  calendar.Floors
}

// Engine constructs Instants with a given set of normalizer floors.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	floors calendar.Floors
	norm   *calendar.Normalizer
}

// NewEngine creates an Engine whose normalizer clamps to floors.
func NewEngine(floors calendar.Floors) *Engine {
	return &Engine{
		floors: floors,
		norm:   calendar.NewNormalizer(floors),
	}
}

// std backs the package-level constructors.
var std = NewEngine(calendar.DefaultFloors())

// Rawtime returns the signed seconds value.
func (i Instant) Rawtime() float64 {
	return i.rawtime
}

// Drift returns the anchor offset the Instant was built with.
func (i Instant) Drift() float64 {
	return i.drift
}

// Era returns BC when the calendar position is negative, AC otherwise.
func (i Instant) Era() calendar.Era {
	return calendar.EraOf(i.position())
}

// position is rawtime with drift added back: signed seconds since the
// calendar epoch. Zero drift leaves rawtime untouched so that -0 stays BC.
func (i Instant) position() float64 {
	if i.drift == 0 {
		return i.rawtime
	}
	return i.rawtime + i.drift
}

// =============================================================================
// Construction
// =============================================================================

// FromTuple normalizes f, encodes it, applies the era sign, then subtracts
// drift and stores it.
func (e *Engine) FromTuple(f calendar.Fields, era calendar.Era, drift float64) (Instant, error) {
	if !isFinite(drift) {
		return Instant{}, calendar.NewError(calendar.ErrInvalidField, "FromTuple", drift, "drift",
			"drift must be a finite number")
	}
	t, err := e.norm.Normalize(f)
	if err != nil {
		return Instant{}, fmt.Errorf("normalize: %w", err)
	}

	pos, err := calendar.Encode(t, 0)
	if err != nil {
		return Instant{}, fmt.Errorf("encode: %w", err)
	}
	if era == calendar.BC {
		pos = -pos
	}

	return e.build("FromTuple", pos, drift)
}

// FromSeconds stores seconds minus drift as the rawtime directly, without a
// calendar round trip. The Instant decodes back to seconds. Values that are
// not finite or lie beyond calendar.MaxSeconds are rejected with
// ErrInvalidField.
func (e *Engine) FromSeconds(seconds, drift float64) (Instant, error) {
	if !isFinite(seconds) || !isFinite(drift) {
		return Instant{}, calendar.NewError(calendar.ErrInvalidField, "FromSeconds", seconds,
			fmt.Sprintf("drift %v", drift), "seconds and drift must be finite numbers")
	}
	return e.build("FromSeconds", seconds, drift)
}

// FromRawtime restores an Instant from a stored rawtime and drift, e.g. one
// saved by the bookmark store. No drift is subtracted.
func (e *Engine) FromRawtime(rawtime, drift float64) (Instant, error) {
	if !isFinite(rawtime) || !isFinite(drift) {
		return Instant{}, calendar.NewError(calendar.ErrInvalidField, "FromRawtime", rawtime,
			fmt.Sprintf("drift %v", drift), "rawtime and drift must be finite numbers")
	}
	i := Instant{rawtime: rawtime, drift: drift, floors: e.floors}
	if err := i.checkRange("FromRawtime"); err != nil {
		return Instant{}, err
	}
	return i, nil
}

// build turns a signed calendar position into an Instant anchored at drift.
func (e *Engine) build(op string, pos, drift float64) (Instant, error) {
	raw := pos
	if drift != 0 {
		raw = pos - drift
	}
	i := Instant{rawtime: raw, drift: drift, floors: e.floors}
	if err := i.checkRange(op); err != nil {
		return Instant{}, err
	}
	return i, nil
}

// checkRange rejects an Instant whose rawtime or calendar position is not
// finite or lies beyond calendar.MaxSeconds.
func (i Instant) checkRange(op string) error {
	for _, v := range []float64{i.rawtime, i.position()} {
		if !isFinite(v) || math.Abs(v) > calendar.MaxSeconds {
			return calendar.NewError(calendar.ErrInvalidField, op, i.rawtime,
				fmt.Sprintf("drift %v", i.drift),
				fmt.Sprintf("rawtime must be a finite number within %g seconds of the epoch", float64(calendar.MaxSeconds)))
		}
	}
	return nil
}

// FromValues builds an Instant from up to six numbers in y, m, d, h, mi, s
// order, or s, mi, h, d, m, y when reverse is set. Fields not given keep
// their defaults.
func (e *Engine) FromValues(values []float64, era calendar.Era, drift float64, reverse bool) (Instant, error) {
	template := stamp.Canonical
	if reverse {
		template = stamp.Reversed
	}
	if len(values) < len(template) {
		template = template[:len(values)]
	}

	f, err := template.Apply(values)
	if err != nil {
		return Instant{}, err
	}
	return e.FromTuple(f, era, drift)
}

// FromStamp extracts the numbers from input and assigns them to the fields
// named by template (see package stamp).
func (e *Engine) FromStamp(input, template string, era calendar.Era, drift float64) (Instant, error) {
	f, err := stamp.Parse(input, template)
	if err != nil {
		return Instant{}, err
	}
	return e.FromTuple(f, era, drift)
}

// Now builds an AC Instant from the fields reported by c.
func (e *Engine) Now(c clock.Clock, drift float64) (Instant, error) {
	return e.FromTuple(c(), calendar.AC, drift)
}

// FromTuple is Engine.FromTuple with the default floors.
func FromTuple(f calendar.Fields, era calendar.Era, drift float64) (Instant, error) {
	return std.FromTuple(f, era, drift)
}

// FromSeconds is Engine.FromSeconds with the default floors.
func FromSeconds(seconds, drift float64) (Instant, error) {
	return std.FromSeconds(seconds, drift)
}

// FromRawtime is Engine.FromRawtime with the default floors.
func FromRawtime(rawtime, drift float64) (Instant, error) {
	return std.FromRawtime(rawtime, drift)
}

// FromValues is Engine.FromValues with the default floors.
func FromValues(values []float64, era calendar.Era, drift float64, reverse bool) (Instant, error) {
	return std.FromValues(values, era, drift, reverse)
}

// FromStamp is Engine.FromStamp with the default floors.
func FromStamp(input, template string, era calendar.Era, drift float64) (Instant, error) {
	return std.FromStamp(input, template, era, drift)
}

// Now is Engine.Now with the default floors.
func Now(c clock.Clock, drift float64) (Instant, error) {
	return std.Now(c, drift)
}

// ResolveAnchor converts a drift/anchor argument to seconds. Numbers are
// used as is; an Instant contributes its rawtime. Anything else is an
// ErrInvalidAnchorValue.
func ResolveAnchor(v any) (float64, error) {
	switch a := v.(type) {
	case nil:
		return 0, nil
	case Instant:
		return a.rawtime, nil
	case *Instant:
		if a != nil {
			return a.rawtime, nil
		}
	default:
		if s, ok := scalarOf(v); ok {
			if !isFinite(float64(s)) {
				break
			}
			return float64(s), nil
		}
	}
	return 0, calendar.NewError(calendar.ErrInvalidAnchorValue, "ResolveAnchor", v,
		fmt.Sprintf("type %T", v), "pass a number of seconds or an Instant as the anchor")
}

// =============================================================================
// Projections
// =============================================================================

// Tuple decodes the Instant into its calendar fields. Drift is added back
// first and the era stripped from the result.
func (i Instant) Tuple() (calendar.Tuple, error) {
	t, err := calendar.Decode(math.Abs(i.position()), 0)
	if err != nil {
		return calendar.Tuple{}, fmt.Errorf("decode: %w", err)
	}
	return t, nil
}

// Projection is a narrowed, display-only view of an Instant. It is created
// fresh by every Project call and never feeds back into computation.
type Projection struct {
	Kind   render.Kind    `json:"kind"`
	Fields calendar.Tuple `json:"fields"`
	Era    calendar.Era   `json:"era"`
}

// Project decodes the Instant and narrows it to kind. Every call starts
// from the Instant's rawtime, never from an earlier projection.
func (i Instant) Project(kind render.Kind) (Projection, error) {
	if kind == render.Unset {
		return Projection{}, calendar.NewError(calendar.ErrInvalidField, "Project", kind.String(), "",
			"choose a projection kind such as full or date")
	}
	t, err := i.Tuple()
	if err != nil {
		return Projection{}, err
	}
	return Projection{Kind: kind, Fields: t, Era: i.Era()}, nil
}

// Format renders the projection with the given era style.
func (p Projection) Format(style render.Style) (string, error) {
	return render.Format(p.Kind, p.Fields, p.Era, style)
}

// String renders the projection with plain era labels.
func (p Projection) String() string {
	s, err := p.Format(render.Plain)
	if err != nil {
		return "(" + p.Kind.String() + ") " + p.Era.String()
	}
	return s
}

// Format projects the Instant to kind and renders it.
func (i Instant) Format(kind render.Kind, style render.Style) (string, error) {
	p, err := i.Project(kind)
	if err != nil {
		return "", err
	}
	return p.Format(style)
}

// String renders the full date and time, e.g. "(2025-10-02 00:00:00) AC".
func (i Instant) String() string {
	s, err := i.Format(render.Full, render.Plain)
	if err != nil {
		return fmt.Sprintf("(invalid rawtime %v)", i.rawtime)
	}
	return s
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
