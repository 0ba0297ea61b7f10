package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/clock"
	"github.com/zapponejosh/rawtime/internal/config"
	"github.com/zapponejosh/rawtime/internal/instant"
	"github.com/zapponejosh/rawtime/internal/logger"
	"github.com/zapponejosh/rawtime/internal/render"
)

// options is the state shared by every subcommand, filled in from the
// environment and the persistent flags before a subcommand runs.
type options struct {
	engine *instant.Engine
	clock  clock.Clock
	log    *slog.Logger

	drift float64
	era   calendar.Era
	kind  render.Kind
	style render.Style
	json  bool
}

// newRootCmd builds the command tree. c is the clock read by "now".
func newRootCmd(c clock.Clock) *cobra.Command {
	opts := &options{clock: c}

	root := &cobra.Command{
		Use:   "rawtime",
		Short: "Convert between rawtime seconds and calendar dates",
		Long: "rawtime converts between signed rawtime seconds and proleptic Gregorian dates.\n" +
			"Negative rawtime is BC. Pass negative numbers after -- so they are not read as flags:\n\n" +
			"  rawtime decode -- -86400",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.Float64("drift", 0, "drift in seconds (default from DRIFT)")
	pf.String("era", "AC", "era of the input fields: AC or BC")
	pf.String("kind", "full", "projection: full, date, time, year, month, day, hour, minute, second")
	pf.String("style", "", "era labels: plain or dotted (default from ERA_STYLE)")
	pf.Bool("json", false, "print JSON instead of the formatted instant")
	pf.BoolP("verbose", "v", false, "log engine details to stderr")

	root.AddCommand(
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newStampCmd(opts),
		newNowCmd(opts),
		newCalcCmd(opts),
		newExtractCmd(opts),
		newFeastsCmd(opts),
	)
	return root
}

// load reads configuration and the persistent flags into o.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	o.engine = instant.NewEngine(cfg.Floors())

	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	level := "warn"
	if verbose {
		level = "debug"
	}
	o.log = logger.New(cmd.ErrOrStderr(), level, "text")

	o.drift = cfg.Drift
	if flags.Changed("drift") {
		o.drift, _ = flags.GetFloat64("drift")
	}

	eraFlag, _ := flags.GetString("era")
	if o.era, err = calendar.ParseEra(eraFlag); err != nil {
		return err
	}

	kindFlag, _ := flags.GetString("kind")
	if o.kind, err = render.ParseKind(kindFlag); err != nil {
		return err
	}

	o.style = cfg.Style()
	if s, _ := flags.GetString("style"); s != "" {
		o.style = render.Style(s)
		if !o.style.Valid() {
			return calendar.NewError(calendar.ErrInvalidField, "style", s, "", "style must be plain or dotted")
		}
	}

	o.json, _ = flags.GetBool("json")
	return nil
}

// instantOutput is the JSON form of a printed instant.
type instantOutput struct {
	Rawtime   float64        `json:"rawtime"`
	Drift     float64        `json:"drift"`
	Era       string         `json:"era"`
	Fields    calendar.Tuple `json:"fields"`
	Formatted string         `json:"formatted"`
	Weekday   string         `json:"weekday,omitempty"`
}

// printInstant writes i in the selected kind and style, or as JSON.
func (o *options) printInstant(w io.Writer, i instant.Instant) error {
	o.log.Debug("instant", logger.Instant("instant", i))

	p, err := i.Project(o.kind)
	if err != nil {
		return err
	}
	formatted, err := p.Format(o.style)
	if err != nil {
		return err
	}

	if !o.json {
		_, err := fmt.Fprintln(w, formatted)
		return err
	}

	out := instantOutput{
		Rawtime:   i.Rawtime(),
		Drift:     i.Drift(),
		Era:       p.Era.String(),
		Fields:    p.Fields,
		Formatted: formatted,
	}
	if p.Era == calendar.AC {
		out.Weekday = calendar.DayName(p.Fields)
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseNumbers converts positional arguments to float64.
func parseNumbers(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for idx, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %q is not a number", idx+1, a)
		}
		values[idx] = v
	}
	return values, nil
}
