package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/rawtime/internal/instant"
)

func newCalcCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "calc SECONDS OP OPERAND",
		Short: "Apply an arithmetic or comparison operator to an instant",
		Long: fmt.Sprintf("Calc builds an instant from SECONDS and --drift and applies OP with a number\n"+
			"of seconds. OP is one of %v.", instant.Ops),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", args[0])
			}
			op, err := instant.ParseOp(args[1])
			if err != nil {
				return err
			}
			operand, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("operand %q is not a number", args[2])
			}

			left, err := opts.engine.FromSeconds(seconds, opts.drift)
			if err != nil {
				return err
			}
			res, err := left.Eval(op, operand)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch res.Type {
			case instant.ResultInstant:
				return opts.printInstant(w, res.Instant)
			case instant.ResultNumber:
				_, err = fmt.Fprintln(w, strconv.FormatFloat(res.Number, 'f', -1, 64))
			case instant.ResultBool:
				_, err = fmt.Fprintln(w, res.Bool)
			}
			return err
		},
	}
}

// extractModes lists the accepted --mode values.
var extractModes = []string{"components", "elapsed", "isolated"}

func newExtractCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract SECONDS",
		Short: "Break an instant into components, elapsed amounts or isolated instants",
		Long: "components: the decoded calendar fields.\n" +
			"elapsed:    the whole rawtime expressed in each unit, signed by era.\n" +
			"isolated:   one instant per field, with the other fields at their defaults.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", args[0])
			}
			mode, _ := cmd.Flags().GetString("mode")

			i, err := opts.engine.FromSeconds(seconds, opts.drift)
			if err != nil {
				return err
			}
			rows, err := extract(i, mode)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.json {
				m := make(map[string]string, len(rows))
				for _, r := range rows {
					m[r.name] = r.value
				}
				return writeJSON(w, m)
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%-7s %s\n", r.name, r.value)
			}
			return nil
		},
	}
	cmd.Flags().StringP("mode", "m", "components", fmt.Sprintf("one of %v", extractModes))
	return cmd
}

type row struct {
	name  string
	value string
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// extract renders the fields of i in the given mode.
func extract(i instant.Instant, mode string) ([]row, error) {
	switch mode {
	case "components":
		c, err := i.Components()
		if err != nil {
			return nil, err
		}
		return []row{
			{"year", num(c.Year())},
			{"month", num(c.Month())},
			{"day", num(c.Day())},
			{"hour", num(c.Hour())},
			{"minute", num(c.Minute())},
			{"second", num(c.Second())},
		}, nil

	case "elapsed":
		e := i.Elapsed()
		return []row{
			{"year", num(e.Year())},
			{"month", num(e.Month())},
			{"day", num(e.Day())},
			{"hour", num(e.Hour())},
			{"minute", num(e.Minute())},
			{"second", num(e.Second())},
			{"date", num(e.Date())},
			{"time", num(e.Time())},
		}, nil

	case "isolated":
		s, err := i.Isolated()
		if err != nil {
			return nil, err
		}
		parts := []struct {
			name string
			fn   func() (instant.Instant, error)
		}{
			{"year", s.Year},
			{"month", s.Month},
			{"day", s.Day},
			{"hour", s.Hour},
			{"minute", s.Minute},
			{"second", s.Second},
			{"date", s.Date},
			{"time", s.Time},
		}
		rows := make([]row, 0, len(parts))
		for _, p := range parts {
			sub, err := p.fn()
			if err != nil {
				return nil, fmt.Errorf("isolate %s: %w", p.name, err)
			}
			rows = append(rows, row{p.name, sub.String()})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unknown mode %q: use one of %v", mode, extractModes)
}
