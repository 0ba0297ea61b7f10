package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/render"
)

func newEncodeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode VALUE...",
		Short: "Encode up to six field values (y m d h mi s) into rawtime",
		Long: "Encode fills year, month, day, hour, minute and second from the values in order.\n" +
			"Missing trailing fields take their defaults. With --reverse the order is s mi h d m y.",
		Args: cobra.RangeArgs(1, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseNumbers(args)
			if err != nil {
				return err
			}
			reverse, _ := cmd.Flags().GetBool("reverse")

			i, err := opts.engine.FromValues(values, opts.era, opts.drift, reverse)
			if err != nil {
				return err
			}
			return opts.printInstant(cmd.OutOrStdout(), i)
		},
	}
	cmd.Flags().Bool("reverse", false, "read values as s mi h d m y")
	return cmd
}

func newDecodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "decode SECONDS",
		Short: "Decode rawtime seconds into a calendar date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", args[0])
			}
			i, err := opts.engine.FromSeconds(seconds, opts.drift)
			if err != nil {
				return err
			}
			return opts.printInstant(cmd.OutOrStdout(), i)
		},
	}
}

func newStampCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stamp INPUT",
		Short: "Parse a loosely formatted date with a template",
		Long: "Stamp pulls every number out of INPUT and assigns them to the template fields in order.\n" +
			"Template tokens are y, m, d, h, mi (or M, i) and s.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, _ := cmd.Flags().GetString("template")
			i, err := opts.engine.FromStamp(args[0], template, opts.era, opts.drift)
			if err != nil {
				return err
			}
			return opts.printInstant(cmd.OutOrStdout(), i)
		},
	}
	cmd.Flags().StringP("template", "t", "y m d h mi s", "field order of the numbers in INPUT")
	return cmd
}

func newNowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Print the current instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := opts.engine.Now(opts.clock, opts.drift)
			if err != nil {
				return err
			}
			return opts.printInstant(cmd.OutOrStdout(), i)
		},
	}
}

func newFeastsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "feasts YEAR",
		Short: "List the moveable feasts of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil || year < 1 {
				return fmt.Errorf("invalid year %q: use a positive integer", args[0])
			}

			feasts := []struct {
				name string
				date calendar.Tuple
			}{
				{"Ash Wednesday", calendar.AshWednesday(year)},
				{"Easter", calendar.Easter(year)},
				{"Ascension", calendar.Ascension(year)},
				{"Pentecost", calendar.Pentecost(year)},
				{"Advent", calendar.Advent(year)},
			}

			w := cmd.OutOrStdout()
			for _, f := range feasts {
				i, err := opts.engine.FromTuple(f.date.Fields(), calendar.AC, opts.drift)
				if err != nil {
					return err
				}
				s, err := i.Format(render.Date, opts.style)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-14s %s %s\n", f.name, s, calendar.DayName(f.date))
			}
			return nil
		},
	}
}
