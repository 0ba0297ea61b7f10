package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/clock"
)

// execute runs the CLI with args against a fixed clock and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"ENV", "DRIFT", "ERA_STYLE", "MIN_YEAR", "MIN_MONTH", "MIN_DAY", "LOG_LEVEL", "LOG_FORMAT", "PORT"} {
		t.Setenv(key, "")
	}

	cmd := newRootCmd(clock.Fixed(calendar.Fields{Year: 2025, Month: 9, Day: 19, Hour: 12}))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"encode", []string{"encode", "2025", "10", "2"}, "(2025-10-02 00:00:00) AC\n"},
		{"encode reverse", []string{"encode", "--reverse", "0", "0", "0", "2", "10", "2025"}, "(2025-10-02 00:00:00) AC\n"},
		{"encode BC dotted", []string{"encode", "--era", "BC", "--style", "dotted", "--kind", "date", "44", "3", "15"}, "(0044-03-15) B.C\n"},
		{"decode", []string{"decode", "63926582400", "--kind", "date"}, "(2025-10-02) AC\n"},
		{"decode negative", []string{"decode", "--", "-86400"}, "(0000-01-02 00:00:00) BC\n"},
		{"decode with drift", []string{"decode", "--drift", "86400", "--kind", "date", "63926582400"}, "(2025-10-02) AC\n"},
		{"stamp", []string{"stamp", "02/10/2025", "-t", "d m y", "--kind", "date"}, "(2025-10-02) AC\n"},
		{"now", []string{"now"}, "(2025-09-19 12:00:00) AC\n"},
		{"calc add", []string{"calc", "63925502400", "add", "86400"}, "(2025-09-20 12:00:00) AC\n"},
		{"calc mod", []string{"calc", "--", "-7", "mod", "3"}, "2\n"},
		{"calc compare", []string{"calc", "5", "lt", "6"}, "true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"too many values", []string{"stamp", "1 2 3", "-t", "y m"}, calendar.ErrTooManyValues},
		{"too many parameters", []string{"stamp", "2025", "-t", "y m"}, calendar.ErrTooManyParameters},
		{"division by zero", []string{"calc", "1", "div", "0"}, calendar.ErrDivisionByZero},
		{"unknown op", []string{"calc", "1", "xor", "1"}, calendar.ErrInvalidField},
		{"bad era", []string{"encode", "--era", "CE", "1"}, calendar.ErrInvalidField},
		{"bad kind", []string{"decode", "--kind", "week", "1"}, calendar.ErrInvalidField},
		{"bad style", []string{"decode", "--style", "roman", "1"}, calendar.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Execute() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := execute(t, "decode", "noon"); err == nil {
		t.Error("decode of a non-number should fail")
	}
	if _, err := execute(t, "encode", "1", "2", "3", "4", "5", "6", "7"); err == nil {
		t.Error("encode with seven values should fail")
	}
}

func TestEncodeJSON(t *testing.T) {
	out, err := execute(t, "encode", "--json", "2025", "10", "2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var got instantOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	want := instantOutput{
		Rawtime:   63926582400,
		Era:       "AC",
		Fields:    calendar.Tuple{Year: 2025, Month: 10, Day: 2},
		Formatted: "(2025-10-02 00:00:00) AC",
		Weekday:   "Thursday",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract(t *testing.T) {
	out, err := execute(t, "extract", "63926582400", "--mode", "isolated")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{
		"year    (2025-01-01 00:00:00) AC",
		"month   (0001-10-01 00:00:00) AC",
		"date    (2025-10-02 00:00:00) AC",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("isolated output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "extract", "--json", "--mode", "elapsed", "172800")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var elapsed map[string]string
	if err := json.Unmarshal([]byte(out), &elapsed); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if elapsed["day"] != "2" || elapsed["hour"] != "48" || elapsed["date"] != "2" {
		t.Errorf("elapsed = %v", elapsed)
	}

	if _, err := execute(t, "extract", "--mode", "weeks", "1"); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestFeasts(t *testing.T) {
	out, err := execute(t, "feasts", "2025")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{
		"Easter         (2025-04-20) AC Sunday",
		"Pentecost      (2025-06-08) AC Sunday",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("feasts output missing %q:\n%s", want, out)
		}
	}
}
