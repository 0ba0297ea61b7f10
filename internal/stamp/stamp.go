// Package stamp builds raw calendar fields from loosely formatted input.
//
// Numbers are pulled out of the input by digit extraction: every run of
// digits and '.' is one number, everything else is a separator. A template
// says which field each number fills, in order:
//
//	Parse("2025/10/02 13h05", "y m d h mi") // year 2025 ... minute 5
//
// Template tokens are y, m, d, h, s for year, month, day, hour and second;
// minute is mi, M or i. Upper case Y, D, H and S are accepted too; m and M
// are different fields.
package stamp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zapponejosh/rawtime/internal/calendar"
)

// Field is one template slot.
type Field int

const (
	Year Field = iota
	Month
	Day
	Hour
	Minute
	Second
)

var fieldTokens = [...]string{"y", "m", "d", "h", "mi", "s"}

// String returns the canonical token.
func (f Field) String() string {
	if f < Year || f > Second {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldTokens[f]
}

// Template is an ordered list of fields.
type Template []Field

var (
	// Canonical is y, m, d, h, mi, s.
	Canonical = Template{Year, Month, Day, Hour, Minute, Second}
	// Reversed is s, mi, h, d, m, y.
	Reversed = Template{Second, Minute, Hour, Day, Month, Year}
)

// String renders the template as space separated canonical tokens.
func (t Template) String() string {
	parts := make([]string, len(t))
	for i, f := range t {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// lookupToken maps a single token to its field.
func lookupToken(tok string) (Field, bool) {
	switch tok {
	case "y", "Y":
		return Year, true
	case "m":
		return Month, true
	case "d", "D":
		return Day, true
	case "h", "H":
		return Hour, true
	case "mi", "Mi", "MI", "M", "i", "I":
		return Minute, true
	case "s", "S":
		return Second, true
	}
	return 0, false
}

// ParseTemplate scans a template string. Letters are read as tokens, taking
// "mi" before "m"; any other character separates tokens. Unknown letters and
// repeated fields are rejected with ErrInvalidField.
func ParseTemplate(s string) (Template, error) {
	var tokens []string
	for i := 0; i < len(s); {
		c := s[i]
		if !isLetter(c) {
			i++
			continue
		}
		if i+1 < len(s) && (c == 'm' || c == 'M') && (s[i+1] == 'i' || s[i+1] == 'I') {
			tokens = append(tokens, s[i:i+2])
			i += 2
			continue
		}
		tokens = append(tokens, s[i:i+1])
		i++
	}

	t, err := TemplateFromTokens(tokens)
	if err != nil {
		if e, ok := err.(*calendar.Error); ok {
			e.Op = "ParseTemplate"
			e.Context = fmt.Sprintf("template %q", s)
		}
		return nil, err
	}
	return t, nil
}

// TemplateFromTokens builds a template from explicit tokens, e.g.
// []string{"y", "m", "d"}.
func TemplateFromTokens(tokens []string) (Template, error) {
	if len(tokens) == 0 {
		return nil, calendar.NewError(calendar.ErrInvalidField, "TemplateFromTokens", tokens, "",
			"a template must name at least one of y, m, d, h, mi, s")
	}

	seen := make(map[Field]bool, len(tokens))
	t := make(Template, 0, len(tokens))
	for _, tok := range tokens {
		f, ok := lookupToken(tok)
		if !ok {
			return nil, calendar.NewError(calendar.ErrInvalidField, "TemplateFromTokens", tok,
				fmt.Sprintf("tokens %v", tokens), "use one of y, m, d, h, mi (or M, i), s")
		}
		if seen[f] {
			return nil, calendar.NewError(calendar.ErrInvalidField, "TemplateFromTokens", tok,
				fmt.Sprintf("tokens %v", tokens), "each field may appear only once")
		}
		seen[f] = true
		t = append(t, f)
	}
	return t, nil
}

// ExtractValues pulls every run of digits and '.' out of s as a number.
// A run that is not a valid number (".", "1.2.3") is an ErrInvalidField.
func ExtractValues(s string) ([]float64, error) {
	var values []float64
	start := -1

	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		run := s[start:end]
		start = -1
		v, err := strconv.ParseFloat(run, 64)
		if err != nil {
			return calendar.NewError(calendar.ErrInvalidField, "ExtractValues", run,
				fmt.Sprintf("input %q", s), "numbers may contain at most one '.'")
		}
		values = append(values, v)
		return nil
	}

	for i := 0; i < len(s); i++ {
		if isNumeric(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if err := flush(i); err != nil {
			return nil, err
		}
	}
	if err := flush(len(s)); err != nil {
		return nil, err
	}

	return values, nil
}

// Apply assigns values to the template's fields, starting from
// calendar.DefaultFields. The counts must match exactly: extra values are
// ErrTooManyValues, extra template fields are ErrTooManyParameters.
func (t Template) Apply(values []float64) (calendar.Fields, error) {
	ctx := fmt.Sprintf("template %q, %d values", t.String(), len(values))
	switch {
	case len(values) > len(t):
		return calendar.Fields{}, calendar.NewError(calendar.ErrTooManyValues, "Template.Apply", values, ctx,
			"remove the extra numbers or add fields to the template")
	case len(values) < len(t):
		return calendar.Fields{}, calendar.NewError(calendar.ErrTooManyParameters, "Template.Apply", values, ctx,
			"supply one number per template field or shorten the template")
	}

	f := calendar.DefaultFields()
	slots := [...]*float64{&f.Year, &f.Month, &f.Day, &f.Hour, &f.Minute, &f.Second}
	for i, field := range t {
		*slots[field] = values[i]
	}
	return f, nil
}

// Parse extracts the numbers from input and applies them to the template
// string.
func Parse(input, template string) (calendar.Fields, error) {
	t, err := ParseTemplate(template)
	if err != nil {
		return calendar.Fields{}, err
	}
	values, err := ExtractValues(input)
	if err != nil {
		return calendar.Fields{}, err
	}
	return t.Apply(values)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNumeric(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}
