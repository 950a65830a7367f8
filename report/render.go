package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON serializes v, indented when indent is set.
func JSON(v any, indent bool) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	if indent {
		data = pretty.Pretty(data)
	}
	return data, nil
}

// Text writes a listing of each entity's object-level history.
func Text(w io.Writer, entities []Entity) error {
	title := cases.Title(language.Und)
	for i, e := range entities {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s (%s, %s)\n", title.String(e.Name), e.Mode, pluralCalls(len(e.Calls))); err != nil {
			return err
		}
		for n, c := range e.Calls {
			if _, err := fmt.Fprintf(w, "  %d. %s\n", n+1, Line(c)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Line formats a single call as name(args) -> result [duration].
func Line(c Call) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = formatValue(a)
	}

	var result string
	switch c.Status {
	case StatusFailed:
		result = "!! " + c.Error
	case StatusPending:
		result = "..."
	default:
		result = "-> " + formatValue(c.ReturnValue)
	}

	return fmt.Sprintf("%s(%s) %s [%s]", c.Name, strings.Join(args, ", "), result, Duration(c))
}

// Duration formats the call's duration with an SI prefix, e.g. "50 ms".
func Duration(c Call) string {
	return humanize.SIWithDigits(c.Time.Seconds(), 2, "s")
}

func formatValue(v any) string {
	if v == nil {
		return "undefined"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func pluralCalls(n int) string {
	if n == 1 {
		return "1 call"
	}
	return humanize.Comma(int64(n)) + " calls"
}
