package punch

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "02/01/2006"

// Range is the resolved [Start, End) interval a report is computed over.
// Start and End are midnights in the reference timezone; Label is the
// human-readable description used in the report header.
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

// InvalidRangeError reports a malformed report parameter. It is a plain
// value result so callers can turn it into a corrective reply without
// unwinding through panics.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string { return e.Reason }

func invalidRange(format string, args ...any) (Range, error) {
	return Range{}, &InvalidRangeError{Reason: fmt.Sprintf(format, args...)}
}

// ResolveRange turns report parameters into a concrete Range. The current
// instant and the reference timezone are injected so resolution is
// reproducible. Branches, in priority order:
//
//	"01/06/2025 até 05/06/2025"  explicit span, end day inclusive
//	"últimos 7 dias"             last N days, today inclusive
//	"ontem"                      yesterday
//	""                           today
func ResolveRange(params string, now time.Time, loc *time.Location) (Range, error) {
	fields := strings.Fields(params)

	for _, f := range fields {
		if f != "até" {
			continue
		}
		if len(fields) != 3 || fields[1] != "até" {
			return invalidRange("o período deve ter o formato DD/MM/AAAA até DD/MM/AAAA")
		}
		start, err := time.ParseInLocation(dateLayout, fields[0], loc)
		if err != nil {
			return invalidRange("data inicial inválida: %q (use DD/MM/AAAA)", fields[0])
		}
		end, err := time.ParseInLocation(dateLayout, fields[2], loc)
		if err != nil {
			return invalidRange("data final inválida: %q (use DD/MM/AAAA)", fields[2])
		}
		if end.Before(start) {
			return invalidRange("a data final é anterior à data inicial")
		}
		return Range{
			Start: start,
			End:   end.AddDate(0, 0, 1),
			Label: fields[0] + " a " + fields[2],
		}, nil
	}

	today := dateOf(now, loc)

	if len(fields) > 0 && fields[0] == "últimos" {
		if len(fields) < 2 {
			return invalidRange("informe o número de dias, por exemplo: relatório últimos 7 dias")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n <= 0 {
			return invalidRange("número de dias inválido: %q", fields[1])
		}
		return Range{
			Start: today.AddDate(0, 0, -(n - 1)),
			End:   today.AddDate(0, 0, 1),
			Label: fmt.Sprintf("últimos %d dias", n),
		}, nil
	}

	if strings.TrimSpace(params) == "ontem" {
		yesterday := today.AddDate(0, 0, -1)
		return Range{
			Start: yesterday,
			End:   today,
			Label: "ontem (" + yesterday.Format(dateLayout) + ")",
		}, nil
	}

	return Range{
		Start: today,
		End:   today.AddDate(0, 0, 1),
		Label: "hoje (" + today.Format(dateLayout) + ")",
	}, nil
}
