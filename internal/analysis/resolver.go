package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"earnings-analyzer/internal/types"
)

// quarterStartMonth maps a fiscal quarter token to the first month of
// that quarter.
var quarterStartMonth = map[string]time.Month{
	"Q1": time.January,
	"Q2": time.April,
	"Q3": time.July,
	"Q4": time.October,
}

// transcriptURLPattern matches transcript URLs of the shape
// .../YYYY/MM/DD/...-qN-YYYY-earnings-call-transcript and captures the
// publication date, quarter digit, and fiscal year.
var transcriptURLPattern = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/.+-q(\d)-(\d{4})-earnings-call-transcript`)

// ResolveCallIdentity determines the call date and fiscal quarter of an
// earnings call. Explicit quarter/year parameters take precedence; the
// date is then approximated as the first day of the quarter. Failing
// that, the date encoded in the source URL is used. Malformed inputs
// fall through to the next strategy rather than erroring; when both
// strategies fail the identity has a nil date and quarter "Unknown".
func ResolveCallIdentity(quarter string, year int, sourceURL string) types.CallIdentity {
	identity := types.CallIdentity{Quarter: "Unknown"}

	if quarter != "" && year != 0 {
		normalized := strings.ToUpper(strings.TrimSpace(quarter))
		if month, ok := quarterStartMonth[normalized]; ok {
			d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			y := year
			identity.CallDate = &d
			identity.Quarter = normalized
			identity.Year = &y
			return identity
		}
	}

	match := transcriptURLPattern.FindStringSubmatch(sourceURL)
	if match == nil {
		return identity
	}

	y, _ := strconv.Atoi(match[1])
	m, _ := strconv.Atoi(match[2])
	d, _ := strconv.Atoi(match[3])
	fiscalYear, _ := strconv.Atoi(match[5])

	callDate, ok := validDate(y, m, d)
	if !ok {
		return identity
	}

	identity.CallDate = &callDate
	identity.Quarter = fmt.Sprintf("Q%s", match[4])
	identity.Year = &fiscalYear
	return identity
}

// validDate builds a UTC date and rejects numeric groups that do not
// form a real calendar date (time.Date would normalize month 13 to
// January of the next year instead of failing).
func validDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
