// Package recurrence computes when a service visit is next due.
package recurrence

import (
	"strconv"
	"strings"
	"time"

	"github.com/tenrocafes/agenda/internal/agenda/datefmt"
)

// Policy is a parsed recurrence interval. Exactly one of Days or Months is
// non-zero.
type Policy struct {
	Days   int
	Months int
}

// The fixed symbolic periods a record may carry. Anything else must use the
// "custom:<N months>" form.
var fixedPolicies = map[string]Policy{
	"15 days":   {Days: 15},
	"1 month":   {Months: 1},
	"2 months":  {Months: 2},
	"3 months":  {Months: 3},
	"6 months":  {Months: 6},
	"12 months": {Months: 12},
}

// ParsePolicy maps a symbolic period onto a Policy. Custom periods are
// written "custom:4 months" (the unit word is optional) and require a
// positive month count. Unrecognized input reports ok=false.
func ParsePolicy(s string) (Policy, bool) {
	s = strings.TrimSpace(s)
	if p, ok := fixedPolicies[s]; ok {
		return p, true
	}
	if rest, ok := strings.CutPrefix(s, "custom:"); ok {
		rest = strings.TrimSuffix(strings.TrimSpace(rest), "months")
		rest = strings.TrimSuffix(rest, "month")
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n <= 0 {
			return Policy{}, false
		}
		return Policy{Months: n}, true
	}
	return Policy{}, false
}

// NextDue derives the canonical next-due date from a canonical service
// date/time and a symbolic policy. An unparseable base timestamp or an
// unrecognized policy yields "" — callers treat empty as "unknown, leave
// blank", never as an error.
func NextDue(serviceDate, serviceTime, policy string) string {
	p, ok := ParsePolicy(policy)
	if !ok {
		return ""
	}
	base, err := datefmt.ParseDateTime(serviceDate, serviceTime)
	if err != nil {
		return ""
	}

	var next time.Time
	if p.Days > 0 {
		// Day policies are pure elapsed time, no calendar-month logic.
		next = base.Add(time.Duration(p.Days) * 24 * time.Hour)
	} else {
		next = AddMonths(base, p.Months)
	}
	return datefmt.FormatDate(next)
}

// AddMonths advances t by whole calendar months, clamping the day-of-month
// to the last valid day of the target month. 31 Jan + 1 month lands on
// 28 or 29 Feb, never on 2/3 Mar the way time.AddDate would normalize it.
func AddMonths(t time.Time, months int) time.Time {
	month := int(t.Month()) - 1 + months
	year := t.Year() + month/12
	month = month%12 + 1

	day := t.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if isLeap(year) {
			return 29
		}
		return 28
	}
}

// isLeap applies the Gregorian rule: divisible by 4, except centuries
// unless divisible by 400.
func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
