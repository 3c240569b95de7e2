// Package datefmt canonicalizes the loosely formatted dates and times the
// stores type into canonical forms: dd/mm/yyyy and HH:MM (24h).
//
// Normalization is deliberately permissive: input that matches no known
// shape passes through verbatim and downstream recurrence computation fails
// soft with an empty next-due date. None of these functions return errors.
package datefmt

import (
	"strings"
	"time"
)

const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

// NormalizeDate rewrites raw into canonical dd/mm/yyyy where it can.
// Accepted shapes, in priority order: yyyy-mm-dd (10 chars), dd/mm/yyyy
// (10 chars, day/month zero-padded), and 8 pure digits read as ddmmyyyy.
// Anything else, including the empty string, comes back unchanged.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "-") && len(s) == 10 {
		if parts := strings.SplitN(s, "-", 3); len(parts) == 3 {
			return parts[2] + "/" + parts[1] + "/" + parts[0]
		}
	}
	if strings.Contains(s, "/") && len(s) == 10 {
		if parts := strings.SplitN(s, "/", 3); len(parts) == 3 {
			return pad2(parts[0]) + "/" + pad2(parts[1]) + "/" + parts[2]
		}
	}
	if isDigits(s) && len(s) == 8 {
		return s[:2] + "/" + s[2:4] + "/" + s[4:]
	}
	return s
}

// NormalizeTime rewrites raw into canonical HH:MM where it can. With a colon
// both parts are zero-padded and missing minutes default to 00. Pure digits
// of length 3-4 read as H(H)MM, length 1-2 as an hour. Anything else comes
// back unchanged.
func NormalizeTime(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		mm := "00"
		if len(parts) > 1 {
			mm = parts[1]
		}
		return pad2(parts[0]) + ":" + pad2(mm)
	}
	if isDigits(s) {
		switch len(s) {
		case 3, 4:
			s = pad4(s)
			return s[:2] + ":" + s[2:]
		case 1, 2:
			return pad2(s) + ":00"
		}
	}
	return s
}

// ParseDate parses a canonical dd/mm/yyyy string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseDateTime combines a canonical date and time into one timestamp.
func ParseDateTime(date, clock string) (time.Time, error) {
	return time.Parse(DateLayout+" "+TimeLayout, date+" "+clock)
}

// FormatDate renders t in the canonical date form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func pad2(s string) string {
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}

func pad4(s string) string {
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
