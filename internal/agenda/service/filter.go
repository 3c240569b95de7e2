package service

import (
	"github.com/tenrocafes/agenda/internal/agenda/datefmt"
	"github.com/tenrocafes/agenda/internal/agenda/types"
)

// FilterByPeriod keeps the records whose service date falls within
// [start, end] inclusive, preserving input order. Bounds may arrive in the
// transport form (yyyy-mm-dd) or canonical form; a missing or unparseable
// bound disables filtering entirely and the input comes back unchanged.
// Under a valid range, records whose own date does not parse are dropped.
func FilterByPeriod(records []types.ServiceRecord, start, end string) []types.ServiceRecord {
	from, errFrom := datefmt.ParseDate(datefmt.NormalizeDate(start))
	to, errTo := datefmt.ParseDate(datefmt.NormalizeDate(end))
	if errFrom != nil || errTo != nil {
		return records
	}

	out := make([]types.ServiceRecord, 0, len(records))
	for _, r := range records {
		d, err := datefmt.ParseDate(r.ServiceDate)
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}
