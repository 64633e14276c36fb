package scheduler

import "time"

// localDateLayout is the calendar-date form alerts store in due_date.
const localDateLayout = "2006-01-02"

// ZoneDate pairs a timezone currently at the delivery hour with the local
// calendar date to query for.
type ZoneDate struct {
	Timezone  string
	LocalDate string
}

// DueZones returns the due-set for the given instant: every zone from the
// allow-list whose local wall-clock hour equals deliveryHour, paired with
// the local date in that zone. The comparison is hour-granularity, so a
// tick anywhere within the target local hour qualifies.
//
// Zone identifiers that cannot be loaded are returned separately so the
// caller can log them; a bad zone never aborts the others.
func DueZones(now time.Time, zones []string, deliveryHour int) ([]ZoneDate, []string) {
	var pairs []ZoneDate
	var invalid []string
	for _, tz := range zones {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			invalid = append(invalid, tz)
			continue
		}
		local := now.In(loc)
		if local.Hour() != deliveryHour {
			continue
		}
		pairs = append(pairs, ZoneDate{Timezone: tz, LocalDate: local.Format(localDateLayout)})
	}
	return pairs, invalid
}
