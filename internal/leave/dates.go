package leave

import "time"

const dateLayout = "2006-01-02"

// DurationDays is the inclusive day count of a leave: from 2024-02-15 to
// 2024-02-17 is 3 days. Returns 0 when either date is unparseable or the
// range is inverted.
func DurationDays(fromDate, toDate string) int {
	from, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return 0
	}
	to, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return 0
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		return 0
	}
	return days
}
