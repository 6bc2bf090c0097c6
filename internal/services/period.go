package services

import "sort"

// PeriodName selects both the lookback window and the forecast horizon.
type PeriodName string

const (
	Period7Days   PeriodName = "7_days"
	Period30Days  PeriodName = "30_days"
	Period90Days  PeriodName = "90_days"
	Period6Months PeriodName = "6_months"
	Period1Year   PeriodName = "1_year"
)

// periodDays is shared by the lookback window and the horizon.
var periodDays = map[PeriodName]int{
	Period7Days:   7,
	Period30Days:  30,
	Period90Days:  90,
	Period6Months: 180,
	Period1Year:   365,
}

// ParsePeriod resolves a period name.
func ParsePeriod(name string) (PeriodName, error) {
	p := PeriodName(name)
	if _, ok := periodDays[p]; !ok {
		return "", &UnknownPeriodError{Period: name}
	}
	return p, nil
}

// Days returns the window length, 0 for an unknown period.
func (p PeriodName) Days() int {
	return periodDays[p]
}

// PeriodNames lists the accepted names ordered by length.
func PeriodNames() []string {
	names := make([]string, 0, len(periodDays))
	for p := range periodDays {
		names = append(names, string(p))
	}
	sort.Slice(names, func(i, j int) bool {
		return periodDays[PeriodName(names[i])] < periodDays[PeriodName(names[j])]
	})
	return names
}
