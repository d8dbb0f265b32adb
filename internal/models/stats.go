package models

import "strconv"

const percent = 100

// Stats is the aggregate view over the employee collection.
type Stats struct {
	Total       int      `json:"total"`
	FullTimePct float64  `json:"full_time_pct"`
	AvgAge      *float64 `json:"avg_age"`
}

// ComputeStats aggregates the given employees. AvgAge stays nil for an empty collection.
func ComputeStats(employees []Employee) Stats {
	total := len(employees)
	if total == 0 {
		return Stats{Total: 0, FullTimePct: 0, AvgAge: nil}
	}

	var ageSum, fullTime int
	for _, employee := range employees {
		ageSum += employee.Age
		if employee.IsFullTime {
			fullTime++
		}
	}

	avgAge := round2(float64(ageSum) / float64(total))

	return Stats{
		Total:       total,
		FullTimePct: round2(float64(fullTime) / float64(total) * percent),
		AvgAge:      &avgAge,
	}
}

// round2 rounds the exact binary value of v to 2 decimals, half to even.
func round2(v float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return rounded
}
