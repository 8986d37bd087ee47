package stats

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a Result into the scalars the presentation layer shows
// on its dashboard header.
type Summary struct {
	TotalServed    int         `json:"totalServed"`
	MeanWait       float64     `json:"meanWait"`       // minutes
	MaxWait        float64     `json:"maxWait"`        // minutes
	MeanService    float64     `json:"meanService"`    // minutes
	MaxQueueLength int         `json:"maxQueueLength"` // peak of the main queue
	EndClock       float64     `json:"endClock"`       // simulated minutes
	GroupCounts    map[int]int `json:"groupCounts"`    // group index → entities served
}

// Summarize computes aggregate statistics from a Result.
// Safe for nil or empty results (returns zero-value fields).
func Summarize(r *Result) *Summary {
	summary := &Summary{GroupCounts: make(map[int]int)}
	if r == nil {
		return summary
	}

	summary.TotalServed = len(r.Records)
	summary.EndClock = r.EndClock

	if len(r.Records) > 0 {
		waits := make([]float64, len(r.Records))
		services := make([]float64, len(r.Records))
		for i, rec := range r.Records {
			waits[i] = rec.Wait
			services[i] = rec.ServiceDuration
			summary.GroupCounts[rec.Group]++
			if rec.Wait > summary.MaxWait {
				summary.MaxWait = rec.Wait
			}
		}
		summary.MeanWait = stat.Mean(waits, nil)
		summary.MeanService = stat.Mean(services, nil)
	}

	for _, s := range r.QueueSamples {
		if s.Length > summary.MaxQueueLength {
			summary.MaxQueueLength = s.Length
		}
	}

	return summary
}

// ClockTime converts a simulated-minutes offset to wall-clock time relative
// to the given start of day.
func ClockTime(startOfDay time.Time, minutes float64) time.Time {
	return startOfDay.Add(time.Duration(minutes * float64(time.Minute)))
}
