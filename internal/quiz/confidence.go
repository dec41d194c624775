package quiz

import "sort"

// Confidence inference fills the gaps left by students who skip the
// self-assessment slider. The signals available are correctness and how long
// the response took relative to the submission's median; both are cheap and
// deterministic, which matters because the result feeds the cache key.

const (
	confidenceCorrectBase   = 4
	confidenceIncorrectBase = 2
	confidenceDefault       = 3
)

// InferConfidence returns a copy of responses with every missing confidence
// populated with a value in 1..5. Explicitly supplied scores are never
// overwritten; supplied values above 5 are capped.
func InferConfidence(responses []Response) []Response {
	out := make([]Response, len(responses))
	copy(out, responses)

	median := medianTime(out)

	for i := range out {
		r := &out[i]
		if r.Confidence > 5 {
			r.Confidence = 5
			continue
		}
		if r.HasConfidence() {
			continue
		}

		score := confidenceIncorrectBase
		if r.IsCorrect {
			score = confidenceCorrectBase
		}

		// A response far under the median suggests fluency (or a rush);
		// one far over it suggests struggle. Only adjust when the
		// submission carries timing data at all.
		if median > 0 && r.TimeSpentSeconds > 0 {
			t := float64(r.TimeSpentSeconds)
			switch {
			case t <= median/2:
				score++
			case t >= median*2:
				score--
			}
		}

		r.Confidence = clampConfidence(score)
	}
	return out
}

// medianTime returns the median of the positive time values, or 0 when no
// timing data exists.
func medianTime(responses []Response) float64 {
	times := make([]int, 0, len(responses))
	for _, r := range responses {
		if r.TimeSpentSeconds > 0 {
			times = append(times, r.TimeSpentSeconds)
		}
	}
	if len(times) == 0 {
		return 0
	}
	sort.Ints(times)
	mid := len(times) / 2
	if len(times)%2 == 1 {
		return float64(times[mid])
	}
	return float64(times[mid-1]+times[mid]) / 2.0
}

func clampConfidence(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// AvgConfidence averages the confidence scores, treating missing values as
// the neutral midpoint.
func AvgConfidence(responses []Response) float64 {
	if len(responses) == 0 {
		return confidenceDefault
	}
	total := 0
	for _, r := range responses {
		if r.HasConfidence() {
			total += r.Confidence
		} else {
			total += confidenceDefault
		}
	}
	return float64(total) / float64(len(responses))
}
