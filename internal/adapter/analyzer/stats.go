package analyzer

import (
	"math"
	"sort"

	"wordfreq/internal/domain"
)

// BuildReport turns a frequency table into a document report.
func BuildReport(freq *Frequencies) domain.DocumentReport {
	words := freq.Words()
	total := freq.Total()
	if total == 0 {
		return domain.DocumentReport{WordStats: []domain.WordStat{}}
	}

	counts := make([]float64, len(words))
	logs := make([]float64, len(words))
	for i, w := range words {
		c := float64(freq.Get(w))
		counts[i] = c
		logs[i] = math.Log(c)
	}
	z := zScores(counts)
	logZ := zScores(logs)

	rows := make([]domain.WordStat, len(words))
	for i, w := range words {
		rows[i] = domain.WordStat{
			Word:       w,
			Count:      int(counts[i]),
			Percentage: counts[i] / float64(total) * 100,
			ZScore:     z[i],
			LogZScore:  logZ[i],
		}
	}

	// stable sort keeps first-occurrence order among equal counts
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	return domain.DocumentReport{
		TotalWords:  total,
		UniqueWords: len(words),
		WordStats:   rows,
	}
}

// zScores returns the sample z-score of each value, or all zeros when the
// sample standard deviation is zero or undefined.
func zScores(values []float64) []float64 {
	out := make([]float64, len(values))
	mean, sd := meanAndSampleSD(values)
	if sd == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - mean) / sd
	}
	return out
}

// meanAndSampleSD uses Bessel's correction. Fewer than two values give sd 0.
func meanAndSampleSD(values []float64) (float64, float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	sum := 0.0
	constant := true
	for _, v := range values {
		sum += v
		constant = constant && v == values[0]
	}
	mean := sum / float64(n)
	// rounding in sum/n must not turn a constant sample into noise
	if n < 2 || constant {
		return mean, 0
	}
	sq := 0.0
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(n-1))
}
