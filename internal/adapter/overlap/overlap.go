// Package overlap measures how the vocabularies of a corpus' documents overlap.
package overlap

import (
	"sort"

	"github.com/xtgo/set"

	"wordfreq/internal/domain"
)

// Names of the corpus vocabulary checks.
const (
	CheckTotalUniqueWords = "Total Unique Words"
	CheckSharedWords      = "Shared Words"
)

// Document is the overlap view of one document report.
type Document struct {
	Key        string
	Counts     map[string]int
	Total      int
	Vocabulary []string // sorted, unique
}

// NewDocument builds the overlap view of a report entry.
func NewDocument(entry domain.ReportEntry) Document {
	counts := entry.Data.Counts()
	total := 0
	for _, c := range counts {
		total += c
	}
	return Document{
		Key:        entry.Key,
		Counts:     counts,
		Total:      total,
		Vocabulary: entry.Data.Vocabulary(),
	}
}

// Documents converts the document entries of a corpus report, skipping the master entry.
func Documents(report domain.CorpusReport) []Document {
	entries := report.Documents()
	docs := make([]Document, len(entries))
	for i, e := range entries {
		docs[i] = NewDocument(e)
	}
	return docs
}

// frequencies returns count/total for every word of d.
func (d Document) frequencies() map[string]float64 {
	f := make(map[string]float64, len(d.Counts))
	if d.Total == 0 {
		return f
	}
	for w, c := range d.Counts {
		f[w] = float64(c) / float64(d.Total)
	}
	return f
}

func mean(values map[string]float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ratio is num/den, or 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// intersect returns the sorted intersection of two sorted unique slices.
func intersect(a, b []string) []string {
	data := make(sort.StringSlice, 0, len(a)+len(b))
	data = append(data, a...)
	data = append(data, b...)
	n := set.Inter(data, len(a))
	return data[:n]
}

// union returns the sorted union of two sorted unique slices.
func union(a, b []string) []string {
	data := make(sort.StringSlice, 0, len(a)+len(b))
	data = append(data, a...)
	data = append(data, b...)
	n := set.Union(data, len(a))
	return data[:n]
}

// forEachPair calls fn for every unordered pair of docs, in document order.
func forEachPair(docs []Document, fn func(a, b Document)) {
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			fn(docs[i], docs[j])
		}
	}
}

// ComputeBOScores aggregates the BOn1 and BOn2 scores of every shared word
// over all document pairs. Words found in a single document are absent.
func ComputeBOScores(docs []Document) domain.BOScores {
	scores := domain.BOScores{
		BOn1: make(map[string]float64),
		BOn2: make(map[string]float64),
	}

	freqs := make(map[string]map[string]float64, len(docs))
	for _, d := range docs {
		freqs[d.Key] = d.frequencies()
	}

	forEachPair(docs, func(a, b Document) {
		shared := intersect(a.Vocabulary, b.Vocabulary)
		if len(shared) == 0 {
			return
		}
		f1, f2 := freqs[a.Key], freqs[b.Key]

		n1 := (mean(f1) + mean(f2)) / 2

		all := union(a.Vocabulary, b.Vocabulary)
		pooled := make(map[string]float64, len(all))
		for _, w := range all {
			pooled[w] = (f1[w] + f2[w]) / 2
		}
		n2 := mean(pooled)

		for _, w := range shared {
			pw := f1[w] * f2[w]
			scores.BOn1[w] += ratio(pw, n1)
			scores.BOn2[w] += ratio(pw, n2)
		}
	})

	return scores
}

// Pairs reports the shared/union sizes and Jaccard index of every document pair.
func Pairs(docs []Document) []domain.PairOverlap {
	var pairs []domain.PairOverlap
	forEachPair(docs, func(a, b Document) {
		shared := len(intersect(a.Vocabulary, b.Vocabulary))
		all := len(union(a.Vocabulary, b.Vocabulary))
		jaccard := 0.0
		if all > 0 {
			jaccard = float64(shared) / float64(all)
		}
		pairs = append(pairs, domain.PairOverlap{
			A:       a.Key,
			B:       b.Key,
			Shared:  shared,
			Union:   all,
			Jaccard: jaccard,
		})
	})
	return pairs
}

// Assure checks that the corpus vocabulary splits exactly into words shared
// by two or more documents and words exclusive to one.
func Assure(docs []Document) domain.AssuranceRecord {
	docFreq := make(map[string]int)
	for _, d := range docs {
		for _, w := range d.Vocabulary {
			docFreq[w]++
		}
	}
	shared, exclusive := 0, 0
	for _, n := range docFreq {
		if n >= 2 {
			shared++
		} else {
			exclusive++
		}
	}

	var vocabulary, pairwise []string
	for _, d := range docs {
		vocabulary = union(vocabulary, d.Vocabulary)
	}
	forEachPair(docs, func(a, b Document) {
		pairwise = union(pairwise, intersect(a.Vocabulary, b.Vocabulary))
	})

	checks := []domain.AssuranceCheck{
		{
			Name:     CheckTotalUniqueWords,
			Expected: float64(len(vocabulary)),
			Actual:   float64(shared + exclusive),
			Passed:   len(vocabulary) == shared+exclusive,
		},
		{
			Name:     CheckSharedWords,
			Expected: float64(shared),
			Actual:   float64(len(pairwise)),
			Passed:   shared == len(pairwise),
		},
	}
	return domain.AssuranceRecord{
		Checks:    checks,
		AllPassed: checks[0].Passed && checks[1].Passed,
	}
}
