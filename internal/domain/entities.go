package domain

import "sort"

// MasterReportKey is the report key holding the union-of-counts report of a corpus.
const MasterReportKey = "Master Report"

// WordStat is one row of a document report.
type WordStat struct {
	Word       string  `json:"word"`
	Count      int     `json:"count"`
	Percentage float64 `json:"pct"`
	ZScore     float64 `json:"z"`
	LogZScore  float64 `json:"log_z"`
}

// DocumentReport holds the statistics of a single document (or of a master counter).
// WordStats is sorted by count descending, ties in first-occurrence order.
type DocumentReport struct {
	TotalWords  int        `json:"total_word_count"`
	UniqueWords int        `json:"unique_word_count"`
	WordStats   []WordStat `json:"word_stats"`
}

// Counts returns the word -> count mapping of the report.
func (r DocumentReport) Counts() map[string]int {
	counts := make(map[string]int, len(r.WordStats))
	for _, row := range r.WordStats {
		counts[row.Word] = row.Count
	}
	return counts
}

// Vocabulary returns the report's words sorted lexically.
func (r DocumentReport) Vocabulary() []string {
	words := make([]string, 0, len(r.WordStats))
	for _, row := range r.WordStats {
		words = append(words, row.Word)
	}
	sort.Strings(words)
	return words
}

type AssuranceCheck struct {
	Name     string  `json:"name"`
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
	Passed   bool    `json:"passed"`
}

type AssuranceRecord struct {
	Checks    []AssuranceCheck `json:"checks"`
	AllPassed bool             `json:"all_passed"`
}

// Check returns the named check.
func (a AssuranceRecord) Check(name string) (AssuranceCheck, bool) {
	for _, c := range a.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return AssuranceCheck{}, false
}

// ReportEntry is one keyed report of a corpus: a document path or MasterReportKey.
type ReportEntry struct {
	Key       string          `json:"key"`
	Title     string          `json:"title"`
	Data      DocumentReport  `json:"data"`
	Assurance AssuranceRecord `json:"assurance"`
}

// CorpusReport is the full analysis of a corpus. The master entry comes first,
// followed by the document entries in corpus order.
type CorpusReport struct {
	Corpus  string        `json:"corpus"`
	Entries []ReportEntry `json:"entries"`
}

func (r CorpusReport) Get(key string) (ReportEntry, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return ReportEntry{}, false
}

func (r CorpusReport) Master() (ReportEntry, bool) {
	return r.Get(MasterReportKey)
}

// Documents returns the report minus the master entry.
func (r CorpusReport) Documents() []ReportEntry {
	docs := make([]ReportEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Key == MasterReportKey {
			continue
		}
		docs = append(docs, e)
	}
	return docs
}

func (r CorpusReport) Keys() []string {
	keys := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Clone returns a deep copy so stored reports cannot be mutated by callers.
func (r CorpusReport) Clone() CorpusReport {
	out := CorpusReport{Corpus: r.Corpus, Entries: make([]ReportEntry, len(r.Entries))}
	for i, e := range r.Entries {
		e.Data.WordStats = append([]WordStat(nil), e.Data.WordStats...)
		e.Assurance.Checks = append([]AssuranceCheck(nil), e.Assurance.Checks...)
		out.Entries[i] = e
	}
	return out
}

// ScoredWord is a word with an overlap score, used for ranked output.
type ScoredWord struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// BOScores holds the aggregated BOn1 and BOn2 maps.
type BOScores struct {
	BOn1 map[string]float64 `json:"bon1"`
	BOn2 map[string]float64 `json:"bon2"`
}

// Ranked returns the BOn1 scores when variant is 1 and BOn2 otherwise,
// sorted descending with ties broken by word.
// A nil receiver yields no words.
func (s *BOScores) Ranked(variant int) []ScoredWord {
	if s == nil {
		return nil
	}
	m := s.BOn2
	if variant == 1 {
		m = s.BOn1
	}
	out := make([]ScoredWord, 0, len(m))
	for w, score := range m {
		out = append(out, ScoredWord{Word: w, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// PairOverlap describes the vocabulary overlap of two documents.
type PairOverlap struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Shared  int     `json:"shared"`
	Union   int     `json:"union"`
	Jaccard float64 `json:"jaccard"`
}

// OverlapResult is the outcome of one overlap mode over a corpus report.
// BO is set only for the BO score mode.
type OverlapResult struct {
	Corpus    string          `json:"corpus"`
	Mode      string          `json:"mode"`
	BO        *BOScores       `json:"bo,omitempty"`
	Pairs     []PairOverlap   `json:"pairs,omitempty"`
	Assurance AssuranceRecord `json:"assurance"`
}

// Clone returns a deep copy so memoized results cannot be mutated by callers.
func (r OverlapResult) Clone() OverlapResult {
	out := r
	if r.BO != nil {
		out.BO = &BOScores{BOn1: cloneScores(r.BO.BOn1), BOn2: cloneScores(r.BO.BOn2)}
	}
	if r.Pairs != nil {
		out.Pairs = append([]PairOverlap(nil), r.Pairs...)
	}
	if r.Assurance.Checks != nil {
		out.Assurance.Checks = append([]AssuranceCheck(nil), r.Assurance.Checks...)
	}
	return out
}

func cloneScores(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
