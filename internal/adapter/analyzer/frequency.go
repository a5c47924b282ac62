package analyzer

// Frequencies is a word -> count table that remembers the order in which
// words were first seen.
type Frequencies struct {
	order  []string
	counts map[string]int
}

// NewFrequencies creates an empty table.
func NewFrequencies() *Frequencies {
	return &Frequencies{counts: make(map[string]int)}
}

// Count aggregates tokens into a frequency table.
func Count(tokens []string) *Frequencies {
	f := NewFrequencies()
	for _, tok := range tokens {
		f.AddN(tok, 1)
	}
	return f
}

// AddN adds n occurrences of word. Non-positive n is ignored.
func (f *Frequencies) AddN(word string, n int) {
	if n <= 0 {
		return
	}
	if _, seen := f.counts[word]; !seen {
		f.order = append(f.order, word)
	}
	f.counts[word] += n
}

// Merge adds every count of other, appending unseen words in other's order.
func (f *Frequencies) Merge(other *Frequencies) {
	for _, w := range other.order {
		f.AddN(w, other.counts[w])
	}
}

// Words returns the unique words in first-occurrence order.
func (f *Frequencies) Words() []string {
	return append([]string(nil), f.order...)
}

func (f *Frequencies) Get(word string) int {
	return f.counts[word]
}

// Len is the number of unique words.
func (f *Frequencies) Len() int {
	return len(f.order)
}

// Total is the sum of all counts.
func (f *Frequencies) Total() int {
	total := 0
	for _, c := range f.counts {
		total += c
	}
	return total
}
