// Package corpus holds named document collections and the registry that
// tracks which of them the user is focused on or comparing.
package corpus

// State is the lifecycle position of a corpus relative to its stored report.
type State int

const (
	StateEmpty State = iota
	StateHasFiles
	StateAnalyzed
	StateStale
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateHasFiles:
		return "has_files"
	case StateAnalyzed:
		return "analyzed"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Corpus is a named, ordered set of document paths.
type Corpus struct {
	name  string
	files []string
	state State
}

// New creates a corpus holding files, dropping duplicates.
func New(name string, files ...string) *Corpus {
	c := &Corpus{name: name}
	for _, f := range files {
		c.AddFile(f)
	}
	return c
}

func (c *Corpus) Name() string {
	return c.name
}

// rename is called by Registry.RenameCorpus, which keeps its keys in sync.
func (c *Corpus) rename(name string) {
	c.name = name
}

// Files returns a copy of the document paths in insertion order.
func (c *Corpus) Files() []string {
	return append([]string(nil), c.files...)
}

func (c *Corpus) Len() int {
	return len(c.files)
}

func (c *Corpus) Contains(path string) bool {
	return c.indexOf(path) >= 0
}

func (c *Corpus) State() State {
	return c.state
}

// AddFile appends path unless it is already present. It reports whether the
// corpus changed.
func (c *Corpus) AddFile(path string) bool {
	if c.Contains(path) {
		return false
	}
	c.files = append(c.files, path)
	c.touch()
	return true
}

// RemoveFile drops path. Removing an absent path is a no-op.
func (c *Corpus) RemoveFile(path string) bool {
	i := c.indexOf(path)
	if i < 0 {
		return false
	}
	c.files = append(c.files[:i], c.files[i+1:]...)
	c.touch()
	return true
}

// MarkAnalyzed records that a report matching the current files was stored.
func (c *Corpus) MarkAnalyzed() {
	c.state = StateAnalyzed
}

// MarkStale records that the stored report may no longer match the files.
func (c *Corpus) MarkStale() {
	if c.state == StateAnalyzed {
		c.state = StateStale
	}
}

// touch moves the state after a membership change.
func (c *Corpus) touch() {
	switch c.state {
	case StateAnalyzed, StateStale:
		c.state = StateStale
	default:
		if len(c.files) == 0 {
			c.state = StateEmpty
		} else {
			c.state = StateHasFiles
		}
	}
}

func (c *Corpus) indexOf(path string) int {
	for i, f := range c.files {
		if f == path {
			return i
		}
	}
	return -1
}
