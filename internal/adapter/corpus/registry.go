package corpus

import (
	"fmt"

	"wordfreq/internal/domain"
	"wordfreq/internal/port"
)

// DefaultCorpusName receives files imported without a named corpus.
const DefaultCorpusName = "Default Corpus"

// Registry maps corpus names to corpora and carries the UI-facing focus
// (single active) and comparison (multi active) designations. It is not safe
// for concurrent use.
type Registry struct {
	corpora map[string]*Corpus
	order   []string

	singleActive string
	multiActive  []string

	defaultName string
	events      port.EventPublisher
}

// NewRegistry creates an empty registry. events may be nil.
func NewRegistry(events port.EventPublisher) *Registry {
	return &Registry{
		corpora:     make(map[string]*Corpus),
		defaultName: DefaultCorpusName,
		events:      events,
	}
}

// SetDefaultName overrides the name used by ImportFiles.
func (r *Registry) SetDefaultName(name string) {
	if name != "" {
		r.defaultName = name
	}
}

func (r *Registry) publish(kind port.EventKind, name string) {
	if r.events != nil {
		r.events.Publish(kind, name)
	}
}

// AddCorpus creates an empty corpus, or returns the existing one of that name.
func (r *Registry) AddCorpus(name string) *Corpus {
	if c, ok := r.corpora[name]; ok {
		return c
	}
	c := New(name)
	r.corpora[name] = c
	r.order = append(r.order, name)
	r.publish(port.EventCorpusAdded, name)
	return c
}

// Get returns the named corpus.
func (r *Registry) Get(name string) (*Corpus, bool) {
	c, ok := r.corpora[name]
	return c, ok
}

// Names lists corpus names in creation order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// RemoveCorpus deletes the corpus and clears its designations. Callers own
// removing any stored report.
func (r *Registry) RemoveCorpus(name string) bool {
	if _, ok := r.corpora[name]; !ok {
		return false
	}
	delete(r.corpora, name)
	r.order = removeString(r.order, name)
	if r.singleActive == name {
		r.singleActive = ""
		r.publish(port.EventActiveCorpusChanged, "")
	}
	r.multiActive = removeString(r.multiActive, name)
	r.publish(port.EventCorpusRemoved, name)
	return true
}

// RenameCorpus re-keys a corpus, keeping its position and designations.
func (r *Registry) RenameCorpus(oldName, newName string) error {
	c, ok := r.corpora[oldName]
	if !ok {
		return fmt.Errorf("rename %q: %w", oldName, domain.ErrCorpusNotFound)
	}
	if oldName == newName {
		return nil
	}
	if _, taken := r.corpora[newName]; taken {
		return fmt.Errorf("rename %q: corpus %q already exists", oldName, newName)
	}
	delete(r.corpora, oldName)
	c.rename(newName)
	r.corpora[newName] = c
	for i, n := range r.order {
		if n == oldName {
			r.order[i] = newName
		}
	}
	for i, n := range r.multiActive {
		if n == oldName {
			r.multiActive[i] = newName
		}
	}
	if r.singleActive == oldName {
		r.singleActive = newName
	}
	r.publish(port.EventCorpusRenamed, newName)
	return nil
}

// ImportFiles appends paths to the default corpus, creating it if needed.
func (r *Registry) ImportFiles(paths ...string) *Corpus {
	c := r.AddCorpus(r.defaultName)
	for _, p := range paths {
		c.AddFile(p)
	}
	return c
}

// SetSingleActive focuses name. Calling it with the focused name keeps it focused.
func (r *Registry) SetSingleActive(name string) error {
	if _, ok := r.corpora[name]; !ok {
		return fmt.Errorf("activate %q: %w", name, domain.ErrCorpusNotFound)
	}
	if r.singleActive == name {
		return nil
	}
	r.singleActive = name
	r.publish(port.EventActiveCorpusChanged, name)
	return nil
}

// SingleActive returns the focused corpus name, if any.
func (r *Registry) SingleActive() (string, bool) {
	return r.singleActive, r.singleActive != ""
}

// ToggleMultiActive flips name's membership in the comparison set and
// reports whether it is now a member.
func (r *Registry) ToggleMultiActive(name string) (bool, error) {
	if _, ok := r.corpora[name]; !ok {
		return false, fmt.Errorf("toggle %q: %w", name, domain.ErrCorpusNotFound)
	}
	defer r.publish(port.EventComparisonChanged, name)
	for _, n := range r.multiActive {
		if n == name {
			r.multiActive = removeString(r.multiActive, name)
			return false, nil
		}
	}
	r.multiActive = append(r.multiActive, name)
	return true, nil
}

// MultiActive lists the comparison set in the order names were added to it.
func (r *Registry) MultiActive() []string {
	return append([]string(nil), r.multiActive...)
}

func (r *Registry) IsMultiActive(name string) bool {
	for _, n := range r.multiActive {
		if n == name {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
