package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordfreq/internal/domain"
)

func sampleReport(corpus string) domain.CorpusReport {
	return domain.CorpusReport{
		Corpus: corpus,
		Entries: []domain.ReportEntry{
			{
				Key:   domain.MasterReportKey,
				Title: domain.MasterReportKey,
				Data: domain.DocumentReport{
					TotalWords:  3,
					UniqueWords: 1,
					WordStats:   []domain.WordStat{{Word: "foo", Count: 3, Percentage: 100}},
				},
				Assurance: domain.AssuranceRecord{AllPassed: true},
			},
		},
	}
}

func TestReportStore_PutGet(t *testing.T) {
	s := NewReportStore(nil)
	in := sampleReport("c")

	s.Put(in)
	out, ok := s.Get("c")

	require.True(t, ok)
	assert.Equal(t, in, out)
	assert.True(t, s.Has("c"))
	assert.False(t, s.Has("other"))
}

func TestReportStore_GetReturnsCopy(t *testing.T) {
	s := NewReportStore(nil)
	s.Put(sampleReport("c"))

	got, _ := s.Get("c")
	got.Entries[0].Data.WordStats[0].Count = 99

	again, _ := s.Get("c")
	assert.Equal(t, 3, again.Entries[0].Data.WordStats[0].Count)
}

func TestReportStore_ReplaceWholesale(t *testing.T) {
	s := NewReportStore(nil)
	s.Put(sampleReport("c"))

	replacement := domain.CorpusReport{Corpus: "c", Entries: []domain.ReportEntry{{Key: "only.txt"}}}
	s.Put(replacement)

	got, _ := s.Get("c")
	assert.Equal(t, []string{"only.txt"}, got.Keys())
}

func TestReportStore_RemoveAndList(t *testing.T) {
	s := NewReportStore(nil)
	s.Put(sampleReport("b"))
	s.Put(sampleReport("a"))

	assert.Equal(t, []string{"a", "b"}, s.List())
	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.Equal(t, []string{"b"}, s.List())

	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestReportStore_OnChange(t *testing.T) {
	s := NewReportStore(nil)
	var changed []string
	s.OnChange(func(corpus string) { changed = append(changed, corpus) })

	s.Put(sampleReport("a"))
	s.Remove("a")
	s.Remove("a")

	assert.Equal(t, []string{"a", "a"}, changed)
}
