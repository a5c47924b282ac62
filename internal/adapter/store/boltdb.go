package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"wordfreq/internal/domain"
)

// CurrentSchemaVersion is the snapshot layout version. Snapshots written with
// another version are cleared on open.
const CurrentSchemaVersion = 1

var (
	bucketMeta    = []byte("meta")
	bucketReports = []byte("reports")
	bucketTables  = []byte("tables")

	keySchemaVersion = []byte("schema_version")
)

// SnapshotStore writes corpus reports to a bolt file so they can be shared
// outside the process. Nothing in the analyzer reads snapshots back into the
// registry.
type SnapshotStore struct {
	db *bbolt.DB
}

func NewSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	s := &SnapshotStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SnapshotStore) init() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketMeta, err)
		}

		var version int
		if data := meta.Get(keySchemaVersion); data != nil {
			if err := json.Unmarshal(data, &version); err != nil {
				version = 0
			}
		}
		if version != CurrentSchemaVersion {
			for _, b := range [][]byte{bucketReports, bucketTables} {
				if tx.Bucket(b) != nil {
					if err := tx.DeleteBucket(b); err != nil {
						return err
					}
				}
			}
			data, _ := json.Marshal(CurrentSchemaVersion)
			if err := meta.Put(keySchemaVersion, data); err != nil {
				return err
			}
		}

		for _, b := range [][]byte{bucketReports, bucketTables} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
}

// PutReport writes report under its corpus name, replacing any earlier
// snapshot of that corpus. Each entry's word table is also stored under
// tables/<corpus>/<key> for consumers that only need one document.
func (s *SnapshotStore) PutReport(report domain.CorpusReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketReports).Put([]byte(report.Corpus), data); err != nil {
			return err
		}

		tables := tx.Bucket(bucketTables)
		if tables.Bucket([]byte(report.Corpus)) != nil {
			if err := tables.DeleteBucket([]byte(report.Corpus)); err != nil {
				return err
			}
		}
		corpus, err := tables.CreateBucket([]byte(report.Corpus))
		if err != nil {
			return err
		}
		for _, e := range report.Entries {
			rows, err := json.Marshal(e.Data.WordStats)
			if err != nil {
				return err
			}
			if err := corpus.Put([]byte(e.Key), rows); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SnapshotStore) GetReport(corpus string) (domain.CorpusReport, error) {
	var report domain.CorpusReport
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketReports).Get([]byte(corpus))
		if data == nil {
			return fmt.Errorf("snapshot %q: %w", corpus, domain.ErrReportNotFound)
		}
		return json.Unmarshal(data, &report)
	})
	return report, err
}

// GetTable returns the word rows stored for one report entry.
func (s *SnapshotStore) GetTable(corpus, key string) ([]domain.WordStat, error) {
	var rows []domain.WordStat
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketTables).Bucket([]byte(corpus))
		if b == nil {
			return fmt.Errorf("snapshot %q: %w", corpus, domain.ErrReportNotFound)
		}
		data := b.Get([]byte(key))
		if data == nil {
			return fmt.Errorf("snapshot %q has no entry %q", corpus, key)
		}
		return json.Unmarshal(data, &rows)
	})
	return rows, err
}

// ListCorpora returns the snapshotted corpus names in key order.
func (s *SnapshotStore) ListCorpora() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketReports).ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
