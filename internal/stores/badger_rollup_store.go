package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"vitals-insights/internal/models"
	"vitals-insights/internal/rollupkeys"
)

const (
	recordKeyspace = "rec|"
	indexKeyspace  = "idx|"
	keySep         = "|"

	// scanPageSize bounds how many records one ScanPage carries before the
	// caller must follow the cursor.
	scanPageSize = 256
)

// NewBadgerDB opens the embedded sorted key-value store backing the rollup
// store. The in-memory mode is used by tests.
func NewBadgerDB(dir string, inMemory bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", dir, err)
	}
	return db, nil
}

type badgerRollupStore struct {
	db *badger.DB
}

func NewBadgerRollupStore(db *badger.DB) RollupStore {
	return &badgerRollupStore{db: db}
}

func recordKey(partitionKey, sortKey string) []byte {
	return []byte(recordKeyspace + partitionKey + keySep + sortKey)
}

func indexKey(dimensionKey, date string) []byte {
	return []byte(indexKeyspace + dimensionKey + keySep + date)
}

func (s *badgerRollupStore) Put(ctx context.Context, record *models.RollupRecord) error {
	sortKey, err := rollupkeys.SortKey(record.Kind, record.Value)
	if err != nil {
		return fmt.Errorf("failed to build sort key: %w", err)
	}
	partitionKey := rollupkeys.PartitionKey(record.Date, record.Scope)

	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal rollup record: %w", err)
	}

	primary := recordKey(partitionKey, sortKey)
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(primary, value); err != nil {
			return err
		}
		// Only unfiltered-scope records get index entries; detail time
		// series are always queried without partition filters.
		if record.Scope.IsZero() {
			idx := indexKey(sortKey, rollupkeys.FormatDate(record.Date))
			return txn.Set(idx, primary)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to put rollup record: %w", err)
	}
	metricRecordsWritten.Inc()
	return nil
}

func (s *badgerRollupStore) ScanByPrefix(ctx context.Context, partitionKey, sortKeyPrefix, cursor string) (*ScanPage, error) {
	prefix := recordKey(partitionKey, sortKeyPrefix)
	page := &ScanPage{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		seekTo := prefix
		if cursor != "" {
			seekTo = []byte(cursor)
		}
		var lastKey []byte
		for it.Seek(seekTo); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := it.Item().KeyCopy(nil)
			// The cursor names the last key of the previous page.
			if cursor != "" && bytes.Equal(key, []byte(cursor)) {
				continue
			}
			if len(page.Records) == scanPageSize {
				page.Cursor = string(lastKey)
				return nil
			}
			record, err := decodeRecordItem(it.Item())
			if err != nil {
				return err
			}
			page.Records = append(page.Records, record)
			lastKey = key
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("prefix scan failed for %q: %w", partitionKey, err)
	}
	metricScanPagesTotal.WithLabelValues("prefix").Inc()
	return page, nil
}

func (s *badgerRollupStore) ScanByIndex(ctx context.Context, dimensionKey, startDate, endDate, cursor string) (*ScanPage, error) {
	prefix := []byte(indexKeyspace + dimensionKey + keySep)
	rangeEnd := indexKey(dimensionKey, endDate)
	page := &ScanPage{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		seekTo := indexKey(dimensionKey, startDate)
		if cursor != "" {
			seekTo = []byte(cursor)
		}
		var lastKey []byte
		for it.Seek(seekTo); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := it.Item().KeyCopy(nil)
			if bytes.Compare(key, rangeEnd) > 0 {
				break
			}
			if cursor != "" && bytes.Equal(key, []byte(cursor)) {
				continue
			}
			if len(page.Records) == scanPageSize {
				page.Cursor = string(lastKey)
				return nil
			}

			primary, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			record, err := s.loadRecord(txn, primary)
			if err != nil {
				return err
			}
			page.Records = append(page.Records, record)
			lastKey = key
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index scan failed for %q: %w", dimensionKey, err)
	}
	metricScanPagesTotal.WithLabelValues("index").Inc()
	return page, nil
}

// loadRecord dereferences an index entry to its primary record.
func (s *badgerRollupStore) loadRecord(txn *badger.Txn, primary []byte) (*models.RollupRecord, error) {
	item, err := txn.Get(primary)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("dangling index entry for %q", primary)
		}
		return nil, err
	}
	return decodeRecordItem(item)
}

func decodeRecordItem(item *badger.Item) (*models.RollupRecord, error) {
	var record models.RollupRecord
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode rollup record at %q: %w", item.Key(), err)
	}
	return &record, nil
}
