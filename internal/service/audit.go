package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skipjar/skipjar/internal/repository"
	"github.com/skipjar/skipjar/internal/storage"
)

const auditPageSize = 500

var ErrAuditPageStuck = errors.New("more transactions share one timestamp than fit in a page")

type AuditExport struct {
	Key          string
	Transactions int
	URL          string
}

// AuditService archives the transaction log as JSON lines.
type AuditService struct {
	store   repository.Store
	archive storage.Archive
}

func NewAuditService(store repository.Store, archive storage.Archive) *AuditService {
	return &AuditService{
		store:   store,
		archive: archive,
	}
}

// Export writes every transaction logged at or after since to the archive.
func (s *AuditService) Export(ctx context.Context, since, now time.Time) (*AuditExport, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	count := 0
	cursor := since.UTC()
	// IDs already written at the cursor timestamp; pages overlap there.
	seen := map[string]bool{}
	for {
		page, err := s.store.TransactionsSince(ctx, cursor, auditPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to read transactions: %w", err)
		}

		fresh := 0
		for _, txn := range page {
			if seen[txn.ID] {
				continue
			}
			err := enc.Encode(txn)
			if err != nil {
				return nil, fmt.Errorf("failed to encode transaction %s: %w", txn.ID, err)
			}
			fresh++

			if !txn.Timestamp.Equal(cursor) {
				cursor = txn.Timestamp
				seen = map[string]bool{}
			}
			seen[txn.ID] = true
		}
		count += fresh

		if len(page) < auditPageSize {
			break
		}
		if fresh == 0 {
			return nil, ErrAuditPageStuck
		}
	}

	key := fmt.Sprintf("transactions/%s_%s.jsonl", since.UTC().Format("20060102T150405Z"), now.UTC().Format("20060102T150405Z"))
	err := s.archive.Save(ctx, key, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}

	export := &AuditExport{Key: key, Transactions: count}
	url, err := s.archive.DownloadURL(ctx, key)
	if err != nil {
		slog.Warn("failed to presign audit export", "error", err, "key", key)
	} else {
		export.URL = url
	}

	slog.Info("audit export written", "key", key, "transactions", count)
	return export, nil
}
