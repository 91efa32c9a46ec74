package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"chatlink/domain"
)

// SnapshotRepository persists conversation summaries in BadgerDB so the
// conversation list survives restarts. Only summaries are stored, never
// message bodies beyond the last preview line.
//
// The key is formatted as "conv:{owner_id}:{partner_id}" so one prefix scan
// loads the whole list for a session owner.
type SnapshotRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewSnapshotRepository(db *badger.DB, log *slog.Logger) SnapshotRepository {
	return SnapshotRepository{db: db, log: log}
}

func snapshotKey(ownerID, partnerID string) []byte {
	return []byte(fmt.Sprintf("conv:%s:%s", ownerID, partnerID))
}

func (r SnapshotRepository) Save(ownerID string, summary domain.ConversationSummary) error {
	bytes, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(ownerID, summary.PartnerID), bytes)
	})
}

// Load restores every summary stored for the owner via a prefix scan.
func (r SnapshotRepository) Load(ownerID string) ([]domain.ConversationSummary, error) {
	var raw [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("conv:%s:", ownerID))
		options := badger.DefaultIteratorOptions
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ConversationSummary, 0, len(raw))
	for _, b := range raw {
		var s domain.ConversationSummary
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Restore seeds an in-memory cache from disk. Failures degrade to an empty
// cache: the snapshot is an optimization, never a source of truth.
func (r SnapshotRepository) Restore(ownerID string, cache IRecentCache) {
	summaries, err := r.Load(ownerID)
	if err != nil {
		r.log.Warn("Conversation snapshot unavailable, starting empty", "owner", ownerID, "error", err)
		return
	}
	for _, s := range summaries {
		cache.Upsert(s.PartnerID, s.PartnerName, s.LastMessage, s.LastTimestamp)
	}
	r.log.Debug(fmt.Sprintf("%d conversation summaries restored", len(summaries)))
}
