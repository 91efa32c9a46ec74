// Package search maintains a session-local full-text index over the open
// transcript. The index lives in memory and dies with the session; it is a
// convenience over the live view, not message history.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"

	"chatlink/domain"
)

// Hit is one search result with enough context to scroll the transcript.
type Hit struct {
	MessageID string
	SenderID  string
	Content   string
	At        time.Time
}

type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

// NewIndex opens an in-memory bluge index.
func NewIndex(log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	return &Index{writer: writer, log: log}, nil
}

// Add indexes one transcript message. Index failures only cost search
// results, so they are logged and swallowed.
func (i *Index) Add(m domain.Message) {
	doc := bluge.NewDocument(m.ID).
		AddField(bluge.NewTextField("content", m.Content).StoreValue()).
		AddField(bluge.NewKeywordField("sender", m.SenderID).StoreValue()).
		AddField(bluge.NewDateTimeField("at", m.CreatedAt).StoreValue())

	if err := i.writer.Update(doc.ID(), doc); err != nil {
		i.log.Warn("Transcript index update failed", "message", m.ID, "error", err)
	}
}

// Search matches query text against indexed content, newest-first up to limit.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	match := bluge.NewMatchQuery(query).SetField("content")
	request := bluge.NewTopNSearch(limit, match).SortBy([]string{"-at"})

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var hits []Hit
	for {
		next, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}

		var hit Hit
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID = string(value)
			case "content":
				hit.Content = string(value)
			case "sender":
				hit.SenderID = string(value)
			case "at":
				if at, err := bluge.DecodeDateTime(value); err == nil {
					hit.At = at
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func (i *Index) Close() error {
	return i.writer.Close()
}
