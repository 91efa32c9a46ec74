package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chatlink/domain"
)

func TestTranscript_OptimisticSendThenEcho(t *testing.T) {
	req := require.New(t)
	tr := NewTranscript(DefaultDedupWindow)
	tr.SetActivePartner("2")

	at := time.Now()
	m, err := domain.NewMessage("1", "Alice", "2", "Hola", at)
	req.NoError(err)

	// Optimistic local insert.
	req.True(tr.Append(m))

	// Server echo carries the same client id: discarded.
	req.False(tr.Append(m))
	req.Len(tr.Messages(), 1)
}

func TestTranscript_SwitchingPartnerClearsState(t *testing.T) {
	req := require.New(t)
	tr := NewTranscript(DefaultDedupWindow)

	tr.SetActivePartner("2")
	req.True(tr.Append(domain.Message{ID: "m1", SenderID: "2", Content: "Hi", CreatedAt: time.Now()}))
	req.Len(tr.Messages(), 1)

	tr.SetActivePartner("3")
	req.Equal("3", tr.ActivePartner())
	req.Empty(tr.Messages())

	// Dedup state went with the transcript: the old id is appendable again.
	req.True(tr.Append(domain.Message{ID: "m1", SenderID: "3", Content: "Hi again", CreatedAt: time.Now()}))
}

func TestTranscript_ReopeningSamePartnerKeepsMessages(t *testing.T) {
	req := require.New(t)
	tr := NewTranscript(DefaultDedupWindow)

	tr.SetActivePartner("2")
	req.True(tr.Append(domain.Message{ID: "m1", SenderID: "2", Content: "Hi", CreatedAt: time.Now()}))

	tr.SetActivePartner("2")
	req.Len(tr.Messages(), 1)
}

func TestTranscript_Close(t *testing.T) {
	req := require.New(t)
	tr := NewTranscript(DefaultDedupWindow)

	tr.SetActivePartner("2")
	req.True(tr.Append(domain.Message{ID: "m1", SenderID: "2", Content: "Hi", CreatedAt: time.Now()}))

	tr.Close()
	req.Equal("", tr.ActivePartner())
	req.Empty(tr.Messages())
}
