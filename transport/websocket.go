package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	apperrors "chatlink/errors"
)

// WebsocketTransport is the production transport. It holds at most one live
// connection; the ConnectionManager is its only caller.
type WebsocketTransport struct {
	mu   sync.Mutex
	url  string
	log  *slog.Logger
	conn *websocket.Conn
}

func NewWebsocketTransport(url string, log *slog.Logger) *WebsocketTransport {
	return &WebsocketTransport{url: url, log: log}
}

// Dial opens the websocket with the bearer token attached to the handshake.
// A 401/403 handshake response maps to ErrTokenRejected so the caller can
// distinguish credential problems from network ones.
func (t *WebsocketTransport) Dial(ctx context.Context, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return apperrors.ErrAlreadyConnected
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, t.url, header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return fmt.Errorf("%w: status %d", apperrors.ErrTokenRejected, resp.StatusCode)
		}
		return fmt.Errorf("websocket dial %s: %w", t.url, err)
	}

	t.conn = conn
	t.log.Info("Websocket connected", "url", t.url)
	return nil
}

// ReadFrame blocks on the next frame. Closing the transport unblocks it,
// which is how the read pump is stopped on Disconnect.
func (t *WebsocketTransport) ReadFrame(ctx context.Context) (Frame, error) {
	conn := t.current()
	if conn == nil {
		return Frame{}, apperrors.ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		return Frame{}, fmt.Errorf("websocket read: %w", err)
	}
	return f, nil
}

// WriteFrame is fire-and-forget from the caller's point of view: a silent
// server-side drop is not detected here, there is no acknowledgment path.
func (t *WebsocketTransport) WriteFrame(f Frame) error {
	conn := t.current()
	if conn == nil {
		return apperrors.ErrNotConnected
	}
	if err := conn.WriteJSON(f); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

func (t *WebsocketTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

func (t *WebsocketTransport) current() *websocket.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}
