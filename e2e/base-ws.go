package e2e

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"

	"chatlink/observability"
	"chatlink/projection"
	"chatlink/runtime"
	"chatlink/store"
	"chatlink/transport"
	"chatlink/typing"
)

// BaseWsSuite wires a full session stack against a live chat server. The
// suite is skipped entirely when E2E_WS_ADDR is not set, so it never runs
// in a plain unit test invocation.
type BaseWsSuite struct {
	suite.Suite
	Config Config
	Log    *slog.Logger
}

func (s *BaseWsSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.WSAddr == "" {
		s.T().Skip("E2E_WS_ADDR not set, skipping live server scenarios")
	}
	s.Log = logs.GetLoggerFromLevel(slog.LevelDebug)
}

// Step prints a colorized scenario step header in the test log.
func (s *BaseWsSuite) Step(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// NewManager builds a connection manager over a real websocket transport
// with fresh session stores.
func (s *BaseWsSuite) NewManager() *runtime.ConnectionManager {
	return runtime.NewConnectionManager(
		s.Log,
		transport.NewWebsocketTransport(s.Config.WSAddr, s.Log),
		projection.NewTranscript(projection.DefaultDedupWindow),
		store.NewUnreadStore(),
		store.NewRecentCache(store.DefaultRecentCapacity),
		typing.NewController(typing.DefaultExpiry, s.Log),
		observability.NewMonitor(s.Log),
		64,
	)
}
