package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chatlink/directory"
	"chatlink/internal"
	"chatlink/moderation"
	"chatlink/notifier"
	"chatlink/observability"
	"chatlink/projection"
	"chatlink/runtime"
	"chatlink/search"
	"chatlink/store"
	"chatlink/transport"
	"chatlink/typing"
	"chatlink/ui"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run handles configuration loading, session wiring and the interactive
// loop. This pattern keeps resource cleanup in defers and errors
// propagating to a single place.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CensoredChar)
	if err != nil {
		return exitConfig, err
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Conversation snapshot storage. Without a configured path the
	// snapshot lives in memory and the conversation list starts empty on
	// every launch.
	options := badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING)
	if config.BadgerFilepath == "" {
		options = options.WithInMemory(true)
	}
	db, err := badger.Open(options)
	if err != nil {
		return exitRuntime, fmt.Errorf("snapshot database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 4. Outbound content moderation.
	wordLists, err := moderation.LoadWordLists()
	if err != nil {
		return exitRuntime, err
	}
	moderator, err := moderation.NewModerator(wordLists, charReplacement)
	if err != nil {
		return exitRuntime, err
	}

	// 5. Session search index (in-memory, dies with the session).
	index, err := search.NewIndex(log)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		log.Info("Closing search index...")
		_ = index.Close()
	}()

	// 6. Session state and the connection manager.
	transcript := projection.NewTranscript(config.DedupWindow)
	unread := store.NewUnreadStore()
	recent := store.NewRecentCache(config.RecentCapacity)
	typingCtl := typing.NewController(config.TypingExpiry, log)
	monitor := observability.NewMonitor(log)
	go monitor.Listen(ctx, config.MetricInterval)

	ws := transport.NewWebsocketTransport(config.ServerWSURL, log)
	manager := runtime.NewConnectionManager(log, ws, transcript, unread, recent, typingCtl, monitor, config.BufferSize).
		WithModerator(&moderator).
		WithSearchIndex(index).
		WithSnapshot(store.NewSnapshotRepository(db, log))

	if err := manager.Connect(ctx, config.AuthToken); err != nil {
		return exitRuntime, fmt.Errorf("could not connect to %s: %w", config.ServerWSURL, err)
	}
	defer manager.Disconnect()

	session := manager.Session()
	console := ui.NewConsole(os.Stdout)
	feed := notifier.New(log, unread, func() string { return session.UserID }, transcript.ActivePartner)
	manager.Subscribe(feed)

	users := directory.NewClient(config.APIBaseURL, session.Token, log)

	log.Info(fmt.Sprintf(">>> Connected as %s! (Ctrl+C or /quit to exit)", session.UserID))

	return repl(ctx, console, manager, feed, users, index, transcript, recent, unread)
}

// repl reads commands from stdin until the context is canceled.
func repl(ctx context.Context, console *ui.Console, manager *runtime.ConnectionManager,
	feed *notifier.Notifier, users *directory.Client, index *search.Index,
	transcript *projection.Transcript, recent *store.RecentCache, unread *store.UnreadStore) (int, error) {

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	var activeName string
	for {
		select {
		case <-ctx.Done():
			return exitOK, nil
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}

			switch {
			case line == "/quit":
				return exitOK, nil

			case line == "/list":
				console.RenderConversations(recent.List(), unread.Buckets())

			case line == "/unread":
				console.RenderToasts(feed.Toasts(), feed.TotalUnread())

			case line == "/users":
				console.RenderUsers(users.ListPublicUsers(ctx))

			case strings.HasPrefix(line, "/find "):
				console.RenderUsers(users.SearchUsers(ctx, strings.TrimPrefix(line, "/find ")))

			case strings.HasPrefix(line, "/search "):
				hits, err := index.Search(ctx, strings.TrimPrefix(line, "/search "), 10)
				if err != nil {
					fmt.Println("search failed:", err)
					continue
				}
				console.RenderHits(hits)

			case strings.HasPrefix(line, "/open "):
				fields := strings.Fields(strings.TrimPrefix(line, "/open "))
				if len(fields) == 0 {
					continue
				}
				partnerID := fields[0]
				activeName = partnerID
				if len(fields) > 1 {
					activeName = strings.Join(fields[1:], " ")
				}
				if err := manager.OpenConversation(partnerID); err != nil {
					fmt.Println("open failed:", err)
					continue
				}
				console.RenderTranscript(manager.Session().UserID, transcript.Messages())

			case line == "/close":
				manager.CloseConversation()
				activeName = ""

			case line == "/state":
				console.RenderState(manager.State())

			default:
				partnerID := transcript.ActivePartner()
				if partnerID == "" {
					fmt.Println("no open conversation, use /open <user-id>")
					continue
				}
				if _, err := manager.Send(partnerID, activeName, line); err != nil {
					fmt.Println("send failed:", err)
				}
			}
		}
	}
}
