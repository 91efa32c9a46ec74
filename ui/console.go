// Package ui renders the session state for the terminal client.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"chatlink/domain"
	"chatlink/notifier"
	"chatlink/search"
)

type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// RenderConversations prints the recency-ordered conversation list with
// unread badges merged in.
func (c *Console) RenderConversations(summaries []domain.ConversationSummary, buckets []domain.UnreadBucket) {
	unreadByPartner := make(map[string]int, len(buckets))
	for _, b := range buckets {
		unreadByPartner[b.PartnerID] = b.Count
	}

	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"Partner", "Last message", "When", "Unread"})
	for _, s := range summaries {
		badge := ""
		if count := unreadByPartner[s.PartnerID]; count > 0 {
			badge = color.Red.Sprintf("%d", count)
		}
		table.Append([]string{
			s.PartnerName,
			truncate(s.LastMessage, 48),
			s.LastTimestamp.Format(time.Kitchen),
			badge,
		})
	}
	table.Render()
}

// RenderTranscript prints the open conversation, marking own messages.
func (c *Console) RenderTranscript(selfID string, messages []domain.Message) {
	for _, m := range messages {
		author := m.SenderName
		if m.SenderID == selfID {
			author = color.Green.Render("me")
		}
		fmt.Fprintf(c.out, "[%s] %s: %s\n", m.CreatedAt.Format(time.TimeOnly), author, m.Content)
	}
}

// RenderToasts prints the floating-notifier feed.
func (c *Console) RenderToasts(toasts []notifier.Toast, total int) {
	if total > 0 {
		fmt.Fprintln(c.out, color.Bold.Sprintf("%d unread", total))
	}
	for _, t := range toasts {
		fmt.Fprintf(c.out, "%s %s: %s\n",
			t.At.Format(time.TimeOnly),
			color.Cyan.Render(t.SenderName),
			truncate(t.Preview, 60))
	}
}

// RenderUsers prints the new-conversation picker entries.
func (c *Console) RenderUsers(users []domain.User) {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"ID", "Name", "Role"})
	for _, u := range users {
		table.Append([]string{u.ID, u.FullName, u.Role})
	}
	table.Render()
}

// RenderHits prints transcript search results.
func (c *Console) RenderHits(hits []search.Hit) {
	for _, h := range hits {
		fmt.Fprintf(c.out, "[%s] %s: %s\n", h.At.Format(time.TimeOnly), h.SenderID, h.Content)
	}
}

func (c *Console) RenderState(state domain.ConnectionState) {
	switch state {
	case domain.StateConnected:
		fmt.Fprintln(c.out, color.Green.Render("connected"))
	case domain.StateConnecting:
		fmt.Fprintln(c.out, color.Yellow.Render("connecting..."))
	default:
		fmt.Fprintln(c.out, color.Red.Render(string(state)))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
