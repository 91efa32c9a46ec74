package domain

import "strings"

const roomSeparator = "-"

// RoomKey derives the conversation room identifier for two participants.
// Identifiers are sorted ascending before joining so that both sides of a
// conversation compute the same key: RoomKey(a, b) == RoomKey(b, a).
func RoomKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + roomSeparator + b
}
