package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomKey_Commutative(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name string
		a, b string
		want string
	}{
		{name: "Already ordered", a: "1", b: "2", want: "1-2"},
		{name: "Reversed", a: "2", b: "1", want: "1-2"},
		{name: "Alphanumeric ids", a: "u42", b: "u17", want: "u17-u42"},
		{name: "Same id on both sides", a: "7", b: "7", want: "7-7"},
		{name: "Uuid style ids", a: "b3f1", b: "a9c0", want: "a9c0-b3f1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, RoomKey(tt.a, tt.b))
			req.Equal(RoomKey(tt.a, tt.b), RoomKey(tt.b, tt.a))
		})
	}
}

func TestRoomKey_DistinctPairsDistinctRooms(t *testing.T) {
	req := require.New(t)
	req.NotEqual(RoomKey("1", "2"), RoomKey("1", "3"))
	req.NotEqual(RoomKey("1", "2"), RoomKey("2", "3"))
}
