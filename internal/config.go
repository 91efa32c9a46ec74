package internal

import (
	"fmt"
	"time"
)

type Config struct {
	ServerWSURL    string        `env:"CHAT_WS_URL,required=true"`
	APIBaseURL     string        `env:"CHAT_API_URL,required=true"`
	AuthToken      string        `env:"CHAT_AUTH_TOKEN"`
	BufferSize     int           `env:"BUFFER_SIZE,default=64"`
	DedupWindow    time.Duration `env:"DEDUP_WINDOW,default=1s"`
	TypingExpiry   time.Duration `env:"TYPING_EXPIRY,default=3s"`
	RecentCapacity int           `env:"RECENT_CAPACITY,default=256"`
	MetricInterval time.Duration `env:"METRIC_INTERVAL,default=5s"`
	BadgerFilepath string        `env:"BADGER_FILEPATH"`
	CensoredChar   string        `env:"CHARACTER_REPLACEMENT,default=*"`
	LogLevel       string        `env:"LOG_LEVEL,default=INFO"`
}

// CharacterRune extracts the single replacement rune from configuration.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
