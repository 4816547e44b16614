package arena

import (
	"log/slog"
	"os"
)

// Runtime debug flag for allocation logging - controlled by ARENA_LOG_ALLOC env var.
var logAlloc = os.Getenv("ARENA_LOG_ALLOC") != ""

// DefaultSplitThreshold splits a block only when the remainder holds at least
// two payload bytes.
const DefaultSplitThreshold = 1

// Options configures an arena handle.
type Options struct {
	// ZeroFill clears the payload area on Init. Ignored by Open.
	ZeroFill bool

	// SplitThreshold is the largest remainder that is absorbed into an
	// allocation instead of becoming a free block of its own. Negative values
	// are treated as 0, which splits whenever one payload byte would remain.
	SplitThreshold int

	// Logger receives allocation traces at debug level and rejected frees at
	// warn level. Nil means stderr when ARENA_LOG_ALLOC is set, otherwise discard.
	Logger *slog.Logger
}

// DefaultOptions is used when Init or Open receive nil options.
var DefaultOptions = Options{
	SplitThreshold: DefaultSplitThreshold,
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

func (o *Options) splitThreshold() int {
	return max(o.SplitThreshold, 0)
}
