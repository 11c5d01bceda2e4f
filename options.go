package tilequeue

import "log/slog"

type (
	settings struct {
		logger       *slog.Logger
		capacityHint int
	}
	// Option configures a [Queue] constructed by [New].
	Option func(*settings) error
)

func makeSettings(options []Option) (settings, error) {
	set := settings{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, apply := range options {
		if err := apply(&set); err != nil {
			return settings{}, err
		}
	}
	return set, nil
}

// WithLogger directs the queue's debug records to logger.
// By default they are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(set *settings) error {
		if logger != nil {
			set.logger = logger
		}
		return nil
	}
}

// WithCapacityHint preallocates room for the given number of tiles.
// The queue still grows past the hint as needed.
func WithCapacityHint(tiles int) Option {
	return func(set *settings) error {
		if tiles < 0 {
			return capacityHintError(tiles)
		}
		set.capacityHint = tiles
		return nil
	}
}
