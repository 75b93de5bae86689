// Package log provides structured logging with verbosity levels for ktgradle.
// It wraps log/slog and follows the kubectl/klog -v=N convention.
package log

import "log/slog"

// LevelTrace is a custom level below slog.LevelDebug used for
// step-by-step injector output.
const LevelTrace = slog.Level(-8)

// Verbosity level constants for -v=N.
const (
	VerbosityError = 0 // Errors only (quiet)
	VerbosityWarn  = 1 // + Warnings (default)
	VerbosityInfo  = 2 // + Info (files written, config loaded)
	VerbosityDebug = 3 // + Debug (version and repository decisions)
	VerbosityTrace = 4 // + Trace (every builder append)
)

// VerbosityToLevel maps -v=N to a slog level.
func VerbosityToLevel(v int) slog.Level {
	switch {
	case v <= VerbosityError:
		return slog.LevelError
	case v == VerbosityWarn:
		return slog.LevelWarn
	case v == VerbosityInfo:
		return slog.LevelInfo
	case v == VerbosityDebug:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// LevelToVerbosity maps a slog level back to -v=N (for display).
func LevelToVerbosity(l slog.Level) int {
	switch {
	case l >= slog.LevelError:
		return VerbosityError
	case l >= slog.LevelWarn:
		return VerbosityWarn
	case l >= slog.LevelInfo:
		return VerbosityInfo
	case l >= slog.LevelDebug:
		return VerbosityDebug
	default:
		return VerbosityTrace
	}
}

// LevelName returns the display name for a level, including TRACE.
func LevelName(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}
