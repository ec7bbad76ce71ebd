package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// RequestInfo contains information about one command execution
type RequestInfo struct {
	Command   string
	Args      []string
	StartTime time.Time
	Duration  time.Duration
	Error     error
	Metadata  map[string]any
}

// Logger creates a middleware that logs command executions.
func Logger(options ...MiddlewareOption) Middleware {
	config := newConfig(options)

	return func(next ActionFunc) ActionFunc {
		return func(ctx Context) error {
			if config.LogLevel == LogLevelNone || config.Output == nil {
				return next(ctx)
			}

			info := &RequestInfo{
				Command:   getCommandName(ctx),
				StartTime: time.Now(),
			}
			if config.IncludeArgs {
				info.Args = append(info.Args, ctx.Args()...)
			}

			if config.LogLevel >= LogLevelDebug {
				writeLog(config, info, "START")
			}

			err := next(ctx)

			info.Duration = time.Since(info.StartTime)
			info.Error = err
			if meta, ok := ctx.Get("logger.metadata").(map[string]any); ok {
				info.Metadata = meta
			}
			writeLog(config, info, levelFor(err))
			return err
		}
	}
}

func levelFor(err error) string {
	if err != nil {
		return "ERROR"
	}
	return "SUCCESS"
}

func shouldLog(configLevel LogLevel, messageLevel string) bool {
	switch messageLevel {
	case "ERROR":
		return configLevel >= LogLevelError
	case "START":
		return configLevel >= LogLevelDebug
	default:
		return configLevel >= LogLevelInfo
	}
}

func writeLog(config *MiddlewareConfig, info *RequestInfo, level string) {
	if !shouldLog(config.LogLevel, level) {
		return
	}
	switch config.LogFormat {
	case LogFormatJSON:
		writeJSONLog(config.Output, info, level)
	default:
		writeTextLog(config.Output, info, level)
	}
}

func writeTextLog(w io.Writer, info *RequestInfo, level string) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s command=%q", info.StartTime.Format("2006-01-02 15:04:05"), level, info.Command)
	if info.Duration > 0 {
		fmt.Fprintf(&b, " duration=%s", info.Duration)
	}
	if len(info.Args) > 0 {
		fmt.Fprintf(&b, " args=%q", strings.Join(info.Args, " "))
	}
	if info.Error != nil {
		fmt.Fprintf(&b, " error=%q", info.Error.Error())
	}
	b.WriteByte('\n')

	//nolint:errcheck // Logging is best-effort; ignore write errors.
	io.WriteString(w, b.String())
}

type jsonEntry struct {
	Timestamp  string         `json:"timestamp"`
	Level      string         `json:"level"`
	Command    string         `json:"command"`
	DurationMS *int64         `json:"duration_ms,omitempty"`
	Args       []string       `json:"args,omitempty"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func writeJSONLog(w io.Writer, info *RequestInfo, level string) {
	entry := jsonEntry{
		Timestamp: info.StartTime.Format(time.RFC3339),
		Level:     level,
		Command:   info.Command,
		Args:      info.Args,
		Metadata:  info.Metadata,
	}
	if info.Duration > 0 {
		ms := info.Duration.Milliseconds()
		entry.DurationMS = &ms
	}
	if info.Error != nil {
		entry.Error = info.Error.Error()
	}

	//nolint:errcheck // Logging is best-effort; ignore write errors.
	json.NewEncoder(w).Encode(entry)
}

// DebugLogger creates a logger with debug level (logs everything)
func DebugLogger(w io.Writer) Middleware {
	return Logger(WithOutput(w), WithLogLevel(LogLevelDebug))
}

// JSONLogger creates a logger that outputs JSON lines to w.
func JSONLogger(w io.Writer) Middleware {
	return Logger(WithOutput(w), WithLogFormat(LogFormatJSON))
}
