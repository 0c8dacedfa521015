package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
)

// writer is an io.Writer that splits its input stream into lines and writes
// those lines to an underlying logger.
type writer struct {
	// callback is the logging callback.
	callback func(string)
	// buffer is any incomplete line fragment left over from a previous write.
	buffer []byte
}

// trimCarriageReturn trims any single trailing carriage return from the end of
// a byte slice.
func trimCarriageReturn(buffer []byte) []byte {
	if len(buffer) > 0 && buffer[len(buffer)-1] == '\r' {
		return buffer[:len(buffer)-1]
	}
	return buffer
}

// Write implements io.Writer.Write.
func (w *writer) Write(buffer []byte) (int, error) {
	// Append the data to our internal buffer.
	w.buffer = append(w.buffer, buffer...)

	// Process all lines in the buffer, tracking the number of bytes that we
	// process.
	var processed int
	remaining := w.buffer
	for {
		// Find the index of the next newline character.
		index := bytes.IndexByte(remaining, '\n')
		if index == -1 {
			break
		}

		// Process the line.
		w.callback(string(trimCarriageReturn(remaining[:index])))

		// Update the number of bytes that we've processed.
		processed += index + 1

		// Update the remaining slice.
		remaining = remaining[index+1:]
	}

	// If we managed to process bytes, then truncate our internal buffer.
	if processed > 0 {
		// Compute the number of leftover bytes.
		leftover := len(w.buffer) - processed

		// If there are leftover bytes, then shift them to the front of the
		// buffer.
		if leftover > 0 {
			copy(w.buffer[:leftover], w.buffer[processed:])
		}

		// Truncate the buffer.
		w.buffer = w.buffer[:leftover]
	}

	// Done.
	return len(buffer), nil
}

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. Each logger has a level, and
// messages above that level are discarded. Loggers derived via Sublogger share
// their parent's output. It is safe for concurrent usage.
type Logger struct {
	// level is the maximum level of messages that the logger will emit.
	level Level
	// scope is the dotted scope prefix for the logger, if any.
	scope string
	// output is the underlying standard logger.
	output *log.Logger
}

// NewLogger creates a new root logger that writes messages at or below the
// specified level to the specified writer.
func NewLogger(level Level, destination io.Writer) *Logger {
	return &Logger{
		level:  level,
		output: log.New(destination, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// Level returns the logger's level. A nil logger reports LevelDisabled.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

// Sublogger creates a new sublogger with the specified name.
func (l *Logger) Sublogger(name string) *Logger {
	// If the logger is nil, then the sublogger will be as well.
	if l == nil {
		return nil
	}

	// Compute the new scope.
	scope := name
	if l.scope != "" {
		scope = l.scope + "." + name
	}

	// Create the new logger.
	return &Logger{
		level:  l.level,
		scope:  scope,
		output: l.output,
	}
}

// write is the internal logging method.
func (l *Logger) write(level Level, line string) {
	// Check whether or not the message should be emitted.
	if l == nil || level > l.level {
		return
	}

	// Add a scope prefix if necessary.
	if l.scope != "" {
		line = fmt.Sprintf("[%s] %s", l.scope, line)
	}

	// Log.
	l.output.Output(3, line)
}

// Error logs error information with an error prefix and red color.
func (l *Logger) Error(err error) {
	l.write(LevelError, color.RedString("Error: %v", err))
}

// Errorf logs error information with semantics equivalent to fmt.Printf, with
// an error prefix and red color.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.write(LevelError, color.RedString("Error: "+format, v...))
}

// Warn logs error information with a warning prefix and yellow color.
func (l *Logger) Warn(err error) {
	l.write(LevelWarn, color.YellowString("Warning: %v", err))
}

// Warnf logs information with semantics equivalent to fmt.Printf, with a
// warning prefix and yellow color.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.write(LevelWarn, color.YellowString("Warning: "+format, v...))
}

// Info logs information with semantics equivalent to fmt.Print.
func (l *Logger) Info(v ...interface{}) {
	l.write(LevelInfo, fmt.Sprint(v...))
}

// Infof logs information with semantics equivalent to fmt.Printf.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.write(LevelInfo, fmt.Sprintf(format, v...))
}

// Debug logs information with semantics equivalent to fmt.Print, but only if
// the logger's level is at least LevelDebug.
func (l *Logger) Debug(v ...interface{}) {
	l.write(LevelDebug, fmt.Sprint(v...))
}

// Debugf logs information with semantics equivalent to fmt.Printf, but only if
// the logger's level is at least LevelDebug.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.write(LevelDebug, fmt.Sprintf(format, v...))
}

// Trace logs information with semantics equivalent to fmt.Print, but only if
// the logger's level is LevelTrace.
func (l *Logger) Trace(v ...interface{}) {
	l.write(LevelTrace, fmt.Sprint(v...))
}

// Tracef logs information with semantics equivalent to fmt.Printf, but only if
// the logger's level is LevelTrace.
func (l *Logger) Tracef(format string, v ...interface{}) {
	l.write(LevelTrace, fmt.Sprintf(format, v...))
}

// Writer returns an io.Writer that logs each line written to it at the
// specified level.
func (l *Logger) Writer(level Level) io.Writer {
	// If the logger wouldn't emit anything at this level, then we can just
	// discard input. This saves us the overhead of scanning lines.
	if l == nil || level > l.level {
		return io.Discard
	}

	// Create the writer.
	return &writer{
		callback: func(s string) {
			l.write(level, s)
		},
	}
}
