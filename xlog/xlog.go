// Copyright 2024 The Evochora Authors
// This file is part of Evochora.
//
// Evochora is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Evochora is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Evochora. If not, see <http://www.gnu.org/licenses/>.

// Package xlog provides the leveled, key-value logger used by sim and
// cmd/evochora. The call surface (Debug/Info/Warn/Error/Crit, each
// taking a message followed by alternating key/value pairs) mirrors
// go-probeum's own log package; the implementation underneath is
// log/slog rather than log15, with a terminal handler that colorizes the
// level the way go-probeum's terminal format does, gated by the same
// isatty check cmd/gprobe uses to decide whether to emit color codes.
package xlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-stack/stack"
	"github.com/mattn/go-isatty"
)

// Level mirrors go-probeum/log's five-level scheme.
type Level int

const (
	LevelCrit Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelCrit:
		return slog.Level(12)
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Logger is the package's handle; the zero value is not usable, use New.
type Logger struct {
	inner *slog.Logger
	min   Level
}

var std = New(os.Stderr, LevelInfo)

// New builds a Logger writing to w, colorized if w is a terminal.
func New(w io.Writer, min Level) *Logger {
	h := &termHandler{
		w:     w,
		min:   min,
		color: isTerminal(w),
	}
	return &Logger{inner: slog.New(h), min: min}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetDefault replaces the package-level logger used by the free functions.
func SetDefault(l *Logger) { std = l }

func Debug(msg string, kv ...any) { std.log(LevelDebug, msg, kv...) }
func Info(msg string, kv ...any)  { std.log(LevelInfo, msg, kv...) }
func Warn(msg string, kv ...any)  { std.log(LevelWarn, msg, kv...) }
func Error(msg string, kv ...any) { std.log(LevelError, msg, kv...) }
func Crit(msg string, kv ...any)  { std.log(LevelCrit, msg, kv...) }

func (l *Logger) Debug(msg string, kv ...any) { l.log(LevelDebug, msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.log(LevelInfo, msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(LevelWarn, msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.log(LevelError, msg, kv...) }
func (l *Logger) Crit(msg string, kv ...any)  { l.log(LevelCrit, msg, kv...) }

// With returns a Logger that prepends kv to every subsequent call,
// grounded on go-probeum/log's Logger.New(ctx ...interface{}) sub-logger
// pattern (e.g. log.New("tick", n)).
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{inner: l.inner.With(kv...), min: l.min}
}

func (l *Logger) log(lvl Level, msg string, kv ...any) {
	if lvl > l.min {
		return
	}
	ctx := context.Background()
	if lvl <= LevelError {
		kv = append(kv, "stack", callerStack())
	}
	l.inner.Log(ctx, lvl.slogLevel(), msg, kv...)
	if lvl == LevelCrit {
		os.Exit(1)
	}
}

func callerStack() string {
	s := stack.Trace().TrimRuntime()
	if len(s) == 0 {
		return ""
	}
	return fmt.Sprintf("%+v", s[0])
}

// termHandler is a minimal slog.Handler emitting go-probeum's terminal
// line shape: "LVL[timestamp] msg  key=value key=value ...". attrs holds
// key/value pairs attached via Logger.With, prepended to every record's
// own attributes.
type termHandler struct {
	w     io.Writer
	min   Level
	color bool
	attrs []slog.Attr
}

func (h *termHandler) Enabled(_ context.Context, level slog.Level) bool { return true }

func (h *termHandler) Handle(_ context.Context, r slog.Record) error {
	lvl, tag := levelTag(r.Level)
	if h.color {
		tag = colorForLevel(lvl)(tag)
	}
	var b strings.Builder
	b.WriteString(tag)
	b.WriteByte('[')
	b.WriteString(r.Time.Format("01-02|15:04:05.000"))
	b.WriteString("] ")
	b.WriteString(r.Message)
	writeAttr := func(a slog.Attr) {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		fmt.Fprintf(&b, "%v", a.Value.Any())
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})
	b.WriteByte('\n')
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *termHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &nh
}

func (h *termHandler) WithGroup(name string) slog.Handler { return h }

func levelTag(l slog.Level) (Level, string) {
	switch {
	case l >= slog.Level(12):
		return LevelCrit, "CRIT "
	case l >= slog.LevelError:
		return LevelError, "ERROR"
	case l >= slog.LevelWarn:
		return LevelWarn, "WARN "
	case l >= slog.LevelInfo:
		return LevelInfo, "INFO "
	default:
		return LevelDebug, "DEBUG"
	}
}

func colorForLevel(l Level) func(string, ...any) string {
	switch l {
	case LevelCrit, LevelError:
		return color.New(color.FgRed).SprintfFunc()
	case LevelWarn:
		return color.New(color.FgYellow).SprintfFunc()
	case LevelInfo:
		return color.New(color.FgGreen).SprintfFunc()
	default:
		return color.New(color.FgCyan).SprintfFunc()
	}
}
