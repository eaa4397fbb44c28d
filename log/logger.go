// Copyright 2024 The gprism Authors
// This file is part of the gprism library.
//
// The gprism library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gprism library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the gprism library. If not, see <http://www.gnu.org/licenses/>.

// Package log provides the leveled, key-value structured logger used across
// the gprism codebase.
package log

import (
	"sync"
	"time"

	"github.com/go-stack/stack"
)

// Lvl is a log level.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

// AlignedString returns a 5-character string containing the name of a Lvl.
func (l Lvl) AlignedString() string {
	switch l {
	case LvlTrace:
		return "TRACE"
	case LvlDebug:
		return "DEBUG"
	case LvlInfo:
		return "INFO "
	case LvlWarn:
		return "WARN "
	case LvlError:
		return "ERROR"
	case LvlCrit:
		return "CRIT "
	default:
		panic("bad level")
	}
}

// Record is what a Logger asks its handler to write.
type Record struct {
	Time time.Time
	Lvl  Lvl
	Msg  string
	Ctx  []interface{}
	Call stack.Call
}

// Handler writes log records.
type Handler interface {
	Log(r *Record) error
}

// Logger writes key/value pairs to a Handler.
type Logger interface {
	// New returns a new Logger that has this logger's context plus the given context.
	New(ctx ...interface{}) Logger

	// SetHandler updates the logger to write records to the specified handler.
	SetHandler(h Handler)

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	mu  sync.Mutex
	ctx []interface{}
	h   Handler
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}) {
	l.mu.Lock()
	h := l.h
	l.mu.Unlock()
	if h == nil {
		return
	}
	h.Log(&Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  append(append([]interface{}{}, l.ctx...), normalize(ctx)...),
		Call: stack.Caller(2),
	})
}

func (l *logger) New(ctx ...interface{}) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &logger{ctx: append(append([]interface{}{}, l.ctx...), normalize(ctx)...), h: l.h}
}

func (l *logger) SetHandler(h Handler) {
	l.mu.Lock()
	l.h = h
	l.mu.Unlock()
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.write(msg, LvlCrit, ctx) }

func normalize(ctx []interface{}) []interface{} {
	// ctx needs to be even because it's a series of key/value pairs;
	// pad with nil rather than dropping the dangling key.
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil)
	}
	return ctx
}

var root = &logger{}

func init() {
	root.SetHandler(LvlFilterHandler(LvlInfo, StreamHandler(stderr(), TerminalFormat())))
}

// Root returns the root logger.
func Root() Logger { return root }

// Trace is a convenience alias for Root().Trace.
func Trace(msg string, ctx ...interface{}) { root.write(msg, LvlTrace, ctx) }

// Debug is a convenience alias for Root().Debug.
func Debug(msg string, ctx ...interface{}) { root.write(msg, LvlDebug, ctx) }

// Info is a convenience alias for Root().Info.
func Info(msg string, ctx ...interface{}) { root.write(msg, LvlInfo, ctx) }

// Warn is a convenience alias for Root().Warn.
func Warn(msg string, ctx ...interface{}) { root.write(msg, LvlWarn, ctx) }

// Error is a convenience alias for Root().Error.
func Error(msg string, ctx ...interface{}) { root.write(msg, LvlError, ctx) }

// Crit is a convenience alias for Root().Crit.
func Crit(msg string, ctx ...interface{}) { root.write(msg, LvlCrit, ctx) }
