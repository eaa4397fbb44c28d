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

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	timeFormat  = "2006-01-02T15:04:05-0700"
	floatFormat = 'f'
)

// locationEnabled is an atomic flag controlling whether the formats render
// the record's call site.
var locationEnabled uint32

// PrintOrigins sets or unsets log location (file:line) printing.
func PrintOrigins(print bool) {
	if print {
		atomic.StoreUint32(&locationEnabled, 1)
	} else {
		atomic.StoreUint32(&locationEnabled, 0)
	}
}

// StreamHandler writes log records to an io.Writer with the given format.
// StreamHandler wraps itself with a mutex for safe concurrent use.
func StreamHandler(wr io.Writer, fmtr Format) Handler {
	var mu sync.Mutex
	return funcHandler(func(r *Record) error {
		mu.Lock()
		defer mu.Unlock()
		_, err := wr.Write(fmtr.Format(r))
		return err
	})
}

// LvlFilterHandler returns a Handler that only writes records which are
// less than the given verbosity level to the wrapped Handler.
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return funcHandler(func(r *Record) error {
		if r.Lvl > maxLvl {
			return nil
		}
		return h.Log(r)
	})
}

// DiscardHandler drops all log records.
func DiscardHandler() Handler {
	return funcHandler(func(r *Record) error { return nil })
}

type funcHandler func(r *Record) error

func (h funcHandler) Log(r *Record) error { return h(r) }

// Format turns a Record into writable bytes.
type Format interface {
	Format(r *Record) []byte
}

type formatFunc func(*Record) []byte

func (f formatFunc) Format(r *Record) []byte { return f(r) }

// TerminalFormat formats records optimized for human readability on a
// terminal, with color-coded level output.
func TerminalFormat() Format {
	color := isatty.IsTerminal(os.Stderr.Fd())
	return formatFunc(func(r *Record) []byte {
		var b strings.Builder
		lvl := r.Lvl.AlignedString()
		if color {
			b.WriteString(fmt.Sprintf("\x1b[%dm%s\x1b[0m", lvlColor(r.Lvl), lvl))
		} else {
			b.WriteString(lvl)
		}
		b.WriteString("[")
		b.WriteString(r.Time.Format("01-02|15:04:05.000"))
		if atomic.LoadUint32(&locationEnabled) != 0 {
			b.WriteString("|")
			b.WriteString(fmt.Sprintf("%+v", r.Call))
		}
		b.WriteString("] ")
		b.WriteString(r.Msg)
		for i := 0; i < len(r.Ctx); i += 2 {
			b.WriteString(" ")
			b.WriteString(formatValue(r.Ctx[i]))
			b.WriteString("=")
			b.WriteString(formatValue(r.Ctx[i+1]))
		}
		b.WriteString("\n")
		return []byte(b.String())
	})
}

// LogfmtFormat prints records in logfmt format, an easy machine-parseable
// but human-readable format for key/value pairs.
func LogfmtFormat() Format {
	return formatFunc(func(r *Record) []byte {
		var b strings.Builder
		b.WriteString("t=")
		b.WriteString(r.Time.Format(timeFormat))
		b.WriteString(" lvl=")
		b.WriteString(strings.TrimSpace(strings.ToLower(r.Lvl.AlignedString())))
		b.WriteString(" msg=")
		b.WriteString(quote(r.Msg))
		if atomic.LoadUint32(&locationEnabled) != 0 {
			b.WriteString(" call=")
			b.WriteString(quote(fmt.Sprintf("%+v", r.Call)))
		}
		for i := 0; i < len(r.Ctx); i += 2 {
			b.WriteString(" ")
			b.WriteString(formatValue(r.Ctx[i]))
			b.WriteString("=")
			b.WriteString(quote(formatValue(r.Ctx[i+1])))
		}
		b.WriteString("\n")
		return []byte(b.String())
	})
}

func lvlColor(lvl Lvl) int {
	switch lvl {
	case LvlCrit:
		return 35
	case LvlError:
		return 31
	case LvlWarn:
		return 33
	case LvlInfo:
		return 32
	case LvlDebug:
		return 36
	default:
		return 34
	}
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case time.Time:
		return v.Format(timeFormat)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprintf("%+v", v)
	}
}

func quote(s string) string {
	if strings.ContainsAny(s, " =\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

func stderr() io.Writer {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return colorable.NewColorableStderr()
	}
	return os.Stderr
}
