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
	"strings"
	"testing"
	"time"

	"github.com/go-stack/stack"
)

func testRecord() *Record {
	return &Record{
		Time: time.Unix(0, 0),
		Lvl:  LvlInfo,
		Msg:  "hello",
		Ctx:  []interface{}{"key", "value"},
		Call: stack.Caller(0),
	}
}

func TestLogfmtFormat(t *testing.T) {
	out := string(LogfmtFormat().Format(testRecord()))
	if !strings.Contains(out, "lvl=info") || !strings.Contains(out, "msg=hello") || !strings.Contains(out, "key=value") {
		t.Fatalf("unexpected logfmt output: %q", out)
	}
	if strings.Contains(out, "call=") {
		t.Fatalf("call site rendered without origins enabled: %q", out)
	}
}

func TestPrintOriginsRendersCallSite(t *testing.T) {
	PrintOrigins(true)
	defer PrintOrigins(false)

	out := string(LogfmtFormat().Format(testRecord()))
	if !strings.Contains(out, "call=") || !strings.Contains(out, "handler_test.go:") {
		t.Fatalf("logfmt missing call site: %q", out)
	}

	out = string(TerminalFormat().Format(testRecord()))
	if !strings.Contains(out, "handler_test.go:") {
		t.Fatalf("terminal format missing call site: %q", out)
	}
}
