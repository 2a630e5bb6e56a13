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

package xlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Info("should be dropped", "tick", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected Info to be filtered out at LevelWarn, got %q", buf.String())
	}

	l.Warn("organism died", "id", 7)
	if !strings.Contains(buf.String(), "organism died") {
		t.Fatalf("expected Warn message in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "id=7") {
		t.Fatalf("expected key=value pair in output, got %q", buf.String())
	}
}

func TestWithPrependsContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo).With("tick", 42)
	l.Info("step complete")
	if !strings.Contains(buf.String(), "tick=42") {
		t.Fatalf("expected prepended context, got %q", buf.String())
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.Error("decode failure", "opcode", "ADD")
	if !strings.Contains(buf.String(), "stack=") {
		t.Fatalf("expected Error to attach a stack trace, got %q", buf.String())
	}
}
