// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package labels

import (
	"strings"
	"testing"

	"github.com/suprsokr/arc"
)

// TestLabelsFileRoundTrip checks both "\n" and "\r\n" line terminators
// resolve to the same labels.
func TestLabelsFileRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"lf", "fighter/mario/model/body/c00/model.numatb\nui/message/msg_name.msbt\n"},
		{"crlf", "fighter/mario/model/body/c00/model.numatb\r\nui/message/msg_name.msbt\r\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := FromReader(strings.NewReader(test.data))
			if err != nil {
				t.Fatalf("FromReader: %v", err)
			}
			if d.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", d.Len())
			}

			hash := arc.Hash40FromStr("fighter/mario/model/body/c00/model.numatb")
			label, ok := d.Label(hash)
			if !ok {
				t.Fatalf("Label(%s) not found", hash)
			}
			if label != "fighter/mario/model/body/c00/model.numatb" {
				t.Errorf("Label = %q, want the original path", label)
			}
		})
	}
}

func TestLabelsMissing(t *testing.T) {
	d, err := FromReader(strings.NewReader("a\nb\n"))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if _, ok := d.Label(arc.Hash40FromStr("not-present")); ok {
		t.Error("Label(not-present) found, want not found")
	}
}

func TestLabelsAddOverwrites(t *testing.T) {
	d := NewDictionary()
	d.Add("some/path.bntx")
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
	label, ok := d.Label(arc.Hash40FromStr("some/path.bntx"))
	if !ok || label != "some/path.bntx" {
		t.Errorf("Label = %q, %v, want %q, true", label, ok, "some/path.bntx")
	}
}

func TestGlobalLabels(t *testing.T) {
	d := NewDictionary()
	d.Add("global/example.bin")
	SetGlobalLabels(d)

	label, ok := GlobalLabel(arc.Hash40FromStr("global/example.bin"))
	if !ok || label != "global/example.bin" {
		t.Errorf("GlobalLabel = %q, %v, want %q, true", label, ok, "global/example.bin")
	}
}
