package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		bytes  []byte
		want   Event
		wantOk bool
	}{
		{
			name:   "note on",
			bytes:  []byte{0x90, 60, 100},
			want:   Event{Kind: KindNoteOn, Channel: 0, Data1: 60, Data2: 100},
			wantOk: true,
		},
		{
			name:   "note on channel 3",
			bytes:  []byte{0x92, 64, 1},
			want:   Event{Kind: KindNoteOn, Channel: 2, Data1: 64, Data2: 1},
			wantOk: true,
		},
		{
			name:   "note on velocity zero becomes note off",
			bytes:  []byte{0x90, 60, 0},
			want:   Event{Kind: KindNoteOff, Channel: 0, Data1: 60},
			wantOk: true,
		},
		{
			name:   "note off",
			bytes:  []byte{0x85, 72, 64},
			want:   Event{Kind: KindNoteOff, Channel: 5, Data1: 72, Data2: 64},
			wantOk: true,
		},
		{
			name:   "control change",
			bytes:  []byte{0xB0, 64, 127},
			want:   Event{Kind: KindControlChange, Channel: 0, Data1: 64, Data2: 127},
			wantOk: true,
		},
		{
			name:   "program change two bytes",
			bytes:  []byte{0xC5, 12},
			want:   Event{Kind: KindProgramChange, Channel: 5, Data1: 12},
			wantOk: true,
		},
		{
			name:   "program change with padded third byte",
			bytes:  []byte{0xC0, 7, 0},
			want:   Event{Kind: KindProgramChange, Channel: 0, Data1: 7},
			wantOk: true,
		},
		{
			name:   "pitch bend",
			bytes:  []byte{0xE1, 0x12, 0x34},
			want:   Event{Kind: KindPitchBend, Channel: 1, Data1: 0x12, Data2: 0x34},
			wantOk: true,
		},
		{
			name:   "channel pressure surfaces as other",
			bytes:  []byte{0xD0, 10, 0},
			want:   Event{Kind: KindOther, Channel: 0, Data1: 10, Data2: 0, Raw: []byte{0xD0, 10, 0}},
			wantOk: true,
		},
		{
			name:   "sysex surfaces as other",
			bytes:  []byte{0xF0, 0x7E, 0x06},
			want:   Event{Kind: KindOther, Channel: 0, Data1: 0x7E, Data2: 0x06, Raw: []byte{0xF0, 0x7E, 0x06}},
			wantOk: true,
		},
		{
			name:   "timing clock filtered",
			bytes:  []byte{0xF8},
			wantOk: false,
		},
		{
			name:   "active sensing filtered",
			bytes:  []byte{0xFE},
			wantOk: false,
		},
		{
			name:   "empty packet",
			bytes:  nil,
			wantOk: false,
		},
		{
			name:   "two byte note on dropped",
			bytes:  []byte{0x90, 60},
			wantOk: false,
		},
		{
			name:   "lone status byte dropped",
			bytes:  []byte{0x80},
			wantOk: false,
		},
		{
			name:   "two byte channel pressure dropped",
			bytes:  []byte{0xD0, 10},
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.bytes)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPitchBendNormalization(t *testing.T) {
	mid, ok := Decode([]byte{0xE0, 0x00, 0x40})
	require.True(t, ok)
	assert.InDelta(t, 0.0, mid.BendValue(), 0.001, "center position should be about zero")

	low, ok := Decode([]byte{0xE0, 0x00, 0x00})
	require.True(t, ok)
	assert.Equal(t, -1.0, low.BendValue())

	high, ok := Decode([]byte{0xE0, 0x7F, 0x7F})
	require.True(t, ok)
	assert.Equal(t, 1.0, high.BendValue())
}

func TestEventString(t *testing.T) {
	tests := []struct {
		bytes []byte
		want  string
	}{
		{[]byte{0x90, 60, 100}, "ch 1 note on  C4 vel 100"},
		{[]byte{0x80, 69, 0}, "ch 1 note off A4"},
		{[]byte{0x93, 61, 1}, "ch 4 note on  Db4 vel 1"},
		{[]byte{0xB0, 64, 127}, "ch 1 cc 64 val 127"},
		{[]byte{0xC2, 5}, "ch 3 program 5"},
	}
	for _, tt := range tests {
		event, ok := Decode(tt.bytes)
		require.True(t, ok)
		assert.Equal(t, tt.want, event.String())
	}
}

func TestNoteName(t *testing.T) {
	tests := []struct {
		note uint8
		want string
	}{
		{21, "A0"},
		{60, "C4"},
		{61, "Db4"},
		{69, "A4"},
		{72, "C5"},
		{108, "C8"},
	}
	for _, tt := range tests {
		if got := NoteName(tt.note); got != tt.want {
			t.Errorf("NoteName(%d) = %q, want %q", tt.note, got, tt.want)
		}
	}
}

func TestIsBlackKey(t *testing.T) {
	black := []uint8{61, 63, 66, 68, 70}
	white := []uint8{60, 62, 64, 65, 67, 69, 71, 72}
	for _, n := range black {
		if !IsBlackKey(n) {
			t.Errorf("IsBlackKey(%d) = false, want true", n)
		}
	}
	for _, n := range white {
		if IsBlackKey(n) {
			t.Errorf("IsBlackKey(%d) = true, want false", n)
		}
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		in      string
		want    uint8
		wantErr bool
	}{
		{in: "C4", want: 60},
		{in: "c4", want: 60},
		{in: "Bb2", want: 46},
		{in: "f#3", want: 54},
		{in: "A0", want: 21},
		{in: "60", want: 60},
		{in: "C-1", want: 0},
		{in: "H2", wantErr: true},
		{in: "C", wantErr: true},
		{in: "200", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseNote(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseNote(%q) expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNote(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNote(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
