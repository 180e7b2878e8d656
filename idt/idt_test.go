// SPDX-License-Identifier: Unlicense OR MIT

package idt

import (
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
)

const testSelector Selector = 0x08

func TestDescriptorSizes(t *testing.T) {
	if got := unsafe.Sizeof(Gate(0)); got != GateSize {
		t.Errorf("gate descriptor is %d bytes, want %d", got, GateSize)
	}
	var tbl Table
	if off := unsafe.Offsetof(tbl.gates); off != 0 {
		t.Errorf("gate array at offset %d, want 0: the table address must be the base address", off)
	}
	if got := unsafe.Sizeof(tbl.gates); got != GateSize*NumVectors {
		t.Errorf("gate array is %d bytes, want %d", got, GateSize*NumVectors)
	}
	var p Pointer
	if got := len(p.Encode()); got != PointerSize {
		t.Errorf("encoded pointer is %d bytes, want %d", got, PointerSize)
	}
}

func TestNewInterruptGate(t *testing.T) {
	offsets := []uint32{
		0x00000000,
		0x00100000,
		0xdeadbeef,
		0xffffffff,
	}
	for _, off := range offsets {
		g := NewInterruptGate(off, testSelector, Ring0)
		if got := g.Offset(); got != off {
			t.Errorf("offset %#08x: reassembled to %#08x", off, got)
		}
		if got := g.Selector(); got != testSelector {
			t.Errorf("offset %#08x: selector = %#04x, want %#04x", off, got, testSelector)
		}
		if got := g.Attributes(); got != 0x8e {
			t.Errorf("offset %#08x: attributes = %#02x, want 0x8e", off, got)
		}
		if got := g.ReservedByte(); got != 0 {
			t.Errorf("offset %#08x: reserved byte = %#02x, want 0", off, got)
		}
		if !g.Present() {
			t.Errorf("offset %#08x: gate not present", off)
		}
		if got := g.DPL(); got != Ring0 {
			t.Errorf("offset %#08x: DPL = %d, want 0", off, got)
		}
		if got := g.GateType(); got != 0xe {
			t.Errorf("offset %#08x: gate type = %#x, want 0xe", off, got)
		}
	}
}

// TestGateEncode pins the exact byte image: offset_low, selector,
// reserved, attributes, offset_high, all little endian.
func TestGateEncode(t *testing.T) {
	tests := []struct {
		name   string
		offset uint32
		sel    Selector
		dpl    Ring
		want   [GateSize]byte
	}{
		{
			name:   "double fault handler at 1MB",
			offset: 0x00100000,
			sel:    testSelector,
			dpl:    Ring0,
			want:   [GateSize]byte{0x00, 0x00, 0x08, 0x00, 0x00, 0x8e, 0x10, 0x00},
		},
		{
			name:   "byte order probe",
			offset: 0xdeadbeef,
			sel:    testSelector,
			dpl:    Ring0,
			want:   [GateSize]byte{0xef, 0xbe, 0x08, 0x00, 0x00, 0x8e, 0xad, 0xde},
		},
		{
			name:   "all offset bits set",
			offset: 0xffffffff,
			sel:    testSelector,
			dpl:    Ring0,
			want:   [GateSize]byte{0xff, 0xff, 0x08, 0x00, 0x00, 0x8e, 0xff, 0xff},
		},
		{
			name:   "ring 3 gate",
			offset: 0x00100000,
			sel:    testSelector,
			dpl:    Ring3,
			want:   [GateSize]byte{0x00, 0x00, 0x08, 0x00, 0x00, 0xee, 0x10, 0x00},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := NewInterruptGate(test.offset, test.sel, test.dpl)
			if diff := cmp.Diff(test.want, g.Encode()); diff != "" {
				t.Errorf("gate image mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPointer(t *testing.T) {
	var tbl Table
	bases := []uint32{0x00000000, 0x00100000, 0xffffffff}
	for _, base := range bases {
		p := tbl.Pointer(base)
		if p.Limit != 2047 {
			t.Errorf("base %#08x: limit = %d, want 2047", base, p.Limit)
		}
		if p.Base != base {
			t.Errorf("base %#08x: base = %#08x", base, p.Base)
		}
	}
	enc := tbl.Pointer(0xcafe0000).Encode()
	want := [PointerSize]byte{0xff, 0x07, 0x00, 0x00, 0xfe, 0xca}
	if diff := cmp.Diff(want, enc); diff != "" {
		t.Errorf("pointer image mismatch (-want +got):\n%s", diff)
	}
}

func TestResetClearsEveryEntry(t *testing.T) {
	var tbl Table
	tbl.gates[77] = NewInterruptGate(0xdeadbeef, testSelector, Ring0)
	tbl.Reset()
	for v := 0; v < NumVectors; v++ {
		g := tbl.Gate(Vector(v))
		if g != 0 {
			t.Fatalf("vector %d not zero after Reset: %#016x", v, uint64(g))
		}
		if g.Present() {
			t.Fatalf("vector %d present after Reset", v)
		}
	}
}

func TestUnregisteredVectorsStayAbsent(t *testing.T) {
	var tbl Table
	tbl.Reset()
	registered := map[Vector]uint32{
		8:    0x00100000,
		0x20: 0x00101000,
		0x21: 0x00102000,
	}
	for v, off := range registered {
		tbl.Set(v, NewInterruptGate(off, testSelector, Ring0))
	}
	for v := 0; v < NumVectors; v++ {
		g := tbl.Gate(Vector(v))
		if off, ok := registered[Vector(v)]; ok {
			if !g.Present() {
				t.Errorf("vector %d: registered gate not present", v)
			}
			if got := g.Offset(); got != off {
				t.Errorf("vector %d: offset = %#08x, want %#08x", v, got, off)
			}
			continue
		}
		if g.Present() {
			t.Errorf("vector %d: unregistered gate marked present", v)
		}
		if g.ReservedByte() != 0 {
			t.Errorf("vector %d: reserved byte not zero", v)
		}
	}
}

func TestSetIdempotent(t *testing.T) {
	var tbl Table
	tbl.Reset()
	g := NewInterruptGate(0x00100000, testSelector, Ring0)
	tbl.Set(8, g)
	once := tbl.Gate(8)
	tbl.Set(8, g)
	if got := tbl.Gate(8); got != once {
		t.Errorf("second Set changed the entry: %#016x != %#016x", uint64(got), uint64(once))
	}
	// Overwriting with a different handler replaces the entry whole.
	g2 := NewInterruptGate(0x00200000, testSelector, Ring0)
	tbl.Set(8, g2)
	if got := tbl.Gate(8); got != g2 {
		t.Errorf("overwrite did not take: %#016x", uint64(got))
	}
}

func TestTableImage(t *testing.T) {
	var tbl Table
	tbl.Reset()
	g := NewInterruptGate(0x00100000, testSelector, Ring0)
	tbl.Set(8, g)
	img := tbl.Image()
	if len(img) != GateSize*NumVectors {
		t.Fatalf("image is %d bytes, want %d", len(img), GateSize*NumVectors)
	}
	enc := g.Encode()
	if diff := cmp.Diff(enc[:], img[8*GateSize:9*GateSize]); diff != "" {
		t.Errorf("entry 8 image mismatch (-want +got):\n%s", diff)
	}
	for i, b := range img {
		if i >= 8*GateSize && i < 9*GateSize {
			continue
		}
		if b != 0 {
			t.Fatalf("byte %d = %#02x, want 0", i, b)
		}
	}
}

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestLifecycle(t *testing.T) {
	var tbl Table
	if got := tbl.State(); got != Uninitialized {
		t.Fatalf("zero table state = %v", got)
	}
	g := NewInterruptGate(0x00100000, testSelector, Ring0)
	mustPanic(t, "Set before Reset", func() { tbl.Set(8, g) })
	mustPanic(t, "MarkLoaded before Reset", func() { tbl.MarkLoaded() })
	mustPanic(t, "MarkActive before Reset", func() { tbl.MarkActive() })

	tbl.Reset()
	if got := tbl.State(); got != Zeroed {
		t.Fatalf("state after Reset = %v", got)
	}
	mustPanic(t, "MarkActive before MarkLoaded", func() { tbl.MarkActive() })
	mustPanic(t, "double Reset", func() { tbl.Reset() })

	tbl.MarkLoaded()
	if got := tbl.State(); got != Loaded {
		t.Fatalf("state after MarkLoaded = %v", got)
	}
	// Registration happens after the load; the CPU re-reads table
	// memory on every dispatch.
	tbl.Set(8, g)
	mustPanic(t, "double MarkLoaded", func() { tbl.MarkLoaded() })

	tbl.MarkActive()
	if got := tbl.State(); got != Active {
		t.Fatalf("state after MarkActive = %v", got)
	}
	mustPanic(t, "Set after MarkActive", func() { tbl.Set(9, g) })
	mustPanic(t, "Reset after MarkActive", func() { tbl.Reset() })

	// Reads stay legal; the entry armed before activation is intact.
	if got := tbl.Gate(8); got != g {
		t.Errorf("entry lost across activation: %#016x", uint64(got))
	}
}

func TestStateString(t *testing.T) {
	states := map[State]string{
		Uninitialized: "uninitialized",
		Zeroed:        "zeroed",
		Loaded:        "loaded",
		Active:        "active",
		State(42):     "unknown",
	}
	for s, want := range states {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
