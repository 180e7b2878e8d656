// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"strconv"
	"strings"

	"kern386.dev/kern386/idt"
)

// parseAddr parses a 32-bit handler address in any base strconv
// accepts (0x... for hex).
func parseAddr(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %v", s, err)
	}
	return uint32(v), nil
}

// parseVector parses an interrupt vector and rejects anything outside
// [0, 255] before it can become an out-of-bounds table write.
func parseVector(s string) (idt.Vector, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("bad vector %q: must be in [0, 255]", s)
	}
	return idt.Vector(v), nil
}

// parseEntry parses a VECTOR=ADDR pair, e.g. "8=0x100000".
func parseEntry(s string) (idt.Vector, uint32, error) {
	vec, addr, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("bad entry %q: want VECTOR=ADDR", s)
	}
	v, err := parseVector(vec)
	if err != nil {
		return 0, 0, err
	}
	a, err := parseAddr(addr)
	if err != nil {
		return 0, 0, err
	}
	return v, a, nil
}
