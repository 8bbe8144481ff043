package grouper

import (
	"strconv"
	"strings"
)

// MaxIndexLen is the longest trailing segment still read as a frame number.
const MaxIndexLen = 2

// Kind tells how a sprite key is placed in its sequence.
type Kind int

const (
	// Static entries are appended to the sequence of their full key.
	Static Kind = iota
	// Frame entries are written at a fixed slot of their base key's sequence.
	Frame
)

func (k Kind) String() string {
	if k == Frame {
		return "frame"
	}
	return "static"
}

// Classification is the result of parsing one sprite key.
type Classification struct {
	Key   string
	Base  string
	Kind  Kind
	Index int // 0-based slot, only meaningful for Frame
}

// Classify splits key on "/" and decides whether its last segment is a
// 1-based frame number. "walk/01" is frame 0 of "walk"; "icon" and
// "ui/banner" are static entries keyed by themselves.
//
// A short tail that is not a positive decimal number ("ab", "0", "-1")
// is treated like a long tail: the entry is static and keeps its full key.
func Classify(key string) Classification {
	c := Classification{Key: key, Base: key, Kind: Static}

	i := strings.LastIndexByte(key, '/')
	if i < 0 {
		return c
	}

	tail := key[i+1:]
	if len(tail) > MaxIndexLen || !isFrameNumber(tail) {
		return c
	}

	n, err := strconv.Atoi(tail)
	if err != nil || n < 1 {
		return c
	}

	c.Base = key[:i]
	c.Kind = Frame
	c.Index = n - 1
	return c
}

// isFrameNumber reports whether s is a non-empty run of ASCII digits.
func isFrameNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
