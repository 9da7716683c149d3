package expressivo

import (
	"bytes"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Equal reports whether a and b print to the same canonical form, with
// numbers compared by value ("1", "1.0" and "01.000" are the same number).
// Grouping that shows up in the printed form is significant, so a*(b + c)
// and a*b + c differ, while variable names are case-sensitive.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.key() == b.key()
}

func (n *Node) Equal(o *Node) bool {
	return Equal(n, o)
}

// Hash returns a hash consistent with Equal.
func (n *Node) Hash() uint64 {
	if n == nil {
		return 0
	}
	return xxhash.Sum64String(n.key())
}

func (n *Node) key() string {
	var buf bytes.Buffer
	n.write(&buf, true)
	return buf.String()
}

// canonicalDigits strips leading zeros of the integer part and trailing
// zeros of the fraction.
func canonicalDigits(s string) string {
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
