package expressivo

import (
	"bytes"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

type NodeType int

const (
	NodeNumber NodeType = iota
	NodeVariable
	NodeSum
	NodeProduct
)

func (t NodeType) String() string {
	switch t {
	case NodeNumber:
		return "Number"
	case NodeVariable:
		return "Variable"
	case NodeSum:
		return "Sum"
	case NodeProduct:
		return "Product"
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

// Node is an immutable expression tree. Subtrees may be shared between
// parents since nothing mutates a node once it is built.
type Node struct {
	t     NodeType
	v     string
	left  *Node
	right *Node
}

var (
	numZero = &Node{t: NodeNumber, v: "0"}
	numOne  = &Node{t: NodeNumber, v: "1"}
)

// NewNumber returns a number node for a nonnegative decimal literal such as
// "2", "2.5" or "2.".
func NewNumber(digits string) (*Node, error) {
	if !validNumber(digits) {
		return nil, errors.Wrapf(ErrInvalidNumber, "%q", digits)
	}
	return &Node{t: NodeNumber, v: digits}, nil
}

// NewNumberFloat returns a number node holding f. The literal never uses
// exponent notation so it can be parsed back.
func NewNumberFloat(f float64) (*Node, error) {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.Wrapf(ErrInvalidNumber, "%v", f)
	}
	return &Node{t: NodeNumber, v: formatFloat(f)}, nil
}

func NewVariable(name string) (*Node, error) {
	if !validVariable(name) {
		return nil, errors.Wrapf(ErrInvalidVariable, "%q", name)
	}
	return &Node{t: NodeVariable, v: name}, nil
}

func NewSum(left, right *Node) (*Node, error) {
	if left == nil || right == nil {
		return nil, errors.New("sum requires two operands")
	}
	return sum(left, right), nil
}

func NewProduct(left, right *Node) (*Node, error) {
	if left == nil || right == nil {
		return nil, errors.New("product requires two operands")
	}
	return product(left, right), nil
}

// MustNumber is like NewNumber but panics on an invalid literal.
func MustNumber(digits string) *Node {
	n, err := NewNumber(digits)
	if err != nil {
		panic(err)
	}
	return n
}

// MustVariable is like NewVariable but panics on an invalid name.
func MustVariable(name string) *Node {
	n, err := NewVariable(name)
	if err != nil {
		panic(err)
	}
	return n
}

func sum(left, right *Node) *Node {
	return &Node{t: NodeSum, left: left, right: right}
}

func product(left, right *Node) *Node {
	return &Node{t: NodeProduct, left: left, right: right}
}

// Add returns the sum of n and e. It panics if either is nil.
func (n *Node) Add(e *Node) *Node {
	if n == nil || e == nil {
		panic("expressivo: Add with nil operand")
	}
	return sum(n, e)
}

// Multiply returns the product of n and e. It panics if either is nil.
func (n *Node) Multiply(e *Node) *Node {
	if n == nil || e == nil {
		panic("expressivo: Multiply with nil operand")
	}
	return product(n, e)
}

func (n *Node) Type() NodeType {
	return n.t
}

func (n *Node) IsAddition() bool {
	return n != nil && n.t == NodeSum
}

// Left returns the left operand of a sum or product, nil otherwise.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right operand of a sum or product, nil otherwise.
func (n *Node) Right() *Node {
	return n.right
}

// Name returns the name of a variable, "" otherwise.
func (n *Node) Name() string {
	if n.t != NodeVariable {
		return ""
	}
	return n.v
}

// Digits returns the literal of a number as it was written, "" otherwise.
func (n *Node) Digits() string {
	if n.t != NodeNumber {
		return ""
	}
	return n.v
}

// Float returns the value of a number node.
func (n *Node) Float() float64 {
	if n.t != NodeNumber {
		return math.NaN()
	}
	f, _ := strconv.ParseFloat(n.v, 64)
	return f
}

func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	var buf bytes.Buffer
	n.write(&buf, false)
	return buf.String()
}

// write prints the canonical form. With canon set, number literals are
// replaced by their normalized value so equal numbers print identically.
func (n *Node) write(buf *bytes.Buffer, canon bool) {
	switch n.t {
	case NodeNumber:
		if canon {
			buf.WriteString(canonicalDigits(n.v))
		} else {
			buf.WriteString(n.v)
		}
	case NodeVariable:
		buf.WriteString(n.v)
	case NodeSum:
		n.left.write(buf, canon)
		buf.WriteString(" + ")
		n.right.write(buf, canon)
	case NodeProduct:
		n.left.writeFactor(buf, canon)
		buf.WriteByte('*')
		n.right.writeFactor(buf, canon)
	}
}

func (n *Node) writeFactor(buf *bytes.Buffer, canon bool) {
	if !n.IsAddition() {
		n.write(buf, canon)
		return
	}
	buf.WriteByte('(')
	n.write(buf, canon)
	buf.WriteByte(')')
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isWordLetter(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_'
}

func validNumber(s string) bool {
	digits, dot := 0, false
	for _, r := range s {
		switch {
		case isDigit(r):
			if !dot {
				digits++
			}
		case r == '.' && !dot && digits > 0:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

func validVariable(s string) bool {
	for i, r := range s {
		if i == 0 && !isLetter(r) {
			return false
		}
		if !isWordLetter(r) {
			return false
		}
	}
	return s != ""
}
