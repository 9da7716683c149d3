package expressivo

import (
	"fmt"

	"github.com/pkg/errors"
)

type foldFn func(a, b float64) float64

var ops = map[NodeType]foldFn{
	NodeSum:     func(a, b float64) float64 { return a + b },
	NodeProduct: func(a, b float64) float64 { return a * b },
}

// Differentiate returns the derivative of node with respect to variable.
// The result is not simplified: d/dx(x*y) is x*0 + 1*y.
func Differentiate(node *Node, variable string) *Node {
	switch node.t {
	case NodeNumber:
		return numZero
	case NodeVariable:
		if node.v == variable {
			return numOne
		}
		return numZero
	case NodeSum:
		return sum(
			Differentiate(node.left, variable),
			Differentiate(node.right, variable))
	case NodeProduct:
		return sum(
			product(node.left, Differentiate(node.right, variable)),
			product(Differentiate(node.left, variable), node.right))
	}
	panic(fmt.Sprintf("expressivo: unknown node type %v", node.t))
}

// Simplify substitutes the variables bound in env and folds every sum or
// product whose operands are both numbers. Unbound variables keep their
// surrounding shape. Unchanged subtrees are shared with node.
func Simplify(node *Node, env *Env) (*Node, error) {
	switch node.t {
	case NodeNumber:
		return node, nil
	case NodeVariable:
		v, ok := env.Lookup(node.v)
		if !ok {
			return node, nil
		}
		ret, err := NewNumberFloat(v)
		if err != nil {
			return nil, errors.Wrapf(err, "substituting %s", node.v)
		}
		return ret, nil
	case NodeSum, NodeProduct:
		left, err := Simplify(node.left, env)
		if err != nil {
			return nil, err
		}
		right, err := Simplify(node.right, env)
		if err != nil {
			return nil, err
		}
		if left.t == NodeNumber && right.t == NodeNumber {
			ret, err := NewNumberFloat(ops[node.t](left.Float(), right.Float()))
			if err != nil {
				return nil, errors.Wrapf(err, "folding %v", node)
			}
			return ret, nil
		}
		if left == node.left && right == node.right {
			return node, nil
		}
		return &Node{t: node.t, left: left, right: right}, nil
	}
	return nil, errors.Errorf("unknown node type %v", node.t)
}
