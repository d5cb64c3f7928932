package mdast

import "slices"

// WalkFunc visits one node. A non-nil error ends the walk.
type WalkFunc func(n *Node) error

// Walk visits root and its descendants in document order and returns
// the first error a visit produces.
func Walk(root *Node, fn WalkFunc) error {
	return WalkPath(root, func(n *Node, _ []*Node) error { return fn(n) })
}

// PathFunc visits one node along with its ancestors, outermost first.
// The slice is reused between visits.
type PathFunc func(n *Node, ancestors []*Node) error

// WalkPath is Walk with the ancestor chain of each node.
func WalkPath(root *Node, fn PathFunc) error {
	var visit func(n *Node, path []*Node) error
	visit = func(n *Node, path []*Node) error {
		if err := fn(n, path); err != nil {
			return err
		}
		path = append(path, n)
		for c := n.FirstChild; c != nil; c = c.Next {
			if err := visit(c, path); err != nil {
				return err
			}
		}
		return nil
	}
	if root == nil {
		return nil
	}
	return visit(root, nil)
}

// Ancestors returns the parents of n, outermost first.
func Ancestors(n *Node) []*Node {
	var chain []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	slices.Reverse(chain)
	return chain
}

// FindAll collects, in document order, the nodes under root (root
// included) that match.
func FindAll(root *Node, match func(*Node) bool) []*Node {
	var found []*Node
	_ = Walk(root, func(n *Node) error { //nolint:errcheck // visitor never fails
		if match(n) {
			found = append(found, n)
		}
		return nil
	})
	return found
}

// FindByKind collects the nodes of kind under root.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
