// Package searchtree implements the thread-local expansion tree each worker
// grows while searching its own root. Trees are never shared between
// workers; ownership of a subtree belongs exclusively to the goroutine that
// grew it.
package searchtree

import (
	"github.com/herohde/wpnsolver/pkg/othellopn"
)

// Node is a lazily-expanded search tree node: a position, its current
// proof/disproof numbers, and a singly-linked, head-inserted child list.
//
// Per the design notes, there is deliberately no parent back-pointer here:
// propagation is driven by the call stack on return (see pkg/wpn), not by
// walking up an explicit parent link. Children are owned by their parent;
// dropping a Node's reference drops its whole subtree for the garbage
// collector to reclaim, which is the Go analogue of the "freed in post-order"
// lifecycle described for an owning-pointer tree.
type Node struct {
	Pos othellopn.Position

	Proof    othellopn.ProofNumber
	Disproof othellopn.ProofNumber

	FirstChild  *Node
	NextSibling *Node
}

// New creates a fresh, unexpanded node for pos.
func New(pos othellopn.Position) *Node {
	return &Node{Pos: pos}
}

// AddChild head-inserts c into n's child list.
func (n *Node) AddChild(c *Node) {
	c.NextSibling = n.FirstChild
	n.FirstChild = c
}

// IsExpanded reports whether the node's children have been generated.
func (n *Node) IsExpanded() bool {
	return n.FirstChild != nil
}

// IsProven reports whether the node is proven won for the searched side.
func (n *Node) IsProven() bool {
	return othellopn.IsProven(n.Proof, n.Disproof)
}

// IsDisproven reports whether the node is proven lost for the searched side.
func (n *Node) IsDisproven() bool {
	return othellopn.IsDisproven(n.Proof, n.Disproof)
}

// Children returns the child list as a slice, for sorting and iteration
// convenience. Cheap relative to a PN-search node's own branching factor.
func (n *Node) Children() []*Node {
	var children []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

// Relink replaces the node's child list with the given order, preserving
// exactly the same set of children (used after sorting by most-proving
// child).
func (n *Node) Relink(ordered []*Node) {
	for i := len(ordered) - 1; i >= 0; i-- {
		if i == len(ordered)-1 {
			ordered[i].NextSibling = nil
		} else {
			ordered[i].NextSibling = ordered[i+1]
		}
	}
	if len(ordered) == 0 {
		n.FirstChild = nil
	} else {
		n.FirstChild = ordered[0]
	}
}
