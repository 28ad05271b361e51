package searchtree_test

import (
	"testing"

	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/herohde/wpnsolver/pkg/searchtree"
	"github.com/stretchr/testify/assert"
)

func emptyPosition() othellopn.Position {
	pos, err := othellopn.NewPosition(othellopn.EmptyBitboard, othellopn.EmptyBitboard, othellopn.Black)
	if err != nil {
		panic(err)
	}
	return pos
}

func TestNode(t *testing.T) {
	t.Run("a fresh node is unexpanded", func(t *testing.T) {
		n := searchtree.New(emptyPosition())
		assert.False(t, n.IsExpanded())
		assert.Empty(t, n.Children())
	})

	t.Run("AddChild head-inserts, so Children returns reverse add order", func(t *testing.T) {
		n := searchtree.New(emptyPosition())
		a := searchtree.New(emptyPosition())
		b := searchtree.New(emptyPosition())
		c := searchtree.New(emptyPosition())

		n.AddChild(a)
		n.AddChild(b)
		n.AddChild(c)

		assert.True(t, n.IsExpanded())
		assert.Equal(t, []*searchtree.Node{c, b, a}, n.Children())
	})

	t.Run("Relink rebuilds the list in the given order", func(t *testing.T) {
		n := searchtree.New(emptyPosition())
		a := searchtree.New(emptyPosition())
		b := searchtree.New(emptyPosition())
		n.AddChild(a)
		n.AddChild(b)

		n.Relink([]*searchtree.Node{a, b})
		assert.Equal(t, []*searchtree.Node{a, b}, n.Children())

		n.Relink(nil)
		assert.False(t, n.IsExpanded())
		assert.Empty(t, n.Children())
	})

	t.Run("IsProven and IsDisproven delegate to the proof-number predicates", func(t *testing.T) {
		n := searchtree.New(emptyPosition())
		assert.False(t, n.IsProven())
		assert.False(t, n.IsDisproven())

		n.Proof, n.Disproof = 0, othellopn.PNInf
		assert.True(t, n.IsProven())

		n.Proof, n.Disproof = othellopn.PNInf, 0
		assert.True(t, n.IsDisproven())
	})
}
