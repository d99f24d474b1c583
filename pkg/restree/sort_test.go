package restree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortResourceNodesFoldersFirst(t *testing.T) {
	nodes := []*Node{
		newFileNode("/ws/zeta.java"),
		newFolderNode("/ws/lib"),
		newFileNode("/ws/Alpha.java"),
		newFolderNode("/ws/App"),
	}

	SortResourceNodes(nodes)

	var order []string
	for _, n := range nodes {
		order = append(order, n.Path)
	}
	assert.Equal(t, []string{"/ws/App", "/ws/lib", "/ws/Alpha.java", "/ws/zeta.java"}, order)
}

func TestSortResourceNodesCaseInsensitive(t *testing.T) {
	nodes := []*Node{
		newFileNode("/ws/b.java"),
		newFileNode("/ws/A.java"),
		newFileNode("/ws/C.java"),
	}

	SortResourceNodes(nodes)

	assert.Equal(t, "/ws/A.java", nodes[0].Path)
	assert.Equal(t, "/ws/b.java", nodes[1].Path)
	assert.Equal(t, "/ws/C.java", nodes[2].Path)
}

func TestSortResourceNodesStable(t *testing.T) {
	first := newFileNode("/ws/same.java")
	second := newFileNode("/ws/same.java")
	nodes := []*Node{first, second}

	SortResourceNodes(nodes)

	assert.Same(t, first, nodes[0])
	assert.Same(t, second, nodes[1])
}
