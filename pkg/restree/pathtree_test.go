package restree

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prefixResolver resolves paths against a fixed set of workspace roots,
// preferring the longest match.
type prefixResolver struct {
	roots []string
}

func (r *prefixResolver) WorkspaceFor(path string) (string, bool) {
	var best string
	for _, root := range r.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			if len(root) > len(best) {
				best = root
			}
		}
	}
	return best, best != ""
}

func newTestTree(roots ...string) (*PathTree, *Node) {
	resultsRoot := &Node{Kind: KindResultsRoot, Label: "Analysis Results"}
	tree := NewPathTree(&prefixResolver{roots: roots}, resultsRoot, nil)
	return tree, resultsRoot
}

func TestEnsureAncestryBuildsChain(t *testing.T) {
	tree, resultsRoot := newTestTree("/ws")

	fn := tree.EnsureAncestry("/ws/a/b/x.java")
	require.NotNil(t, fn)
	assert.Equal(t, KindFile, fn.Kind)
	assert.Equal(t, "x.java", fn.Label)

	for _, path := range []string{"/ws", "/ws/a", "/ws/a/b"} {
		n := tree.Node(path)
		require.NotNil(t, n, path)
		assert.Equal(t, KindFolder, n.Kind, path)
	}

	// Parent chain: file -> b -> a -> ws -> results root
	assert.Same(t, tree.Node("/ws/a/b"), fn.Parent)
	assert.Same(t, tree.Node("/ws/a"), tree.Node("/ws/a/b").Parent)
	assert.Same(t, tree.Node("/ws"), tree.Node("/ws/a").Parent)
	assert.Same(t, resultsRoot, tree.Node("/ws").Parent)

	roots := tree.RootChildren()
	require.Len(t, roots, 1)
	assert.Same(t, tree.Node("/ws"), roots[0])
}

func TestEnsureAncestryIdempotent(t *testing.T) {
	tree, _ := newTestTree("/ws")

	first := tree.EnsureAncestry("/ws/a/x.java")
	require.NotNil(t, first)
	countAfterFirst := tree.Len()

	second := tree.EnsureAncestry("/ws/a/x.java")
	assert.Same(t, first, second)
	assert.Equal(t, countAfterFirst, tree.Len(), "re-insertion must not create nodes")
}

func TestEnsureAncestryStopsAtIndexedPrefix(t *testing.T) {
	tree, _ := newTestTree("/ws")

	tree.EnsureAncestry("/ws/a/x.java")
	folderA := tree.Node("/ws/a")
	rootWS := tree.Node("/ws")

	fn := tree.EnsureAncestry("/ws/a/y.java")
	require.NotNil(t, fn)
	assert.Same(t, folderA, fn.Parent, "existing folder must be reused")
	assert.Same(t, rootWS, tree.Node("/ws"), "workspace root must not be recreated")
}

func TestEnsureAncestryOutsideWorkspace(t *testing.T) {
	tree, _ := newTestTree("/ws")

	fn := tree.EnsureAncestry("/elsewhere/x.java")
	assert.Nil(t, fn)
	assert.Zero(t, tree.Len(), "out-of-workspace files leave no trace")
}

func TestChildrenOf(t *testing.T) {
	tree, _ := newTestTree("/ws")

	tree.EnsureAncestry("/ws/a/x.java")
	tree.EnsureAncestry("/ws/a/y.java")
	tree.EnsureAncestry("/ws/b/z.java")

	children := tree.ChildrenOf("/ws/a")
	var names []string
	for _, n := range children {
		names = append(names, n.Label)
	}
	assert.ElementsMatch(t, []string{"x.java", "y.java"}, names)

	children = tree.ChildrenOf("/ws")
	names = names[:0]
	for _, n := range children {
		names = append(names, n.Label)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestRemoveCascadesToFirstPopulatedAncestor(t *testing.T) {
	tree, _ := newTestTree("/ws")

	tree.EnsureAncestry("/ws/a/x.java")
	tree.EnsureAncestry("/ws/a/y.java")
	tree.EnsureAncestry("/ws/b/z.java")

	target := tree.Remove("/ws/b/z.java")
	require.NotNil(t, target)
	assert.Equal(t, "/ws", target.Path, "cascade stops at the first ancestor with children")

	assert.Nil(t, tree.Node("/ws/b/z.java"))
	assert.Nil(t, tree.Node("/ws/b"), "emptied folder is pruned")
	assert.NotNil(t, tree.Node("/ws"))
	assert.NotNil(t, tree.Node("/ws/a"))
	assert.NotNil(t, tree.Node("/ws/a/x.java"))
}

func TestRemoveLastFileClearsWorkspaceRoot(t *testing.T) {
	tree, resultsRoot := newTestTree("/ws")

	tree.EnsureAncestry("/ws/a/x.java")

	target := tree.Remove("/ws/a/x.java")
	require.NotNil(t, target)
	assert.Same(t, resultsRoot, target, "root removal signals the root's own parent")

	assert.Zero(t, tree.Len())
	assert.Empty(t, tree.RootChildren(), "root child entry is cleared")
}

func TestRemoveSiblingLeavesOthersIntact(t *testing.T) {
	tree, _ := newTestTree("/ws")

	tree.EnsureAncestry("/ws/a/x.java")
	tree.EnsureAncestry("/ws/a/y.java")

	target := tree.Remove("/ws/a/x.java")
	require.NotNil(t, target)
	assert.Equal(t, "/ws/a", target.Path)

	assert.NotNil(t, tree.Node("/ws/a/y.java"))
	assert.NotNil(t, tree.Node("/ws/a"))
	assert.NotNil(t, tree.Node("/ws"))
}

func TestRemoveUnindexedPath(t *testing.T) {
	tree, _ := newTestTree("/ws")
	assert.Nil(t, tree.Remove("/ws/never/indexed.java"))
}

func TestMultipleWorkspaceRoots(t *testing.T) {
	tree, _ := newTestTree("/ws1", "/ws2")

	tree.EnsureAncestry("/ws1/x.java")
	tree.EnsureAncestry("/ws2/y.java")

	assert.Len(t, tree.RootChildren(), 2)

	tree.Remove("/ws1/x.java")
	roots := tree.RootChildren()
	require.Len(t, roots, 1)
	assert.Equal(t, "/ws2", roots[0].Path)
}
