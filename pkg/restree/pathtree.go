package restree

import "path/filepath"

// Resolver answers which workspace root owns a file path. Files no
// registered workspace contains are excluded from the tree entirely.
type Resolver interface {
	WorkspaceFor(path string) (root string, ok bool)
}

// PathTree maintains one resource node per distinct filesystem path and the
// folder ancestry linking every file up to its workspace root. Children are
// derived by scanning indexed paths rather than stored per node; tree sizes
// are bounded by project file counts and queries arrive at UI expansion
// pace, so the O(n) scan stays cheap.
type PathTree struct {
	resolver Resolver
	root     *Node            // logical parent of workspace-root folders
	nodes    map[string]*Node // path -> resource node
	roots    map[string]*Node // workspace root path -> its folder node
	created  func(*Node)
}

// NewPathTree creates an empty tree whose workspace-root folders hang off
// the given results root. created fires once per node creation.
func NewPathTree(resolver Resolver, root *Node, created func(*Node)) *PathTree {
	return &PathTree{
		resolver: resolver,
		root:     root,
		nodes:    make(map[string]*Node),
		roots:    make(map[string]*Node),
		created:  created,
	}
}

// EnsureAncestry guarantees a file node exists for path along with a folder
// node for every ancestor directory up to and including the owning
// workspace root. Re-inserting an indexed path is a no-op. Returns nil when
// no workspace owns the path.
func (t *PathTree) EnsureAncestry(path string) *Node {
	path = filepath.Clean(path)
	if n, ok := t.nodes[path]; ok {
		return n
	}

	rootPath, ok := t.resolver.WorkspaceFor(path)
	if !ok {
		return nil
	}
	rootPath = filepath.Clean(rootPath)

	fn := newFileNode(path)
	t.insert(fn)

	// Walk upward creating folders until we meet an already-indexed prefix.
	// This bounds the work to the first unindexed stretch of the chain.
	child := fn
	cur := path
	for cur != rootPath {
		parentPath := filepath.Dir(cur)
		if parentPath == cur {
			break
		}
		if existing, ok := t.nodes[parentPath]; ok {
			child.Parent = existing
			return fn
		}
		folder := newFolderNode(parentPath)
		t.insert(folder)
		child.Parent = folder
		child = folder
		cur = parentPath
	}

	// child is the workspace-root folder: register it as a root child
	// hanging off the results root.
	child.Parent = t.root
	t.roots[rootPath] = child
	return fn
}

// Node returns the indexed node for path, or nil.
func (t *PathTree) Node(path string) *Node {
	return t.nodes[filepath.Clean(path)]
}

// Len returns the number of indexed paths.
func (t *PathTree) Len() int {
	return len(t.nodes)
}

// RootChildren returns the workspace-root folder nodes currently indexed.
func (t *PathTree) RootChildren() []*Node {
	children := make([]*Node, 0, len(t.roots))
	for _, n := range t.roots {
		children = append(children, n)
	}
	return children
}

// ChildrenOf returns the nodes directly contained in folderPath, determined
// by comparing each indexed path's immediate parent.
func (t *PathTree) ChildrenOf(folderPath string) []*Node {
	folderPath = filepath.Clean(folderPath)
	var children []*Node
	for p, n := range t.nodes {
		if p != folderPath && filepath.Dir(p) == folderPath {
			children = append(children, n)
		}
	}
	return children
}

// Remove deletes the entry for path and cascades upward, pruning every
// ancestor folder left childless. It returns the refresh target: the first
// ancestor that still has children, or the results root's stand-in (the
// removed root's own parent) when the cascade consumed a workspace-root
// entry. A nil return means path was unindexed or the walk hit a gap.
func (t *PathTree) Remove(path string) *Node {
	path = filepath.Clean(path)
	node, ok := t.nodes[path]
	if !ok {
		return nil
	}
	delete(t.nodes, path)

	if _, isRoot := t.roots[path]; isRoot {
		delete(t.roots, path)
		return node.Parent
	}

	cur := path
	for {
		parentPath := filepath.Dir(cur)
		parent, ok := t.nodes[parentPath]
		if !ok {
			// Missing ancestor halts the cascade rather than failing.
			return nil
		}
		if len(t.ChildrenOf(parentPath)) > 0 {
			return parent
		}
		delete(t.nodes, parentPath)
		if _, isRoot := t.roots[parentPath]; isRoot {
			delete(t.roots, parentPath)
			return parent.Parent
		}
		cur = parentPath
	}
}

func (t *PathTree) insert(n *Node) {
	t.nodes[n.Path] = n
	if t.created != nil {
		t.created(n)
	}
}
