package domain

// Outcome is the correlated result written onto a discovered tree node.
type Outcome struct {
	// State is the annotated outcome of the node.
	State TestState `json:"state"`
	// Message carries the failure message for failed nodes.
	Message string `json:"message,omitempty"`
}

// TreeNode is the minimal view of an externally owned test-tree node that
// correlation needs: a display label, ordered children, and a settable
// outcome. Correlation never alters a tree's structure or identities.
type TreeNode interface {
	// Label returns the node's display name.
	Label() string
	// Children returns the node's direct children in order.
	Children() []TreeNode
	// SetOutcome records the correlated outcome on the node.
	SetOutcome(Outcome)
}

// Tree item kinds used in node identifiers.
const (
	KindFile  = "file"
	KindGroup = "group"
	KindTest  = "test"
)

const idSeparator = "::"

// TreeItem is a concrete test-tree node with a stable identifier of the
// form "kind:path", where nested suites and tests carry compound
// "::"-joined paths. Identifiers are deterministic functions of the
// ancestor chain so repeated discovery of unchanged source yields the
// same identities.
type TreeItem struct {
	// ID is the stable node identifier, e.g. "file:src/a.spec.ts" or
	// "group:src/a.spec.ts::Serializer".
	ID string `json:"id"`
	// Name is the display label.
	Name string `json:"name"`
	// Items contains the child nodes in order.
	Items []*TreeItem `json:"items,omitempty"`
	// Result is the correlated outcome, nil until annotated.
	Result *Outcome `json:"result,omitempty"`
}

var _ TreeNode = (*TreeItem)(nil)

// NewTreeItem creates a tree item with the given kind and path.
func NewTreeItem(kind, path, name string) *TreeItem {
	return &TreeItem{ID: kind + ":" + path, Name: name}
}

// Path returns the identifier with the kind prefix removed.
func (t *TreeItem) Path() string {
	for i := 0; i < len(t.ID); i++ {
		if t.ID[i] == ':' {
			return t.ID[i+1:]
		}
	}
	return t.ID
}

// AddChild appends a child of the given kind whose path extends this
// item's path with the child's name, and returns it.
func (t *TreeItem) AddChild(kind, name string) *TreeItem {
	child := NewTreeItem(kind, t.Path()+idSeparator+name, name)
	t.Items = append(t.Items, child)
	return child
}

// Label implements TreeNode.
func (t *TreeItem) Label() string { return t.Name }

// Children implements TreeNode.
func (t *TreeItem) Children() []TreeNode {
	nodes := make([]TreeNode, len(t.Items))
	for i, item := range t.Items {
		nodes[i] = item
	}
	return nodes
}

// SetOutcome implements TreeNode.
func (t *TreeItem) SetOutcome(o Outcome) {
	t.Result = &o
}

// CountItems returns the total number of nodes in this subtree, including
// this one.
func (t *TreeItem) CountItems() int {
	count := 1
	for _, item := range t.Items {
		count += item.CountItems()
	}
	return count
}
