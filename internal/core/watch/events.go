package watch

// Event is a classified filesystem notification. The variant set is closed:
// Created, Removed, Modified. Consumers switch on the concrete type.
type Event interface {
	isEvent()
}

// Created reports a path that appeared in the tree, either created in place
// or renamed in.
type Created struct {
	Path string
}

// Removed reports a path that left the tree, either deleted or renamed out.
type Removed struct {
	Path string
}

// Modified reports a content or attribute change somewhere in the tree.
// It carries no path; consumers treat it as an undirected hint.
type Modified struct{}

func (Created) isEvent()  {}
func (Removed) isEvent()  {}
func (Modified) isEvent() {}
