package browser

import "fmt"

// By selects how a Locator value is matched
type By int

// Lookup strategies
const (
	ByID By = iota
	ByClass
	ByTag
)

func (b By) String() string {
	switch b {
	case ByID:
		return "id"
	case ByClass:
		return "class"
	case ByTag:
		return "tag"
	default:
		return fmt.Sprintf("By(%d)", int(b))
	}
}

// Locator identifies an element on the current page by id, class name or tag.
// A scoped locator only matches inside the first element its parent matches.
type Locator struct {
	By     By
	Value  string
	parent *Locator
}

// ID locates an element by its id attribute
func ID(id string) Locator {
	return Locator{By: ByID, Value: id}
}

// Class locates elements by class name
func Class(name string) Locator {
	return Locator{By: ByClass, Value: name}
}

// Tag locates elements by tag name
func Tag(name string) Locator {
	return Locator{By: ByTag, Value: name}
}

// Within scopes l to the first element matched by parent, in document order
func (l Locator) Within(parent Locator) Locator {
	p := parent
	l.parent = &p
	return l
}

// Parent returns the scoping locator, if any
func (l Locator) Parent() (Locator, bool) {
	if l.parent == nil {
		return Locator{}, false
	}
	return *l.parent, true
}

// CSS returns the CSS selector for this locator alone, ignoring its parent
func (l Locator) CSS() string {
	switch l.By {
	case ByID:
		return "#" + l.Value
	case ByClass:
		return "." + l.Value
	default:
		return l.Value
	}
}

// String renders the locator chain, e.g. "class=inventory_item >> tag=button"
func (l Locator) String() string {
	self := fmt.Sprintf("%s=%s", l.By, l.Value)
	if l.parent == nil {
		return self
	}
	return l.parent.String() + " >> " + self
}
