package browser

import "testing"

func TestLocator_CSS(t *testing.T) {
	tests := []struct {
		name    string
		locator Locator
		want    string
	}{
		{name: "id", locator: ID("user-name"), want: "#user-name"},
		{name: "class", locator: Class("inventory_item"), want: ".inventory_item"},
		{name: "tag", locator: Tag("button"), want: "button"},
		{name: "scoped keeps own selector", locator: Tag("button").Within(Class("inventory_item")), want: "button"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.locator.CSS(); got != tt.want {
				t.Errorf("CSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocator_String(t *testing.T) {
	tests := []struct {
		name    string
		locator Locator
		want    string
	}{
		{name: "id", locator: ID("checkout"), want: "id=checkout"},
		{name: "scoped", locator: Tag("button").Within(Class("inventory_item")), want: "class=inventory_item >> tag=button"},
		{
			name:    "nested scope",
			locator: Tag("span").Within(Tag("button").Within(Class("inventory_item"))),
			want:    "class=inventory_item >> tag=button >> tag=span",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.locator.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocator_WithinDoesNotMutateReceiver(t *testing.T) {
	// GIVEN
	button := Tag("button")

	// WHEN
	scoped := button.Within(Class("inventory_item"))

	// THEN
	if _, ok := button.Parent(); ok {
		t.Error("Within should not change the receiver")
	}
	parent, ok := scoped.Parent()
	if !ok {
		t.Fatal("Expected scoped locator to have a parent")
	}
	if parent.String() != "class=inventory_item" {
		t.Errorf("Unexpected parent %s", parent)
	}
}

func TestBy_String(t *testing.T) {
	if got := By(42).String(); got != "By(42)" {
		t.Errorf("Unexpected rendering of unknown strategy: %s", got)
	}
}
