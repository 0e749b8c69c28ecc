package extract

import "testing"

func TestNormalizeSection(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "Item 1. Business"},
		{"1", "Item 1. Business"},
		{"1A", "Item 1A. Risk Factors"},
		{"1a", "Item 1A. Risk Factors"},
		{"Item 1A", "Item 1A. Risk Factors"},
		{"item 7.", "Item 7. Management's Discussion and Analysis"},
		{"Item 1. Business", "Item 1. Business"},
		{"Overview of Operations", "Overview of Operations"}, // free text passes through
	}

	for _, tc := range tests {
		got := NormalizeSection(tc.input)
		if got != tc.expected {
			t.Errorf("NormalizeSection(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestCatalogHeadings(t *testing.T) {
	if len(Catalog) == 0 {
		t.Fatal("section catalog is empty")
	}
	if Catalog[0].Heading() != "Item 1. Business" {
		t.Errorf("unexpected first heading: %s", Catalog[0].Heading())
	}
	for _, def := range Catalog {
		if def.Item == "" || def.Title == "" {
			t.Errorf("incomplete definition: %+v", def)
		}
	}
}
