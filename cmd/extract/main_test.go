package main

import (
	"testing"

	"edgar_sections/pkg/core/compare"
	"edgar_sections/pkg/core/pipeline"
)

func TestRenderResult(t *testing.T) {
	res := pipeline.Result{
		CompanyName: "Apple Inc.",
		Section:     "Item 1. Business",
		Text:        "We design widgets.",
	}

	got := renderResult(res)
	want := "Apple Inc. - Item 1. Business\n\nWe design widgets.\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderComparison(t *testing.T) {
	cmp := &compare.Comparison{
		CompanyName: "Apple Inc.",
		Section:     "Item 1A. Risk Factors",
		YearA:       2024,
		YearB:       2023,
		DiffText:    "risks [+grew+]",
	}

	got := renderComparison(cmp)
	want := "Apple Inc. - Item 1A. Risk Factors (2024 vs 2023)\n\nrisks [+grew+]\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
