package report

import (
	"reflect"
	"testing"

	"github.com/epicabdou/hse-inspector/internal/hazard"
)

func sampleHazards() []hazard.Hazard {
	return []hazard.Hazard{
		{ID: "1", Category: hazard.CategoryPPE, Severity: hazard.SeverityHigh, Description: "no hard hat"},
		{ID: "2", Category: hazard.CategoryElectrical, Severity: hazard.SeverityCritical, Description: "exposed wiring"},
		{ID: "3", Category: hazard.CategoryPPE, Severity: hazard.SeverityLow, Description: "no gloves"},
		{ID: "4", Category: hazard.CategoryFall, Severity: hazard.SeverityMedium, Description: "open edge"},
	}
}

func TestGroup(t *testing.T) {
	sections := Group(sampleHazards())

	wantOrder := []hazard.Category{
		hazard.CategoryElectrical,
		hazard.CategoryFall,
		hazard.CategoryPPE,
	}
	if len(sections) != len(wantOrder) {
		t.Fatalf("expected %d sections, got %d", len(wantOrder), len(sections))
	}
	for i, want := range wantOrder {
		if sections[i].Category != want {
			t.Errorf("section %d: expected category %s, got %s", i, want, sections[i].Category)
		}
	}

	// Within a section the source order is preserved, not re-sorted by
	// severity.
	ppe := sections[2]
	if ppe.Hazards[0].ID != "1" || ppe.Hazards[1].ID != "3" {
		t.Errorf("expected PPE hazards in source order [1 3], got [%s %s]", ppe.Hazards[0].ID, ppe.Hazards[1].ID)
	}
}

func TestGroupDeterministic(t *testing.T) {
	first := Group(sampleHazards())
	for i := 0; i < 10; i++ {
		again := Group(sampleHazards())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("grouping not deterministic on run %d", i)
		}
	}
}

func TestGroupEmpty(t *testing.T) {
	if sections := Group(nil); len(sections) != 0 {
		t.Errorf("expected no sections for empty input, got %d", len(sections))
	}
}

func TestRiskBand(t *testing.T) {
	tests := []struct {
		score int
		want  Band
	}{
		{0, BandLow},
		{39, BandLow},
		{40, BandModerate},
		{59, BandModerate},
		{60, BandElevated},
		{72, BandElevated},
		{79, BandElevated},
		{80, BandSevere},
		{100, BandSevere},
	}

	for _, tt := range tests {
		if got := RiskBand(tt.score); got != tt.want {
			t.Errorf("RiskBand(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestGradeColorKey(t *testing.T) {
	tests := []struct {
		grade hazard.Grade
		want  string
	}{
		{hazard.GradeA, "green"},
		{hazard.GradeB, "lightgreen"},
		{hazard.GradeC, "yellow"},
		{hazard.GradeD, "orange"},
		{hazard.GradeF, "red"},
		{hazard.Grade("X"), ColorUnknownGrade},
		{hazard.Grade(""), ColorUnknownGrade},
	}

	for _, tt := range tests {
		if got := GradeColorKey(tt.grade); got != tt.want {
			t.Errorf("GradeColorKey(%q) = %s, want %s", tt.grade, got, tt.want)
		}
	}
}

func TestSeverityWeight(t *testing.T) {
	order := []hazard.Severity{
		hazard.SeverityLow,
		hazard.SeverityMedium,
		hazard.SeverityHigh,
		hazard.SeverityCritical,
	}
	for i := 1; i < len(order); i++ {
		if SeverityWeight(order[i]) <= SeverityWeight(order[i-1]) {
			t.Errorf("expected %s to outweigh %s", order[i], order[i-1])
		}
	}
	if SeverityWeight(hazard.Severity("bogus")) != 0 {
		t.Error("expected zero weight for unknown severity")
	}
}
