package query

import "testing"

func predicateFor(t *testing.T, q Query, f Field) Predicate {
	t.Helper()
	for _, p := range q.Predicates {
		if p.Field == f {
			return p
		}
	}
	t.Fatalf("no predicate for field %d in %+v", f, q.Predicates)
	return Predicate{}
}

func TestBuildEmptyFilterSet(t *testing.T) {
	q := Build(FilterSet{})

	if len(q.Predicates) != 0 {
		t.Errorf("Expected no predicates, got %d", len(q.Predicates))
	}
	if q.SortBy != SortPublishedAt {
		t.Errorf("Expected default sort %q, got %q", SortPublishedAt, q.SortBy)
	}
	if !q.SortDesc {
		t.Error("Expected default sort direction desc")
	}
}

func TestBuildOnePredicatePerPresentKey(t *testing.T) {
	q := Build(FilterSet{
		Search:   "climate",
		Source:   "BBC",
		Category: "technology",
		Platform: "guardian",
		FromDate: "2024-01-14",
		ToDate:   "2024-01-16",
	})

	if len(q.Predicates) != 6 {
		t.Fatalf("Expected 6 predicates, got %d", len(q.Predicates))
	}
	if p := predicateFor(t, q, FieldSearch); p.Value != "climate" {
		t.Errorf("search predicate value = %q", p.Value)
	}
	if p := predicateFor(t, q, FieldSource); p.Value != "BBC" {
		t.Errorf("source predicate value = %q", p.Value)
	}
	if p := predicateFor(t, q, FieldCategory); p.Value != "technology" {
		t.Errorf("category predicate value = %q", p.Value)
	}
	if p := predicateFor(t, q, FieldPlatform); p.Value != "guardian" {
		t.Errorf("platform predicate value = %q", p.Value)
	}
}

func TestBuildDateBoundsCoverWholeDays(t *testing.T) {
	q := Build(FilterSet{FromDate: "2024-01-14", ToDate: "2024-01-16"})

	if p := predicateFor(t, q, FieldPublishedFrom); p.Value != "2024-01-14 00:00:00" {
		t.Errorf("from bound = %q, want start of day", p.Value)
	}
	if p := predicateFor(t, q, FieldPublishedTo); p.Value != "2024-01-16 23:59:59" {
		t.Errorf("to bound = %q, want end of day", p.Value)
	}
}

func TestBuildAbsentKeysContributeNothing(t *testing.T) {
	q := Build(FilterSet{Category: "business"})

	if len(q.Predicates) != 1 {
		t.Fatalf("Expected 1 predicate, got %d", len(q.Predicates))
	}
	if q.Predicates[0].Field != FieldCategory {
		t.Errorf("Unexpected predicate field %d", q.Predicates[0].Field)
	}
}

func TestBuildSortDefaults(t *testing.T) {
	cases := []struct {
		name     string
		fs       FilterSet
		wantBy   string
		wantDesc bool
	}{
		{"both absent", FilterSet{}, SortPublishedAt, true},
		{"only sort_by", FilterSet{SortBy: SortTitle}, SortTitle, true},
		{"only direction", FilterSet{SortDirection: "asc"}, SortPublishedAt, false},
		{"both given", FilterSet{SortBy: SortTitle, SortDirection: "asc"}, SortTitle, false},
		{"explicit desc", FilterSet{SortBy: SortPublishedAt, SortDirection: "desc"}, SortPublishedAt, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := Build(tc.fs)
			if q.SortBy != tc.wantBy {
				t.Errorf("SortBy = %q, want %q", q.SortBy, tc.wantBy)
			}
			if q.SortDesc != tc.wantDesc {
				t.Errorf("SortDesc = %v, want %v", q.SortDesc, tc.wantDesc)
			}
		})
	}
}

func TestBuildIsPure(t *testing.T) {
	fs := FilterSet{Category: "technology", SortBy: SortTitle}
	q1 := Build(fs)
	q2 := Build(fs)

	if len(q1.Predicates) != len(q2.Predicates) || q1.SortBy != q2.SortBy || q1.SortDesc != q2.SortDesc {
		t.Error("Build is not deterministic for identical input")
	}
}
