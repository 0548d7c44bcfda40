package ports

import "testing"

func TestParseExpand(t *testing.T) {
	set := ParseExpand("user, developer,bogus")
	if !set.Has(ExpandUser) || !set.Has(ExpandDeveloper) {
		t.Fatalf("known relations dropped: %v", set)
	}
	if set.Has("bogus") || set.Has(ExpandGame) {
		t.Fatalf("unexpected relations kept: %v", set)
	}
}

func TestParseExpandEmpty(t *testing.T) {
	set := ParseExpand("")
	if len(set) != 0 {
		t.Fatalf("empty input should produce empty set: %v", set)
	}
}
