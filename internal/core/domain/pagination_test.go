package domain

import "testing"

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name      string
		in        PageRequest
		wantPage  int
		wantLimit int
	}{
		{"defaults", PageRequest{}, 1, 10},
		{"negative", PageRequest{Page: -3, Limit: -1}, 1, 10},
		{"passthrough", PageRequest{Page: 2, Limit: 25}, 2, 25},
		{"capped", PageRequest{Page: 1, Limit: 5000}, 1, 100},
	}
	for _, tc := range cases {
		got := tc.in.Normalize()
		if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
			t.Fatalf("%s: got %+v", tc.name, got)
		}
	}
}

func TestPageRequest_Skip(t *testing.T) {
	p := PageRequest{Page: 2, Limit: 10}
	if p.Skip() != 10 {
		t.Fatalf("expected skip 10, got %d", p.Skip())
	}
}

func TestTotalPages(t *testing.T) {
	// 25 records at limit 10 paginate into 3 pages.
	if got := TotalPages(25, 10); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := TotalPages(30, 10); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := TotalPages(0, 10); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := TotalPages(1, 10); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}
