package orderform

import "testing"

func TestNewOptions_BackfillsClearedFields(t *testing.T) {
	opts := NewOptions(func(o *Options) {
		o.FormPath = ""
		o.SearchParam = ""
		o.DefaultLimit = 0
		o.MaxLimit = -1
		o.Now = nil
	})

	if opts.FormPath != "/order" {
		t.Fatalf("unexpected form path: %q", opts.FormPath)
	}
	if opts.SearchParam != "q" {
		t.Fatalf("unexpected search param: %q", opts.SearchParam)
	}
	if opts.DefaultLimit != 20 || opts.MaxLimit != 100 {
		t.Fatalf("unexpected limits: %d/%d", opts.DefaultLimit, opts.MaxLimit)
	}
	if opts.Now == nil {
		t.Fatal("expected clock backfill")
	}
}

func TestClampLimit(t *testing.T) {
	opts := NewOptions(WithSearchLimits(10, 25))

	cases := []struct {
		in   int
		want int
	}{
		{in: 0, want: 10},
		{in: -3, want: 10},
		{in: 5, want: 5},
		{in: 25, want: 25},
		{in: 500, want: 25},
	}
	for _, tc := range cases {
		if got := clampLimit(tc.in, opts); got != tc.want {
			t.Fatalf("clampLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
