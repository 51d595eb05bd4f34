package filter

import (
	"errors"
	"testing"
)

func TestParseInterval(t *testing.T) {
	t.Parallel()
	tests := []struct {
		spec   string
		accept []int
		reject []int
	}{
		{spec: "1-10", accept: []int{1, 5, 10}, reject: []int{0, 11}},
		{spec: "1-9, 11", accept: []int{1, 9, 11}, reject: []int{10, 12}},
		{spec: "7", accept: []int{7}, reject: []int{6, 8}},
		{spec: "-5--1", accept: []int{-5, -1}, reject: []int{0, -6}},
		{spec: "-3", accept: []int{-3}, reject: []int{3}},
		{spec: "", reject: []int{0, 1}},
		{spec: "3,,4,", accept: []int{3, 4}, reject: []int{5}},
		{spec: "0-2, 10", accept: []int{0, 1, 2, 10}, reject: []int{-1, 3, 9, 11}},
		{spec: "10-1", reject: []int{-1, 0, 1, 5, 10, 11}},
	}
	for _, tt := range tests {
		f, err := ParseInterval(tt.spec)
		if err != nil {
			t.Fatalf("ParseInterval(%q): %v", tt.spec, err)
		}
		for _, n := range tt.accept {
			if !f.Accept(n) {
				t.Errorf("%q should accept %d", tt.spec, n)
			}
		}
		for _, n := range tt.reject {
			if f.Accept(n) {
				t.Errorf("%q should reject %d", tt.spec, n)
			}
		}
	}
}

func TestParseInterval_ReversedRangeIsEmpty(t *testing.T) {
	t.Parallel()
	for _, spec := range []string{"10-1", "0--5", "3-2, 7-6"} {
		f, err := ParseInterval(spec)
		if err != nil {
			t.Fatalf("ParseInterval(%q): %v", spec, err)
		}
		for n := -20; n < 20; n++ {
			if f.Accept(n) {
				t.Errorf("%q should reject %d", spec, n)
			}
		}
	}
}

func TestParseInterval_Invalid(t *testing.T) {
	t.Parallel()
	for _, spec := range []string{"a", "1-", "1-b", "x-3"} {
		_, err := ParseInterval(spec)
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("ParseInterval(%q) error = %v, want ConfigError", spec, err)
			continue
		}
		if ce.Text != spec {
			t.Errorf("ConfigError.Text = %q, want %q", ce.Text, spec)
		}
	}
}

func TestIntervalFilter_Equal(t *testing.T) {
	t.Parallel()
	a, _ := ParseInterval("1-10")
	b, _ := ParseInterval(" 1-10 ")
	c, _ := ParseInterval("1-9, 10")

	if !a.Equal(b) {
		t.Error("same ranges should be equal")
	}
	if a.Equal(c) {
		t.Error("different ranges should not be equal")
	}
	if a.Key() != "1-10" || c.Key() != "1-9,10" {
		t.Errorf("keys = %q, %q", a.Key(), c.Key())
	}
	if b.String() != " 1-10 " {
		t.Errorf("String() = %q", b.String())
	}
	if got := c.Ranges(); len(got) != 2 || got[1] != (IntRange{Lo: 10, Hi: 10}) {
		t.Errorf("Ranges() = %v", got)
	}
}
