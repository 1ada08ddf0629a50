// internal/endpoint/endpoint_test.go
package endpoint

import (
	"errors"
	"testing"
)

func TestParse_Accepted(t *testing.T) {
	cases := []struct {
		in   string
		want Descriptor
	}{
		{"A (10.0.0.1:50002)", Descriptor{Name: "A", Address: "10.0.0.1", Port: "50002"}},
		{"  B (10.0.0.2:50003)  ", Descriptor{Name: "B", Address: "10.0.0.2", Port: "50003"}},
		{"10.0.0.3:50004", Descriptor{Address: "10.0.0.3", Port: "50004"}},
		{"(10.0.0.4:1)", Descriptor{Address: "10.0.0.4", Port: "1"}},
		{"ros pc (lab 2) (192.168.56.1:50002)", Descriptor{Name: "ros pc (lab 2)", Address: "192.168.56.1", Port: "50002"}},
		{"v6 ([fe80::1]:50002)", Descriptor{Name: "v6", Address: "fe80::1", Port: "50002"}},
		{"remote-pc (host.local:65535)", Descriptor{Name: "remote-pc", Address: "host.local", Port: "65535"}},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) err=%v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) got=%+v want=%+v", tc.in, got, tc.want)
		}
	}
}

func TestParse_Rejected(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"A",
		"A (10.0.0.1)",
		"A (10.0.0.1:)",
		"A (10.0.0.1:0)",
		"A (10.0.0.1:70000)",
		"A (10.0.0.1:port)",
		"A (10.0.0.1:050002)",
		"A (:50002)",
		"A 10.0.0.1:50002)",
		"::1:50002",
	}

	for _, in := range inputs {
		_, err := Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q) expected error, got nil", in)
		}
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("Parse(%q) error %v does not wrap ErrMalformed", in, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Parse(%q) error %T is not *ParseError", in, err)
		}
	}
}

func TestFormatParse_RoundTrip(t *testing.T) {
	descs := []Descriptor{
		{Name: "A", Address: "10.0.0.1", Port: "50002"},
		{Address: "10.0.0.1", Port: "50002"},
		{Name: "with (parens)", Address: "ros.local", Port: "30001"},
		{Name: "v6", Address: "fe80::1", Port: "50002"},
		{Name: "(x)", Address: "10.1.1.1", Port: "9"},
	}

	for _, d := range descs {
		if err := d.Validate(); err != nil {
			t.Fatalf("Validate(%+v) err=%v", d, err)
		}
		got, err := Parse(Format(d))
		if err != nil {
			t.Fatalf("Parse(Format(%+v)) err=%v", d, err)
		}
		if got != d {
			t.Fatalf("round trip mismatch: got=%+v want=%+v", got, d)
		}
	}
}

func TestParseFormat_CanonicalStrings(t *testing.T) {
	canonical := []string{
		"A (10.0.0.1:50002)",
		"10.0.0.1:50002",
		"v6 ([fe80::1]:50002)",
	}

	for _, s := range canonical {
		d, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) err=%v", s, err)
		}
		if got := Format(d); got != s {
			t.Fatalf("Format(Parse(%q)) = %q", s, got)
		}
	}

	// Non-canonical inputs normalize.
	d, err := Parse("(10.0.0.1:50002)")
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if got := d.String(); got != "10.0.0.1:50002" {
		t.Fatalf("expected canonical 10.0.0.1:50002, got %q", got)
	}
}

func TestSameTarget_IgnoresName(t *testing.T) {
	a := Descriptor{Name: "A", Address: "10.0.0.1", Port: "50002"}
	b := Descriptor{Name: "B", Address: "10.0.0.1", Port: "50002"}
	c := Descriptor{Name: "A", Address: "10.0.0.1", Port: "50003"}

	if !a.SameTarget(b) {
		t.Fatalf("name-only difference must be the same target")
	}
	if a.SameTarget(c) {
		t.Fatalf("port difference must not be the same target")
	}
}

func TestValidate_Rejects(t *testing.T) {
	bad := []Descriptor{
		{},
		{Address: "10.0.0.1"},
		{Address: "10.0.0.1", Port: "+5"},
		{Address: "a b", Port: "5"},
		{Address: "[x", Port: "5"},
		{Name: " A", Address: "10.0.0.1", Port: "5"},
		{Name: "A\nB", Address: "10.0.0.1", Port: "5"},
	}

	for _, d := range bad {
		if err := d.Validate(); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Validate(%+v) expected ErrMalformed, got %v", d, err)
		}
	}

	if !(Descriptor{}).IsZero() {
		t.Fatalf("zero descriptor must report IsZero")
	}
}
