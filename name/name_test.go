package name

import "testing"

func TestResolvedRoundTrip(t *testing.T) {
	tests := []struct {
		in   Resolved
		want string
	}{
		{Resolved{Base: "x"}, "x"},
		{Resolved{Base: "x", UID: 3}, "x__3"},
		{Resolved{Base: "a__b", UID: 12}, "a__b__12"},
	}
	for _, tt := range tests {
		got := tt.in.String()
		if got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.in, got, tt.want)
		}
		if back := Parse(got); back != tt.in {
			t.Errorf("Parse(%q) = %#v, want %#v", got, back, tt.in)
		}
	}
}

func TestParseNoUID(t *testing.T) {
	for _, s := range []string{"__", "x__", "x__y", "x__0", "x__-2"} {
		if got := Parse(s); got != (Resolved{Base: s}) {
			t.Errorf("Parse(%q) = %#v", s, got)
		}
	}
}

func TestSpell(t *testing.T) {
	r := Resolved{Base: "len", UID: 2}
	if got := Spell(r, ""); got != "len__2" {
		t.Errorf("got %q", got)
	}
	if got := Spell(r, "length"); got != "length" {
		t.Errorf("got %q", got)
	}
}
