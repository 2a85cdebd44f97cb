package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"y": YAMLFormat, "yaml": YAMLFormat, "j": JSONFormat, "json": JSONFormat} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestSuffix(t *testing.T) {
	for _, f := range AllFormats() {
		back, ok := FromSuffix(f.Suffix())
		if !ok || back != f {
			t.Errorf("FromSuffix(%q) = %s, %v", f.Suffix(), back, ok)
		}
	}
	if f, ok := FromSuffix(".yml"); !ok || f != YAMLFormat {
		t.Errorf(".yml: %s %v", f, ok)
	}
}
