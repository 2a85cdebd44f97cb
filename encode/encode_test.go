package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/signadot/outtree/tmpl"
	"github.com/signadot/outtree/token"
	"github.com/signadot/outtree/value"
)

func sampleFunction() *tmpl.Node {
	body := tmpl.NewBlock(
		tmpl.NewComment("100% done"),
		tmpl.NewReturn(tmpl.NewValue(value.String("ok"))),
	)
	return tmpl.NewFunction(tmpl.NewId("f"), tmpl.NewParameters(), nil, body)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		opts []EncodeOption
		want string
	}{
		{"default", nil, "fn f() {\n  // 100% done\n  return \"ok\";\n}"},
		{"indent", []EncodeOption{EncodeIndent("\t")}, "fn f() {\n\t// 100% done\n\treturn \"ok\";\n}"},
		{"no comments", []EncodeOption{EncodeComments(false)}, "fn f() {\n  return \"ok\";\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(sampleFunction(), &buf, tt.opts...); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestMustString(t *testing.T) {
	m := tmpl.NewModule("m", "m.js", nil, tmpl.NewModuleInitBlock(tmpl.NewBlock()))
	if got := MustString(m); got != "init {}" {
		t.Errorf("got %q", got)
	}
}

type brokenWriter struct{}

var errBroken = errors.New("broken")

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestEncodeError(t *testing.T) {
	err := Encode(sampleFunction(), brokenWriter{})
	if !errors.Is(err, errBroken) {
		t.Errorf("expected the write error, got %v", err)
	}
}

func TestColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	c := NewColors()
	got := c.Color(token.Token{Text: "100%", Category: token.Word})
	if !strings.Contains(got, "\x1b[") || !strings.Contains(got, "100%") || strings.Contains(got, "%!") {
		t.Errorf("bad word color %q", got)
	}
	if c.Color(token.OneSpace) != " " {
		t.Error("space tokens are colored")
	}
	open := token.Guess("{")
	if c.Color(open) == c.Get(token.Punctuation, false)("{") {
		t.Error("brackets share the punctuation color")
	}

	var buf bytes.Buffer
	if err := Encode(sampleFunction(), &buf, EncodeColors(c)); err != nil {
		t.Fatal(err)
	}
	plain := MustString(sampleFunction())
	if buf.String() == plain || !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("not colored: %q", buf.String())
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name, a, b, want string
	}{
		{"equal", "a\nb\n", "a\nb\n", ""},
		{"replace", "a\nb\nc\n", "a\nx\nc\n", "  a\n- b\n+ x\n  c\n"},
		{"blank line", "a\n\nb\n", "a\nb\n", "  a\n- \n  b\n"},
		{"append", "a", "a\nb", "- a\n+ a\n+ b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Diff(tt.a, tt.b, nil)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffRenderings(t *testing.T) {
	a := tmpl.NewIf(tmpl.Ref("c"), tmpl.NewBlock(tmpl.NewReturn(nil)), nil)
	b := a.DeepCopy()
	b.SetChild("alternate", tmpl.NewBlock())
	got := Diff(MustString(a)+"\n", MustString(b)+"\n", nil)
	want := "  if (c) {\n    return;\n- }\n+ } else {}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
