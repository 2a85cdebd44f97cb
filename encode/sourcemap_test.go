package encode

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/outtree/tmpl"
	"github.com/signadot/outtree/token"
	"github.com/signadot/outtree/value"
)

func TestEncodeSourceMap(t *testing.T) {
	fnPos := token.Pos{File: "a.src", Left: 0, Right: 30}
	retPos := token.Pos{File: "a.src", Left: 10, Right: 19}
	body := tmpl.NewBlock(
		tmpl.NewReturn(tmpl.NewValue(value.Int(1))).SetPos(retPos),
		tmpl.NewExpressionStatement(tmpl.Ref("x")),
	)
	fn := tmpl.NewFunction(tmpl.NewId("f"), tmpl.NewParameters(), nil, body).SetPos(fnPos)

	var buf bytes.Buffer
	sm, err := EncodeSourceMap(fn, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("fn f() {\n  return 1;\n  x;\n}", buf.String()); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
	want := []Mapping{
		{Offset: 0, Line: 0, Column: 0, Pos: fnPos},
		{Offset: 11, Line: 1, Column: 2, Pos: retPos},
		{Offset: 23, Line: 2, Column: 2, Pos: fnPos},
	}
	if diff := cmp.Diff(want, sm.Mappings); diff != "" {
		t.Errorf("mappings (-want +got):\n%s", diff)
	}

	d, err := sm.JSON()
	if err != nil {
		t.Fatal(err)
	}
	var back SourceMap
	if err := json.Unmarshal(d, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sm, &back); diff != "" {
		t.Errorf("json (-want +got):\n%s", diff)
	}
}

func TestEncodeSourceMapUnpositioned(t *testing.T) {
	var buf bytes.Buffer
	sm, err := EncodeSourceMap(tmpl.NewExpressionStatement(tmpl.Ref("x")), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "x;" {
		t.Errorf("output %q", buf.String())
	}
	if diff := cmp.Diff([]Mapping{{Pos: token.NoPos}}, sm.Mappings); diff != "" {
		t.Errorf("mappings (-want +got):\n%s", diff)
	}
}

func TestEncodeSourceMapMatchesEncode(t *testing.T) {
	n := sampleFunction().SetPos(token.Pos{Left: 1, Right: 2})
	var a, b bytes.Buffer
	if err := Encode(n, &a, EncodeComments(false)); err != nil {
		t.Fatal(err)
	}
	if _, err := EncodeSourceMap(n, &b, EncodeComments(false)); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("Encode %q, EncodeSourceMap %q", a.String(), b.String())
	}
}
