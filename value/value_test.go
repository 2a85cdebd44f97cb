package value

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/outtree/token"
)

func TestRenderTo(t *testing.T) {
	tests := []struct {
		v    Value
		want token.Token
	}{
		{Int(-3), token.Token{Text: "-3", Category: token.NumericValue}},
		{Float(2), token.Token{Text: "2.0", Category: token.NumericValue}},
		{Float(0.5), token.Token{Text: "0.5", Category: token.NumericValue}},
		{Float(1e21), token.Token{Text: "1e+21", Category: token.NumericValue}},
		{Float(math.Inf(1)), token.Token{Text: "Infinity", Category: token.Word}},
		{String("a\"b"), token.Token{Text: `"a\"b"`, Category: token.QuotedValue}},
		{Bool(true), token.Token{Text: "true", Category: token.Word}},
		{Null{}, token.Token{Text: "null", Category: token.Word}},
	}
	for _, tt := range tests {
		var toks token.Tokens
		tt.v.RenderTo(&toks)
		if diff := cmp.Diff(token.Tokens{tt.want}, toks); diff != "" {
			t.Errorf("%#v rendered (-want +got):\n%s", tt.v, diff)
		}
	}
}

func TestKeysDistinguishTypes(t *testing.T) {
	keys := map[string]Value{}
	for _, v := range []Value{Int(1), Float(1), String("1"), Bool(true), String("true"), Null{}, String("null")} {
		if prev, ok := keys[v.Key()]; ok {
			t.Errorf("%#v and %#v share key %q", prev, v, v.Key())
		}
		keys[v.Key()] = v
	}
}

func TestOfRaw(t *testing.T) {
	for _, x := range []any{nil, true, "s", int64(4), 2.5} {
		v, err := Of(x)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Raw(v)
		if err != nil {
			t.Fatal(err)
		}
		if back != x {
			t.Errorf("Raw(Of(%#v)) = %#v", x, back)
		}
	}
	if _, err := Of(uint64(math.MaxUint64)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected overflow error, got %v", err)
	}
	if _, err := Of([]int{1}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected unsupported error, got %v", err)
	}
}
