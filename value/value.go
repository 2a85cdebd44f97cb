// Package value holds literal constants embedded in IR trees. Each value
// renders its own token.
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/outtree/token"
)

var ErrUnsupported = errors.New("unsupported value")

// Value is a literal constant.
type Value interface {
	RenderTo(token.Sink)
	// Key identifies the value by content, including its type.
	Key() string
}

type (
	Int    int64
	Float  float64
	String string
	Bool   bool
	Null   struct{}
)

func (v Int) RenderTo(s token.Sink) {
	s.Emit(token.Token{Text: strconv.FormatInt(int64(v), 10), Category: token.NumericValue})
}
func (v Int) Key() string { return "i:" + strconv.FormatInt(int64(v), 10) }

func (v Float) RenderTo(s token.Sink) {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		s.Emit(token.Token{Text: "NaN", Category: token.Word})
	case math.IsInf(f, 1):
		s.Emit(token.Token{Text: "Infinity", Category: token.Word})
	case math.IsInf(f, -1):
		s.Emit(token.Token{Text: "-Infinity", Category: token.Word})
	default:
		text := strconv.FormatFloat(f, 'g', -1, 64)
		if f == math.Trunc(f) && !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		s.Emit(token.Token{Text: text, Category: token.NumericValue})
	}
}
func (v Float) Key() string { return "f:" + strconv.FormatFloat(float64(v), 'g', -1, 64) }

func (v String) RenderTo(s token.Sink) {
	s.Emit(token.Token{Text: strconv.Quote(string(v)), Category: token.QuotedValue})
}
func (v String) Key() string { return "s:" + string(v) }

func (v Bool) RenderTo(s token.Sink) {
	s.Emit(token.Token{Text: strconv.FormatBool(bool(v)), Category: token.Word})
}
func (v Bool) Key() string { return "b:" + strconv.FormatBool(bool(v)) }

func (Null) RenderTo(s token.Sink) {
	s.Emit(token.Token{Text: "null", Category: token.Word})
}
func (Null) Key() string { return "null" }

// Of converts a decoded scalar to a Value.
func Of(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows int64", ErrUnsupported, v)
		}
		return Int(v), nil
	case float64:
		return Float(v), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, x)
}

// Raw is the inverse of Of for the values defined here.
func Raw(v Value) (any, error) {
	switch x := v.(type) {
	case nil, Null:
		return nil, nil
	case Int:
		return int64(x), nil
	case Float:
		return float64(x), nil
	case String:
		return string(x), nil
	case Bool:
		return bool(x), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
}
