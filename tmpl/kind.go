package tmpl

import "fmt"

// Kind is the node kind. The set of kinds is closed; every Tree node and
// every Data node has exactly one.
type Kind uint8

const (
	Id Kind = iota
	ValueLiteral
	Reference
	This
	Operator
	Diagnostic
	EmbeddedComment
	ModulePath
	DeclarationMetadata

	TypeName
	FunctionType
	TypeUnion
	TopType
	NeverType

	CallExpression
	FnReference
	MethodReference
	InfixOperation
	PrefixOperation
	GetProperty
	PropertyLValue
	CastExpression
	InstanceOfExpression
	AwaitExpression
	FunctionExpression
	RestSpread

	Garbage

	Block
	ExpressionStatement
	Assignment
	LocalDeclaration
	IfStatement
	WhileStatement
	ReturnStatement
	BreakStatement
	ContinueStatement
	LabeledStatement
	ThrowStatement
	HandlerScope
	TryStatement

	Module
	ModuleSet
	Import
	ModuleFunctionDeclaration
	ModuleLevelDeclaration
	Parameters
	Formal
	RestFormal
	TypeFormal
	TypeDeclaration
	Property
	Method
	Constructor
	ModuleInitBlock
	Test

	kindCount
)

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	res := make([]Kind, kindCount)
	for i := range res {
		res[i] = Kind(i)
	}
	return res
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return grammar[k].Name
}

func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("%w: no kind %d", ErrEncode, k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := ParseKind(string(d))
	if !ok {
		return fmt.Errorf("%w: unrecognized kind %q", ErrDecode, d)
	}
	*k = kk
	return nil
}

// ParseKind returns the kind with the given name.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindsByName[s]
	return k, ok
}

// Roles returns the capabilities of nodes of kind k.
func (k Kind) Roles() Role {
	return grammar[k].Roles
}

// Is reports whether nodes of kind k can serve in every role of r.
func (k Kind) Is(r Role) bool {
	return grammar[k].Roles&r == r
}

var kindsByName = func() map[string]Kind {
	res := make(map[string]Kind, kindCount)
	for i := range grammar {
		res[grammar[i].Name] = Kind(i)
	}
	return res
}()
