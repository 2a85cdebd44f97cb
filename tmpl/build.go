package tmpl

import (
	"github.com/signadot/outtree/name"
	"github.com/signadot/outtree/token"
	"github.com/signadot/outtree/value"
)

// Field is one slot or attribute assignment given to Make.
type Field struct {
	name     string
	child    *Node
	children []*Node
	attr     any
	kind     fieldKind
}

type fieldKind int

const (
	childField fieldKind = iota
	listField
	attrField
)

// C assigns a single slot. A nil child leaves the slot empty.
func C(slot string, child *Node) Field {
	return Field{name: slot, child: child, kind: childField}
}

// L assigns a list slot.
func L(slot string, children ...*Node) Field {
	return Field{name: slot, children: children, kind: listField}
}

// A assigns an attribute.
func A(attr string, v any) Field {
	return Field{name: attr, attr: v, kind: attrField}
}

// Make returns a new detached node of kind k. Fields go through the
// connection methods, so children with parents are moved.
func Make(k Kind, pos token.Pos, fields ...Field) *Node {
	n := newNode(k, pos)
	for _, f := range fields {
		switch f.kind {
		case attrField:
			n.SetAttr(f.name, f.attr)
		case listField:
			n.SetChildren(f.name, f.children)
		default:
			if f.child != nil {
				n.SetChild(f.name, f.child)
			}
		}
	}
	return n
}

func mk(k Kind, fields ...Field) *Node {
	return Make(k, token.NoPos, fields...)
}

func NewId(base string) *Node {
	return NewResolvedId(name.Resolved{Base: base}, "")
}

func NewResolvedId(r name.Resolved, t name.Target) *Node {
	return mk(Id, A("name", r), A("target", t))
}

func NewValue(v value.Value) *Node {
	return mk(ValueLiteral, A("value", v))
}

func NewReference(id *Node) *Node {
	return mk(Reference, C("id", id))
}

// Ref is NewReference(NewId(base)).
func Ref(base string) *Node {
	return NewReference(NewId(base))
}

func NewThis() *Node { return mk(This) }

func NewOperator(text string) *Node {
	return mk(Operator, A("text", text))
}

func NewDiagnostic(msg string) *Node {
	return mk(Diagnostic, A("message", msg))
}

func NewComment(text string) *Node {
	return mk(EmbeddedComment, A("text", text))
}

func NewModulePath(module string) *Node {
	return mk(ModulePath, A("module", module))
}

func NewMetadata(key string, v *Data) *Node {
	return mk(DeclarationMetadata, A("key", key), A("value", v))
}

func NewTypeName(id *Node, args ...*Node) *Node {
	return mk(TypeName, C("name", id), L("args", args...))
}

func NewFunctionType(result *Node, params ...*Node) *Node {
	return mk(FunctionType, L("params", params...), C("result", result))
}

func NewTypeUnion(members ...*Node) *Node {
	return mk(TypeUnion, L("members", members...))
}

func NewTopType() *Node   { return mk(TopType) }
func NewNeverType() *Node { return mk(NeverType) }

func NewCall(fn *Node, args ...*Node) *Node {
	return mk(CallExpression, C("fn", fn), L("args", args...))
}

func NewFnReference(id *Node) *Node {
	return mk(FnReference, C("id", id))
}

func NewMethodReference(subject, method *Node) *Node {
	return mk(MethodReference, C("subject", subject), C("method", method))
}

func NewInfix(left *Node, op string, right *Node) *Node {
	return mk(InfixOperation, C("left", left), C("op", NewOperator(op)), C("right", right))
}

func NewPrefix(op string, operand *Node) *Node {
	return mk(PrefixOperation, C("op", NewOperator(op)), C("operand", operand))
}

func NewGetProperty(subject, property *Node) *Node {
	return mk(GetProperty, C("subject", subject), C("property", property))
}

func NewPropertyLValue(subject, property *Node) *Node {
	return mk(PropertyLValue, C("subject", subject), C("property", property))
}

func NewCast(expr, typ *Node) *Node {
	return mk(CastExpression, C("expr", expr), C("type", typ))
}

func NewInstanceOf(expr, typ *Node) *Node {
	return mk(InstanceOfExpression, C("expr", expr), C("type", typ))
}

func NewAwait(expr *Node) *Node {
	return mk(AwaitExpression, C("expr", expr))
}

func NewFunctionExpression(params, result, body *Node) *Node {
	return mk(FunctionExpression, C("params", params), C("result", result), C("body", body))
}

func NewRestSpread(expr *Node) *Node {
	return mk(RestSpread, C("expr", expr))
}

// NewGarbage returns a placeholder for a failed translation. An empty msg
// gives no diagnostic.
func NewGarbage(msg string) *Node {
	n := mk(Garbage)
	if msg != "" {
		n.SetChild("diagnostic", NewDiagnostic(msg))
	}
	return n
}

func NewBlock(statements ...*Node) *Node {
	return mk(Block, L("statements", statements...))
}

func NewExpressionStatement(expr *Node) *Node {
	return mk(ExpressionStatement, C("expr", expr))
}

func NewAssignment(left, right *Node) *Node {
	return mk(Assignment, C("left", left), C("right", right))
}

func NewLocal(id, typ, init *Node) *Node {
	return mk(LocalDeclaration, C("name", id), C("type", typ), C("init", init))
}

func NewIf(test, consequent, alternate *Node) *Node {
	return mk(IfStatement, C("test", test), C("consequent", consequent), C("alternate", alternate))
}

func NewWhile(test, body *Node) *Node {
	return mk(WhileStatement, C("test", test), C("body", body))
}

func NewReturn(expr *Node) *Node {
	return mk(ReturnStatement, C("expr", expr))
}

func NewBreak(label *Node) *Node {
	return mk(BreakStatement, C("label", label))
}

func NewContinue(label *Node) *Node {
	return mk(ContinueStatement, C("label", label))
}

func NewLabeled(label, body *Node) *Node {
	return mk(LabeledStatement, C("label", label), C("body", body))
}

func NewThrow(expr *Node) *Node {
	return mk(ThrowStatement, C("expr", expr))
}

func NewHandlerScope(failed, handled *Node) *Node {
	return mk(HandlerScope, C("failed", failed), C("handled", handled))
}

func NewTry(body, recovery, finally *Node) *Node {
	return mk(TryStatement, C("body", body), C("recover", recovery), C("finally", finally))
}

func NewModule(moduleName, path string, imports []*Node, body ...*Node) *Node {
	return mk(Module, A("name", moduleName), A("path", path), L("imports", imports...), L("body", body...))
}

func NewModuleSet(library string, modules ...*Node) *Node {
	return mk(ModuleSet, A("library", library), L("modules", modules...))
}

func NewImport(id, path *Node) *Node {
	return mk(Import, C("name", id), C("path", path))
}

func NewFunction(id, params, result, body *Node) *Node {
	return mk(ModuleFunctionDeclaration, C("name", id), C("params", params), C("result", result), C("body", body))
}

func NewModuleLevelDeclaration(id, typ, init *Node) *Node {
	return mk(ModuleLevelDeclaration, C("name", id), C("type", typ), C("init", init))
}

func NewParameters(formals ...*Node) *Node {
	return mk(Parameters, L("formals", formals...))
}

func NewFormal(id, typ *Node) *Node {
	return mk(Formal, C("name", id), C("type", typ))
}

func NewRestFormal(id, typ *Node) *Node {
	return mk(RestFormal, C("name", id), C("type", typ))
}

func NewTypeFormal(id *Node, bounds ...*Node) *Node {
	return mk(TypeFormal, C("name", id), L("bounds", bounds...))
}

func NewTypeDeclaration(id *Node, supertypes []*Node, members ...*Node) *Node {
	return mk(TypeDeclaration, C("name", id), L("supertypes", supertypes...), L("members", members...))
}

func NewProperty(id, typ *Node) *Node {
	return mk(Property, C("name", id), C("type", typ))
}

func NewMethod(id, params, result, body *Node) *Node {
	return mk(Method, C("name", id), C("params", params), C("result", result), C("body", body))
}

func NewConstructor(params, body *Node) *Node {
	return mk(Constructor, C("params", params), C("body", body))
}

func NewModuleInitBlock(body *Node) *Node {
	return mk(ModuleInitBlock, C("body", body))
}

func NewTest(id, body *Node) *Node {
	return mk(Test, C("name", id), C("body", body))
}
