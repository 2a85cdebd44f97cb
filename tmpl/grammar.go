package tmpl

// Arity says how many children a slot holds.
type Arity int

const (
	// Required is a required single child.
	Required Arity = iota
	// Optional is a single child that may be absent.
	Optional
	// Many is an ordered list of children.
	Many
)

func (a Arity) String() string {
	switch a {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Many:
		return "many"
	}
	return "<unknown arity>"
}

// SlotDef describes one owned child slot. A kind's slots, in order, are at
// once its child schema, its format elements (template index i is slot i)
// and the child part of its equality fields.
type SlotDef struct {
	Name    string
	Arity   Arity
	Accepts Role
}

// AttrType is the type of a non-child content field.
type AttrType int

const (
	AttrString    AttrType = iota // string
	AttrName                      // name.Resolved
	AttrTarget                    // name.Target
	AttrValue                     // value.Value, may be nil
	AttrType2                     // types.Type2, may be nil
	AttrSignature                 // types.Signature2, may be nil
	AttrShape                     // types.TypeShape, may be nil
	AttrData                      // *Data, may be nil
)

func (t AttrType) String() string {
	s, ok := map[AttrType]string{
		AttrString:    "string",
		AttrName:      "name",
		AttrTarget:    "target",
		AttrValue:     "value",
		AttrType2:     "type",
		AttrSignature: "signature",
		AttrShape:     "shape",
		AttrData:      "data",
	}[t]
	if ok {
		return s
	}
	return "<unknown attr type>"
}

// AttrDef describes a content field that is not a child. Attributes take
// part in equality and hashing but are never format elements.
type AttrDef struct {
	Name string
	Type AttrType
}

// Alternative is one template of a kind. It applies when every slot named
// in Requires is populated (present, or non-empty for lists). The first
// applicable alternative is chosen.
type Alternative struct {
	Requires []string
	Format   string
}

// KindDef is one production of the grammar.
type KindDef struct {
	Name  string
	Roles Role
	Slots []SlotDef
	Attrs []AttrDef
	// Alts are the templates; leaves render themselves instead.
	Alts []Alternative
	Leaf bool
}

func one(name string, r Role) SlotDef  { return SlotDef{Name: name, Arity: Required, Accepts: r} }
func opt(name string, r Role) SlotDef  { return SlotDef{Name: name, Arity: Optional, Accepts: r} }
func many(name string, r Role) SlotDef { return SlotDef{Name: name, Arity: Many, Accepts: r} }

func attr(name string, t AttrType) AttrDef { return AttrDef{Name: name, Type: t} }

func alt(format string, requires ...string) Alternative {
	return Alternative{Format: format, Requires: requires}
}

const (
	roleValueExpr = RoleExpression | RoleActual | RoleSubject
	roleLocation  = roleValueExpr | RoleLValue
)

var grammar = [kindCount]KindDef{
	Id: {
		Name:  "Id",
		Roles: RoleName,
		Attrs: []AttrDef{attr("name", AttrName), attr("target", AttrTarget)},
		Leaf:  true,
	},
	ValueLiteral: {
		Name:  "ValueLiteral",
		Roles: roleValueExpr,
		Attrs: []AttrDef{attr("value", AttrValue), attr("type", AttrType2)},
		Leaf:  true,
	},
	Reference: {
		Name:  "Reference",
		Roles: roleLocation,
		Slots: []SlotDef{one("id", RoleName)},
		Attrs: []AttrDef{attr("type", AttrType2)},
		Alts:  []Alternative{alt("{{0}}")},
	},
	This: {
		Name:  "This",
		Roles: roleValueExpr,
		Attrs: []AttrDef{attr("type", AttrType2)},
		Alts:  []Alternative{alt("this")},
	},
	Operator: {
		Name:  "Operator",
		Roles: RoleOperator,
		Attrs: []AttrDef{attr("text", AttrString)},
		Leaf:  true,
	},
	Diagnostic: {
		Name:  "Diagnostic",
		Roles: RoleDiagnostic,
		Attrs: []AttrDef{attr("message", AttrString)},
		Leaf:  true,
	},
	EmbeddedComment: {
		Name:  "EmbeddedComment",
		Roles: RoleStatement | RoleTopLevel | RoleMember,
		Attrs: []AttrDef{attr("text", AttrString)},
		Leaf:  true,
	},
	ModulePath: {
		Name:  "ModulePath",
		Roles: RoleModulePath,
		Attrs: []AttrDef{attr("module", AttrString)},
		Leaf:  true,
	},
	DeclarationMetadata: {
		Name:  "DeclarationMetadata",
		Roles: RoleMetadata,
		Attrs: []AttrDef{attr("key", AttrString), attr("value", AttrData)},
		Leaf:  true,
	},

	TypeName: {
		Name:  "TypeName",
		Roles: RoleType,
		Slots: []SlotDef{one("name", RoleName), many("args", RoleType)},
		Attrs: []AttrDef{attr("shape", AttrShape)},
		Alts: []Alternative{
			alt("{{0}}<{{1*:, }}>", "args"),
			alt("{{0}}"),
		},
	},
	FunctionType: {
		Name:  "FunctionType",
		Roles: RoleType,
		Slots: []SlotDef{many("params", RoleType), one("result", RoleType)},
		Alts:  []Alternative{alt("fn({{0*:, }}) -> {{1}}")},
	},
	TypeUnion: {
		Name:  "TypeUnion",
		Roles: RoleType,
		Slots: []SlotDef{many("members", RoleType)},
		Alts: []Alternative{
			alt("{{0*: | }}", "members"),
			alt("Never"),
		},
	},
	TopType: {
		Name:  "TopType",
		Roles: RoleType,
		Alts:  []Alternative{alt("AnyValue")},
	},
	NeverType: {
		Name:  "NeverType",
		Roles: RoleType,
		Alts:  []Alternative{alt("Never")},
	},

	CallExpression: {
		Name:  "CallExpression",
		Roles: roleValueExpr | RoleHandled,
		Slots: []SlotDef{
			one("fn", RoleCallable),
			many("typeArgs", RoleType),
			many("args", RoleActual),
		},
		Attrs: []AttrDef{attr("type", AttrType2), attr("signature", AttrSignature)},
		Alts: []Alternative{
			alt("{{0}}<{{1*:, }}>({{2*:, }})", "typeArgs"),
			alt("{{0}}({{2*:, }})"),
		},
	},
	FnReference: {
		Name:  "FnReference",
		Roles: RoleCallable | roleValueExpr,
		Slots: []SlotDef{one("id", RoleName)},
		Attrs: []AttrDef{attr("signature", AttrSignature)},
		Alts:  []Alternative{alt("{{0}}")},
	},
	MethodReference: {
		Name:  "MethodReference",
		Roles: RoleCallable,
		Slots: []SlotDef{one("subject", RoleSubject), one("method", RoleName)},
		Attrs: []AttrDef{attr("signature", AttrSignature)},
		Alts:  []Alternative{alt("{{0}}.{{1}}")},
	},
	InfixOperation: {
		Name:  "InfixOperation",
		Roles: roleValueExpr,
		Slots: []SlotDef{
			one("left", RoleExpression),
			one("op", RoleOperator),
			one("right", RoleExpression),
		},
		Attrs: []AttrDef{attr("type", AttrType2)},
		Alts:  []Alternative{alt("{{0}} {{1}} {{2}}")},
	},
	PrefixOperation: {
		Name:  "PrefixOperation",
		Roles: roleValueExpr,
		Slots: []SlotDef{one("op", RoleOperator), one("operand", RoleExpression)},
		Attrs: []AttrDef{attr("type", AttrType2)},
		Alts:  []Alternative{alt("{{0}}{{1}}")},
	},
	GetProperty: {
		Name:  "GetProperty",
		Roles: roleValueExpr,
		Slots: []SlotDef{one("subject", RoleSubject), one("property", RoleName)},
		Attrs: []AttrDef{attr("type", AttrType2)},
		Alts:  []Alternative{alt("{{0}}.{{1}}")},
	},
	PropertyLValue: {
		Name:  "PropertyLValue",
		Roles: RoleLValue,
		Slots: []SlotDef{one("subject", RoleSubject), one("property", RoleName)},
		Alts:  []Alternative{alt("{{0}}.{{1}}")},
	},
	CastExpression: {
		Name:  "CastExpression",
		Roles: roleValueExpr,
		Slots: []SlotDef{one("expr", RoleExpression), one("type", RoleType)},
		Alts:  []Alternative{alt("({{0}} as {{1}})")},
	},
	InstanceOfExpression: {
		Name:  "InstanceOfExpression",
		Roles: roleValueExpr,
		Slots: []SlotDef{one("expr", RoleExpression), one("type", RoleType)},
		Alts:  []Alternative{alt("({{0}} is {{1}})")},
	},
	AwaitExpression: {
		Name:  "AwaitExpression",
		Roles: RoleExpression | RoleActual | RoleHandled,
		Slots: []SlotDef{one("expr", RoleExpression)},
		Attrs: []AttrDef{attr("type", AttrType2)},
		Alts:  []Alternative{alt("await {{0}}")},
	},
	FunctionExpression: {
		Name:  "FunctionExpression",
		Roles: RoleExpression | RoleActual,
		Slots: []SlotDef{
			one("params", RoleParameters),
			opt("result", RoleType),
			one("body", RoleBlock),
		},
		Attrs: []AttrDef{attr("signature", AttrSignature)},
		Alts: []Alternative{
			alt("fn {{0}}: {{1}} {{2}}", "result"),
			alt("fn {{0}} {{2}}"),
		},
	},
	RestSpread: {
		Name:  "RestSpread",
		Roles: RoleActual,
		Slots: []SlotDef{one("expr", RoleExpression)},
		Alts:  []Alternative{alt("...{{0}}")},
	},

	Garbage: {
		Name:  "Garbage",
		Roles: roleGarbage,
		Slots: []SlotDef{opt("diagnostic", RoleDiagnostic)},
		Alts: []Alternative{
			alt("garbage {{0}}", "diagnostic"),
			alt("garbage"),
		},
	},

	Block: {
		Name:  "Block",
		Roles: RoleStatement | RoleBlock,
		Slots: []SlotDef{many("statements", RoleStatement)},
		Alts: []Alternative{
			alt("{\n{{0*:\n}}\n}", "statements"),
			alt("{}"),
		},
	},
	ExpressionStatement: {
		Name:  "ExpressionStatement",
		Roles: RoleStatement,
		Slots: []SlotDef{one("expr", RoleExpression)},
		Alts:  []Alternative{alt("{{0}};")},
	},
	Assignment: {
		Name:  "Assignment",
		Roles: RoleStatement,
		Slots: []SlotDef{one("left", RoleLValue), one("right", RoleExpression)},
		Alts:  []Alternative{alt("{{0}} = {{1}};")},
	},
	LocalDeclaration: {
		Name:  "LocalDeclaration",
		Roles: RoleStatement | RoleDeclaration,
		Slots: []SlotDef{
			one("name", RoleName),
			opt("type", RoleType),
			opt("init", RoleExpression),
		},
		Alts: []Alternative{
			alt("let {{0}}: {{1}} = {{2}};", "type", "init"),
			alt("let {{0}}: {{1}};", "type"),
			alt("let {{0}} = {{2}};", "init"),
			alt("let {{0}};"),
		},
	},
	IfStatement: {
		Name:  "IfStatement",
		Roles: RoleStatement,
		Slots: []SlotDef{
			one("test", RoleExpression),
			one("consequent", RoleStatement),
			opt("alternate", RoleStatement),
		},
		Alts: []Alternative{
			alt("if ({{0}}) {{1}} else {{2}}", "alternate"),
			alt("if ({{0}}) {{1}}"),
		},
	},
	WhileStatement: {
		Name:  "WhileStatement",
		Roles: RoleStatement,
		Slots: []SlotDef{one("test", RoleExpression), one("body", RoleStatement)},
		Alts:  []Alternative{alt("while ({{0}}) {{1}}")},
	},
	ReturnStatement: {
		Name:  "ReturnStatement",
		Roles: RoleStatement,
		Slots: []SlotDef{opt("expr", RoleExpression)},
		Alts: []Alternative{
			alt("return {{0}};", "expr"),
			alt("return;"),
		},
	},
	BreakStatement: {
		Name:  "BreakStatement",
		Roles: RoleStatement,
		Slots: []SlotDef{opt("label", RoleName)},
		Alts: []Alternative{
			alt("break {{0}};", "label"),
			alt("break;"),
		},
	},
	ContinueStatement: {
		Name:  "ContinueStatement",
		Roles: RoleStatement,
		Slots: []SlotDef{opt("label", RoleName)},
		Alts: []Alternative{
			alt("continue {{0}};", "label"),
			alt("continue;"),
		},
	},
	LabeledStatement: {
		Name:  "LabeledStatement",
		Roles: RoleStatement,
		Slots: []SlotDef{one("label", RoleName), one("body", RoleStatement)},
		Alts:  []Alternative{alt("{{0}}: {{1}}")},
	},
	ThrowStatement: {
		Name:  "ThrowStatement",
		Roles: RoleStatement,
		Slots: []SlotDef{one("expr", RoleExpression)},
		Alts:  []Alternative{alt("throw {{0}};")},
	},
	HandlerScope: {
		Name:  "HandlerScope",
		Roles: RoleStatement,
		Slots: []SlotDef{one("failed", RoleName), one("handled", RoleHandled)},
		Alts:  []Alternative{alt("let {{0}} = handle({{1}});")},
	},
	TryStatement: {
		Name:  "TryStatement",
		Roles: RoleStatement,
		Slots: []SlotDef{
			one("body", RoleBlock),
			one("recover", RoleBlock),
			opt("finally", RoleBlock),
		},
		Alts: []Alternative{
			alt("try {{0}} catch {{1}} finally {{2}}", "finally"),
			alt("try {{0}} catch {{1}}"),
		},
	},

	Module: {
		Name:  "Module",
		Roles: RoleModule,
		Slots: []SlotDef{many("imports", RoleImport), many("body", RoleTopLevel)},
		Attrs: []AttrDef{attr("name", AttrString), attr("path", AttrString)},
		Alts: []Alternative{
			alt("{{0*:\n}}\n\n{{1*:\n\n}}\n", "imports", "body"),
			alt("{{0*:\n}}\n", "imports"),
			alt("{{1*:\n\n}}\n", "body"),
			alt(""),
		},
	},
	ModuleSet: {
		Name:  "ModuleSet",
		Roles: 0,
		Slots: []SlotDef{many("modules", RoleModule)},
		Attrs: []AttrDef{attr("library", AttrString)},
		Alts: []Alternative{
			alt("{{0*:\n}}", "modules"),
			alt(""),
		},
	},
	Import: {
		Name:  "Import",
		Roles: RoleImport,
		Slots: []SlotDef{one("name", RoleName), opt("path", RoleModulePath)},
		Alts: []Alternative{
			alt("import {{0}} from {{1}};", "path"),
			alt("import {{0}};"),
		},
	},
	ModuleFunctionDeclaration: {
		Name:  "ModuleFunctionDeclaration",
		Roles: RoleTopLevel | RoleDeclaration,
		Slots: []SlotDef{
			many("metadata", RoleMetadata),
			one("name", RoleName),
			many("typeParams", RoleTypeFormal),
			one("params", RoleParameters),
			opt("result", RoleType),
			one("body", RoleBlock),
		},
		Attrs: []AttrDef{attr("signature", AttrSignature)},
		Alts: []Alternative{
			alt("{{0*:}}fn {{1}}<{{2*:, }}>{{3}}: {{4}} {{5}}", "typeParams", "result"),
			alt("{{0*:}}fn {{1}}<{{2*:, }}>{{3}} {{5}}", "typeParams"),
			alt("{{0*:}}fn {{1}}{{3}}: {{4}} {{5}}", "result"),
			alt("{{0*:}}fn {{1}}{{3}} {{5}}"),
		},
	},
	ModuleLevelDeclaration: {
		Name:  "ModuleLevelDeclaration",
		Roles: RoleTopLevel | RoleDeclaration,
		Slots: []SlotDef{
			many("metadata", RoleMetadata),
			one("name", RoleName),
			opt("type", RoleType),
			opt("init", RoleExpression),
		},
		Alts: []Alternative{
			alt("{{0*:}}let {{1}}: {{2}} = {{3}};", "type", "init"),
			alt("{{0*:}}let {{1}}: {{2}};", "type"),
			alt("{{0*:}}let {{1}} = {{3}};", "init"),
			alt("{{0*:}}let {{1}};"),
		},
	},
	Parameters: {
		Name:  "Parameters",
		Roles: RoleParameters,
		Slots: []SlotDef{many("formals", RoleFormal), opt("rest", RoleRestFormal)},
		Alts: []Alternative{
			alt("({{0*:, }}, ...{{1}})", "formals", "rest"),
			alt("(...{{1}})", "rest"),
			alt("({{0*:, }})"),
		},
	},
	Formal: {
		Name:  "Formal",
		Roles: RoleFormal,
		Slots: []SlotDef{one("name", RoleName), opt("type", RoleType)},
		Alts: []Alternative{
			alt("{{0}}: {{1}}", "type"),
			alt("{{0}}"),
		},
	},
	RestFormal: {
		Name:  "RestFormal",
		Roles: RoleRestFormal,
		Slots: []SlotDef{one("name", RoleName), opt("type", RoleType)},
		Alts: []Alternative{
			alt("{{0}}: {{1}}", "type"),
			alt("{{0}}"),
		},
	},
	TypeFormal: {
		Name:  "TypeFormal",
		Roles: RoleTypeFormal,
		Slots: []SlotDef{one("name", RoleName), many("bounds", RoleType)},
		Alts: []Alternative{
			alt("{{0}} extends {{1*: & }}", "bounds"),
			alt("{{0}}"),
		},
	},
	TypeDeclaration: {
		Name:  "TypeDeclaration",
		Roles: RoleTopLevel | RoleDeclaration,
		Slots: []SlotDef{
			many("metadata", RoleMetadata),
			one("name", RoleName),
			many("supertypes", RoleType),
			many("members", RoleMember),
		},
		Attrs: []AttrDef{attr("shape", AttrShape)},
		Alts: []Alternative{
			alt("{{0*:}}class {{1}} extends {{2*:, }} {\n{{3*:\n}}\n}", "supertypes", "members"),
			alt("{{0*:}}class {{1}} extends {{2*:, }} {}", "supertypes"),
			alt("{{0*:}}class {{1}} {\n{{3*:\n}}\n}", "members"),
			alt("{{0*:}}class {{1}} {}"),
		},
	},
	Property: {
		Name:  "Property",
		Roles: RoleMember | RoleDeclaration,
		Slots: []SlotDef{one("name", RoleName), one("type", RoleType)},
		Alts:  []Alternative{alt("{{0}}: {{1}};")},
	},
	Method: {
		Name:  "Method",
		Roles: RoleMember | RoleDeclaration,
		Slots: []SlotDef{
			one("name", RoleName),
			one("params", RoleParameters),
			opt("result", RoleType),
			opt("body", RoleBlock),
		},
		Attrs: []AttrDef{attr("signature", AttrSignature)},
		Alts: []Alternative{
			alt("{{0}}{{1}}: {{2}} {{3}}", "result", "body"),
			alt("{{0}}{{1}}: {{2}};", "result"),
			alt("{{0}}{{1}} {{3}}", "body"),
			alt("{{0}}{{1}};"),
		},
	},
	Constructor: {
		Name:  "Constructor",
		Roles: RoleMember,
		Slots: []SlotDef{one("params", RoleParameters), one("body", RoleBlock)},
		Alts:  []Alternative{alt("constructor{{0}} {{1}}")},
	},
	ModuleInitBlock: {
		Name:  "ModuleInitBlock",
		Roles: RoleTopLevel,
		Slots: []SlotDef{one("body", RoleBlock)},
		Alts:  []Alternative{alt("init {{0}}")},
	},
	Test: {
		Name:  "Test",
		Roles: RoleTopLevel,
		Slots: []SlotDef{one("name", RoleName), one("body", RoleBlock)},
		Alts:  []Alternative{alt("test {{0}} {{1}}")},
	},
}
