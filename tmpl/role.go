package tmpl

import "strings"

// Role is a set of capabilities: what a node can be used as. One kind can
// have several roles at once; a call is an Expression, an Actual, a
// Subject and a Handled operation.
type Role uint32

const (
	RoleName Role = 1 << iota
	RoleExpression
	RoleStatement
	RoleType
	RoleCallable
	RoleTopLevel
	RoleSubject
	RoleActual
	RoleLValue
	RoleHandled
	RoleMember
	RoleFormal
	RoleRestFormal
	RoleTypeFormal
	RoleMetadata
	RoleImport
	RoleModule
	RoleParameters
	RoleBlock
	RoleOperator
	RoleDiagnostic
	RoleModulePath
	RoleDeclaration

	roleEnd
)

// roleGarbage is every role a failed translation may stand in for.
const roleGarbage = RoleStatement | RoleExpression | RoleType | RoleCallable |
	RoleTopLevel | RoleActual | RoleSubject | RoleLValue | RoleMember | RoleHandled

var roleNames = map[Role]string{
	RoleName:        "Name",
	RoleExpression:  "Expression",
	RoleStatement:   "Statement",
	RoleType:        "Type",
	RoleCallable:    "Callable",
	RoleTopLevel:    "TopLevel",
	RoleSubject:     "Subject",
	RoleActual:      "Actual",
	RoleLValue:      "LValue",
	RoleHandled:     "Handled",
	RoleMember:      "Member",
	RoleFormal:      "Formal",
	RoleRestFormal:  "RestFormal",
	RoleTypeFormal:  "TypeFormal",
	RoleMetadata:    "Metadata",
	RoleImport:      "Import",
	RoleModule:      "Module",
	RoleParameters:  "Parameters",
	RoleBlock:       "Block",
	RoleOperator:    "Operator",
	RoleDiagnostic:  "Diagnostic",
	RoleModulePath:  "ModulePath",
	RoleDeclaration: "Declaration",
}

func (r Role) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	for b := Role(1); b < roleEnd; b <<= 1 {
		if r&b != 0 {
			parts = append(parts, roleNames[b])
		}
	}
	return strings.Join(parts, "|")
}

// Accepts reports whether a node with roles have can fill a slot wanting r:
// any one shared role suffices.
func (r Role) Accepts(have Role) bool {
	return r&have != 0
}

// ParseRole returns the role with the given name.
func ParseRole(s string) (Role, bool) {
	for r, n := range roleNames {
		if n == s {
			return r, true
		}
	}
	return 0, false
}
