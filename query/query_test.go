package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/signadot/outtree/name"
	"github.com/signadot/outtree/tmpl"
	"github.com/signadot/outtree/types"
	"github.com/signadot/outtree/value"
)

func sample() *tmpl.Node {
	get := tmpl.NewMethod(tmpl.NewId("get"), tmpl.NewParameters(), tmpl.NewTypeName(tmpl.NewId("Int")),
		tmpl.NewBlock(tmpl.NewReturn(tmpl.NewCall(tmpl.NewFnReference(tmpl.NewId("load"))))))
	cls := tmpl.NewTypeDeclaration(tmpl.NewId("Box"), nil, get)
	main := tmpl.NewFunction(tmpl.NewId("main"), tmpl.NewParameters(), nil, tmpl.NewBlock(
		tmpl.NewLocal(tmpl.NewResolvedId(name.Resolved{Base: "tmp", UID: 1}, ""), nil, tmpl.NewValue(value.Int(4))),
		tmpl.NewExpressionStatement(tmpl.NewCall(tmpl.NewFnReference(tmpl.NewId("run")))),
	))
	return tmpl.NewModule("m", "m.js", nil, cls, main)
}

func paths(ns []*tmpl.Node) []string {
	res := make([]string, len(ns))
	for i, n := range ns {
		res[i] = n.Path()
	}
	return res
}

func TestSelect(t *testing.T) {
	tests := []struct {
		where string
		want  []string
	}{
		{`Kind == "CallExpression" && Within("TypeDeclaration")`, []string{"$.body[0].members[0].body.statements[0].expr"}},
		{`Kind == "CallExpression"`, []string{
			"$.body[0].members[0].body.statements[0].expr",
			"$.body[1].body.statements[1].expr",
		}},
		{`Kind == "Id" && Name startsWith "tmp"`, []string{"$.body[1].body.statements[0].name"}},
		{`Has("Declaration") && Name != ""`, []string{"$.body[0]", "$.body[0].members[0]", "$.body[1]", "$.body[1].body.statements[0]"}},
		{`Kind == "ValueLiteral" && Attr("value") == "4"`, []string{"$.body[1].body.statements[0].init"}},
		{`Parent == "Module" && Index == 1`, []string{"$.body[1]"}},
		{`Depth == 0 && Slot == "" && Children == 2`, []string{"$"}},
		{`Text() == "run()"`, []string{"$.body[1].body.statements[1].expr"}},
		{`Path() == "$.body[0].name"`, []string{"$.body[0].name"}},
		{`Has("Nope") || Within("Nope")`, []string{}},
	}
	root := sample()
	for _, tt := range tests {
		t.Run(tt.where, func(t *testing.T) {
			q, err := Compile(tt.where)
			require.NoError(t, err)
			got, err := q.Select(root)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, paths(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, where := range []string{`Kind + 1`, `Nope == 1`, `Kind ==`} {
		_, err := Compile(where)
		require.Error(t, err, where)
		require.True(t, errors.Is(err, ErrQuery))
	}
}

func TestEnvAttr(t *testing.T) {
	r := tmpl.Ref("x").SetAttr("type", types.Named("Int"))
	env := EnvOf(r)
	require.Equal(t, "Int", env.Attr("type"))
	require.Equal(t, "", env.Attr("nope"))
	require.Equal(t, "x", env.Name)
	require.Equal(t, -1, env.Index)

	md := tmpl.NewMetadata("since", tmpl.NewValue(value.String("v1")).Data())
	require.Equal(t, `"v1"`, EnvOf(md).Attr("value"))
	require.Equal(t, "", EnvOf(tmpl.NewMetadata("k", nil)).Attr("value"))
}
