package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tscontext-mcp/internal/parser"
	"github.com/dshills/tscontext-mcp/pkg/types"
)

const sample = `
module App.Models {
    export class User {
        public name: string;
        private secret: string;
        age: number = 3;
        save(force: boolean): void {}
        private hash(): string;
    }
    class Draft {}
}
`

func TestFlatten(t *testing.T) {
	model, err := parser.Parse(sample)
	require.NoError(t, err)

	syms := New().Flatten(model)

	names := make([]string, 0, len(syms))
	for _, s := range syms {
		names = append(names, s.QualifiedName)
		assert.NoError(t, s.Validate(), s.QualifiedName)
	}
	assert.Equal(t, []string{
		"App",
		"App.Models",
		"App.Models.User",
		"App.Models.User.name",
		"App.Models.User.secret",
		"App.Models.User.age",
		"App.Models.User.save",
		"App.Models.User.hash",
		"App.Models.Draft",
	}, names)

	for i, s := range syms {
		assert.Equal(t, i, s.Ordinal)
	}

	byName := make(map[string]types.Symbol)
	for _, s := range syms {
		byName[s.QualifiedName] = s
	}

	assert.Equal(t, types.KindModule, byName["App.Models"].Kind)
	assert.Equal(t, "App", byName["App.Models"].Container)
	assert.Equal(t, "", byName["App"].Container)

	user := byName["App.Models.User"]
	assert.Equal(t, types.KindClass, user.Kind)
	assert.True(t, user.IsExported)
	assert.Equal(t, "export class User", user.Signature)

	assert.False(t, byName["App.Models.Draft"].IsExported)

	name := byName["App.Models.User.name"]
	assert.Equal(t, types.KindField, name.Kind)
	assert.Equal(t, "App.Models.User", name.Container)
	assert.Equal(t, "name: string", name.Signature)
	assert.Equal(t, types.TypeString, name.Type)
	assert.True(t, name.IsExported)

	assert.Equal(t, "private secret: string", byName["App.Models.User.secret"].Signature)
	assert.False(t, byName["App.Models.User.secret"].IsExported)
	assert.Equal(t, "age: number", byName["App.Models.User.age"].Signature)

	save := byName["App.Models.User.save"]
	assert.Equal(t, types.KindFunction, save.Kind)
	assert.Equal(t, "save(force: boolean): void", save.Signature)
	assert.Equal(t, types.TypeVoid, save.Type)
}

func TestFlatten_ExcludePrivate(t *testing.T) {
	model, err := parser.Parse(sample)
	require.NoError(t, err)

	f := &Flattener{IncludePrivate: false}
	for _, s := range f.Flatten(model) {
		assert.NotEqual(t, types.AccessPrivate, s.Access, s.QualifiedName)
	}
}

func TestFlatten_Nil(t *testing.T) {
	assert.Nil(t, New().Flatten(nil))
}

func TestFunctionSignature_NoAnnotations(t *testing.T) {
	fn := &types.Function{
		Name:      "run",
		Access:    types.AccessProtected,
		Arguments: []*types.Argument{{Name: "a"}, {Name: "b", TypeName: "number"}},
	}
	assert.Equal(t, "protected run(a, b: number)", FunctionSignature(fn))
}
