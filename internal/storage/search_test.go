package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSymbols(t *testing.T, s *SQLiteStorage) *Project {
	t.Helper()
	ctx := context.Background()
	project := createTestProject(t, s)
	file := createTestFile(t, s, project.ID, "models.ts")

	rows := []Symbol{
		{Name: "App", Kind: "module", QualifiedName: "App", IsExported: true},
		{Name: "User", Kind: "class", QualifiedName: "App.User", Container: "App", IsExported: true},
		{Name: "userName", Kind: "field", QualifiedName: "App.User.userName", Container: "App.User", IsExported: true, Access: "public"},
		{Name: "user_id", Kind: "field", QualifiedName: "App.User.user_id", Container: "App.User", Access: "private"},
		{Name: "save", Kind: "function", QualifiedName: "App.User.save", Container: "App.User", IsExported: true, Access: "public"},
		{Name: "Usage", Kind: "class", QualifiedName: "App.Usage", Container: "App"},
		{Name: "u%x", Kind: "field", QualifiedName: "App.Usage.u%x", Container: "App.Usage"},
	}
	for i := range rows {
		sym := rows[i]
		sym.FileID = file.ID
		sym.Ordinal = i
		sym.Signature = sym.Name
		require.NoError(t, s.UpsertSymbol(ctx, &sym))
	}
	return project
}

func names(symbols []*Symbol) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, s.Name)
	}
	return out
}

func TestSearchSymbols_Prefix(t *testing.T) {
	storage := setupTestDB(t)
	project := seedSymbols(t, storage)
	ctx := context.Background()

	results, err := storage.SearchSymbols(ctx, project.ID, "us", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Usage", "user_id", "userName"}, names(results))
	assert.Equal(t, "models.ts", results[0].FilePath)

	results, err = storage.SearchSymbols(ctx, project.ID, "user_", nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"user_id"}, names(results))

	results, err = storage.SearchSymbols(ctx, project.ID, "zzz", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSymbols_Filters(t *testing.T) {
	storage := setupTestDB(t)
	project := seedSymbols(t, storage)
	ctx := context.Background()

	results, err := storage.SearchSymbols(ctx, project.ID, "us", &SymbolFilters{Kinds: []string{"class"}}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Usage"}, names(results))

	results, err = storage.SearchSymbols(ctx, project.ID, "", &SymbolFilters{Container: "App.User", ExportedOnly: true}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"save", "userName"}, names(results))

	results, err = storage.SearchSymbols(ctx, project.ID, "", nil, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchSymbols_NonTokenPrefix(t *testing.T) {
	storage := setupTestDB(t)
	project := seedSymbols(t, storage)
	ctx := context.Background()

	// "%" has no indexable characters and must be matched literally
	results, err := storage.SearchSymbols(ctx, project.ID, "%", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = storage.SearchSymbols(ctx, project.ID, `u"`, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSymbols_OtherProject(t *testing.T) {
	storage := setupTestDB(t)
	seedSymbols(t, storage)
	ctx := context.Background()

	other := &Project{RootPath: "/other", IndexVersion: CurrentSchemaVersion}
	require.NoError(t, storage.CreateProject(ctx, other))

	results, err := storage.SearchSymbols(ctx, other.ID, "us", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListMembers(t *testing.T) {
	storage := setupTestDB(t)
	project := seedSymbols(t, storage)
	ctx := context.Background()

	members, err := storage.ListMembers(ctx, project.ID, "App.User", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"userName", "user_id", "save"}, names(members))

	members, err = storage.ListMembers(ctx, project.ID, "App", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Usage"}, names(members))

	members, err = storage.ListMembers(ctx, project.ID, "Nope", 10)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestFtsPrefixQuery(t *testing.T) {
	assert.Equal(t, `name : "abc" *`, ftsPrefixQuery("abc"))
	assert.Equal(t, `name : "a""b" *`, ftsPrefixQuery(`a"b`))
	assert.Equal(t, "", ftsPrefixQuery("%."))
	assert.Equal(t, "", ftsPrefixQuery(""))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\`, escapeLike(`a%b_c\`))
}
