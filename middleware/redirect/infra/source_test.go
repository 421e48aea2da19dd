package infra

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"redirect-gateway/middleware/redirect/domain"

	"github.com/stretchr/testify/require"
)

func TestParseRules_YAML(t *testing.T) {
	rules, err := ParseRules([]byte(`
redirects:
  - from: /Old-Page
    to: /new-page
  - from: /page?x=1
    to: https://example.com/x
`))
	require.NoError(t, err)
	require.Equal(t, []domain.Rule{
		{SourcePath: "/Old-Page", DestinationURL: "/new-page"},
		{SourcePath: "/page?x=1", DestinationURL: "https://example.com/x"},
	}, rules)
}

func TestParseRules_JSON(t *testing.T) {
	rules, err := ParseRules([]byte(`{"redirects":[{"from":"/a","to":"/b"}]}`))
	require.NoError(t, err)
	require.Equal(t, []domain.Rule{{SourcePath: "/a", DestinationURL: "/b"}}, rules)
}

func TestParseRules_RejectsEmptyDestination(t *testing.T) {
	_, err := ParseRules([]byte("redirects:\n  - from: /a\n    to: \"\"\n"))
	require.ErrorIs(t, err, domain.ErrEmptyDestination)
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("redirects:\n  - from: /a\n    to: /b\n"), 0o600))

	rules, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSQLiteSource_Load(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "cms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE legacy (id INTEGER PRIMARY KEY, old_url TEXT, new_url TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO legacy (old_url, new_url) VALUES ('/About-Us', '/about'), ('/p?id=7', '/products/7')`)
	require.NoError(t, err)

	rules, err := NewSQLiteSource(db, "legacy").Load(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []domain.Rule{
		{SourcePath: "/About-Us", DestinationURL: "/about"},
		{SourcePath: "/p?id=7", DestinationURL: "/products/7"},
	}, rules)
}

func TestSQLiteSource_RejectsEmptyDestination(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "cms.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE redirects (old_url TEXT, new_url TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO redirects VALUES ('/a', '')`)
	require.NoError(t, err)

	_, err = NewSQLiteSource(db, "").Load(context.Background())
	require.ErrorIs(t, err, domain.ErrEmptyDestination)
}

func TestOpenSQLiteSource_RejectsBadTableName(t *testing.T) {
	_, err := OpenSQLiteSource(filepath.Join(t.TempDir(), "x.db"), "redirects; DROP TABLE x")
	require.Error(t, err)
}

func TestRulesFromHash(t *testing.T) {
	rules, err := rulesFromHash(map[string]string{"/b": "/2", "/a": "/1"})
	require.NoError(t, err)
	require.Equal(t, []domain.Rule{
		{SourcePath: "/a", DestinationURL: "/1"},
		{SourcePath: "/b", DestinationURL: "/2"},
	}, rules)

	_, err = rulesFromHash(map[string]string{"/a": ""})
	require.ErrorIs(t, err, domain.ErrEmptyDestination)
}
