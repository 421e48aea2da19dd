package infra

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"redirect-gateway/middleware/redirect/domain"

	_ "github.com/mattn/go-sqlite3"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource lê a tabela de redirects mantida por outro sistema
// (colunas old_url, new_url).
type SQLiteSource struct {
	db    *sql.DB
	table string
}

// OpenSQLiteSource abre o banco em modo somente leitura.
func OpenSQLiteSource(path, table string) (*SQLiteSource, error) {
	if table == "" {
		table = "redirects"
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &SQLiteSource{db: db, table: table}, nil
}

// NewSQLiteSource usa uma conexão já aberta (útil em testes).
func NewSQLiteSource(db *sql.DB, table string) *SQLiteSource {
	if table == "" {
		table = "redirects"
	}
	return &SQLiteSource{db: db, table: table}
}

func (s *SQLiteSource) Load(ctx context.Context) ([]domain.Rule, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT old_url, new_url FROM "+s.table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var rules []domain.Rule
	for rows.Next() {
		var r domain.Rule
		if err := rows.Scan(&r.SourcePath, &r.DestinationURL); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("row %q: %w", r.SourcePath, err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return rules, nil
}

func (s *SQLiteSource) Close() error { return s.db.Close() }
