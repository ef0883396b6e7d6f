package where

import (
	"strings"

	"github.com/coderi421/sift/internal/errs"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

var (
	Standard                Dialect = &standardSQL{}
	MySQL                   Dialect = &mysqlDialect{}
	MySQLNoBackslashEscapes Dialect = &mysqlDialect{noBackslashEscapes: true}
	PostgreSQL              Dialect = &postgresDialect{}
	SQLite3                 Dialect = &sqlite3Dialect{}
)

// Sanitizer 把值转义成 SQL 字面量，再按顺序替换掉模板中的占位符
type Sanitizer interface {
	// Sanitize 替换 ? 占位符
	Sanitize(template string, args []any) (string, error)
	// SanitizeNamed 替换 :name 占位符
	SanitizeNamed(template string, params map[string]any) (string, error)
}

// Dialect 决定字面量的写法
type Dialect interface {
	Sanitizer
	Name() string

	quoteString(s string) string
	boolLiteral(b bool) string
}

// DialectFor picks a Dialect for a database/sql driver name. For mysql the
// DSN is parsed to detect sql_mode=NO_BACKSLASH_ESCAPES.
func DialectFor(driverName, dsn string) (Dialect, error) {
	switch driverName {
	case "mysql":
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, err
		}
		if strings.Contains(strings.ToUpper(cfg.Params["sql_mode"]), "NO_BACKSLASH_ESCAPES") {
			return MySQLNoBackslashEscapes, nil
		}
		return MySQL, nil
	case "postgres", "pgx":
		return PostgreSQL, nil
	case "sqlite3", "sqlite":
		return SQLite3, nil
	default:
		return nil, errs.NewErrUnsupportedDriver(driverName)
	}
}

// standardSQL 单引号翻倍，布尔值使用 TRUE / FALSE
type standardSQL struct {
}

func (s *standardSQL) Name() string {
	return "standard"
}

func (s *standardSQL) Sanitize(template string, args []any) (string, error) {
	return sanitize(s, template, args)
}

func (s *standardSQL) SanitizeNamed(template string, params map[string]any) (string, error) {
	return sanitizeNamed(s, template, params)
}

func (s *standardSQL) quoteString(str string) string {
	return "'" + strings.ReplaceAll(str, "'", "''") + "'"
}

func (s *standardSQL) boolLiteral(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

type mysqlDialect struct {
	standardSQL
	noBackslashEscapes bool
}

func (m *mysqlDialect) Name() string {
	return "mysql"
}

func (m *mysqlDialect) Sanitize(template string, args []any) (string, error) {
	return sanitize(m, template, args)
}

func (m *mysqlDialect) SanitizeNamed(template string, params map[string]any) (string, error) {
	return sanitizeNamed(m, template, params)
}

var mysqlEscaper = strings.NewReplacer(
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
	"'", `\'`,
	`"`, `\"`,
	`\`, `\\`,
)

func (m *mysqlDialect) quoteString(str string) string {
	if m.noBackslashEscapes {
		return m.standardSQL.quoteString(str)
	}
	return "'" + mysqlEscaper.Replace(str) + "'"
}

type postgresDialect struct {
	standardSQL
}

func (p *postgresDialect) Name() string {
	return "postgres"
}

func (p *postgresDialect) Sanitize(template string, args []any) (string, error) {
	return sanitize(p, template, args)
}

func (p *postgresDialect) SanitizeNamed(template string, params map[string]any) (string, error) {
	return sanitizeNamed(p, template, params)
}

// quoteString 含有反斜杠的时候 pq 会返回 " E'...'"，去掉前面的空格
func (p *postgresDialect) quoteString(str string) string {
	return strings.TrimLeft(pq.QuoteLiteral(str), " ")
}

type sqlite3Dialect struct {
	standardSQL
}

func (s *sqlite3Dialect) Name() string {
	return "sqlite3"
}

func (s *sqlite3Dialect) Sanitize(template string, args []any) (string, error) {
	return sanitize(s, template, args)
}

func (s *sqlite3Dialect) SanitizeNamed(template string, params map[string]any) (string, error) {
	return sanitizeNamed(s, template, params)
}

func (s *sqlite3Dialect) boolLiteral(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
