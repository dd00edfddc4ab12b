package sqlstore

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DRIVER_POSTGRES = "postgres"
	DRIVER_SQLITE   = "sqlite"

	TABLE_KV = "folio_kv"
)

func errorSqlBuild(err error) error {
	return fmt.Errorf("failed to build sql: %w", err)
}

// CommonFields 各个表共用的基础信息
type CommonFields struct {
	db         *sqlx.DB
	driver     string
	table      string
	allColumns []string
}

func (c *CommonFields) SetTable(table string) {
	c.table = table
}

func (c *CommonFields) GetTable() string {
	return c.table
}

func (c *CommonFields) SetAllColumns(cols ...string) {
	c.allColumns = cols
}

func (c *CommonFields) GetAllColumns() []string {
	return c.allColumns
}

func (c *CommonFields) DB() *sqlx.DB {
	return c.db
}

// Builder 根据驱动选择占位符，postgres 使用 $n
func (c *CommonFields) Builder() sq.StatementBuilderType {
	if c.driver == DRIVER_POSTGRES {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DRIVER_POSTGRES, DRIVER_SQLITE:
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("%s storage requires a dsn", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DRIVER_SQLITE {
		// sqlite 同一时间只允许一个写者
		db.SetMaxOpenConns(1)
	}
	return db, nil
}
