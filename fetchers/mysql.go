package fetchers

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"

	"github.com/malusev998/currency-swap"
)

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type MySQLFetcher struct {
	DB        *sql.DB
	TableName string
}

func MySQLDSN(user, password, addr, db string) string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = user
	mysqlDriverConfig.Passwd = password
	mysqlDriverConfig.Addr = addr
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = db
	mysqlDriverConfig.ParseTime = true

	return mysqlDriverConfig.FormatDSN()
}

func NewMySQLFetcher(db *sql.DB, tableName string) (MySQLFetcher, error) {
	if db == nil {
		return MySQLFetcher{}, ErrNoDatabase
	}

	if tableName == "" {
		tableName = DefaultMySQLTable
	}

	if !tableNameRegex.MatchString(tableName) {
		return MySQLFetcher{}, fmt.Errorf("%w: %q", ErrInvalidTableName, tableName)
	}

	return MySQLFetcher{DB: db, TableName: tableName}, nil
}

// Fetch returns rows in insertion order so that duplicate codes keep their feed order.
func (m MySQLFetcher) Fetch(ctx context.Context) ([]currency.Price, error) {
	rows, err := m.DB.QueryContext(ctx, fmt.Sprintf("SELECT currency, price, date FROM %s ORDER BY id;", m.TableName))

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	prices := make([]currency.Price, 0)

	for rows.Next() {
		var p currency.Price

		if err := rows.Scan(&p.Currency, &p.Price, &p.Date); err != nil {
			return nil, err
		}

		prices = append(prices, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prices, nil
}
