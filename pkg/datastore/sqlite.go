package datastore

import (
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteDatastore struct {
	db     *sql.DB
	config *Config
}

func NewSQLiteDatastore(config *Config) (*SQLiteDatastore, error) {
	db, err := sql.Open("sqlite3", config.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// :memory: is per connection
	db.SetMaxOpenConns(1)

	// Create table if it doesn't exist.
	names := make([]string, 0, len(config.ColumnConfig))
	for name := range config.ColumnConfig {
		names = append(names, name)
	}
	sort.Strings(names)
	columnDefs := make([]string, 0, len(names))
	for _, name := range names {
		columnDefs = append(columnDefs, fmt.Sprintf("%s %s", name, config.ColumnConfig[name]))
	}
	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)",
		config.TableName,
		strings.Join(columnDefs, ", "),
	)
	if _, err = db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", config.TableName, err)
	}
	return &SQLiteDatastore{
		db:     db,
		config: config,
	}, nil
}

func (ds *SQLiteDatastore) Close() error {
	return ds.db.Close()
}

// scanTarget pointer matching the declared column type
func (ds *SQLiteDatastore) scanTarget(column string) (interface{}, error) {
	typ := strings.ToLower(ds.config.ColumnConfig[column])
	switch {
	case strings.HasPrefix(typ, "text"):
		return new(sql.NullString), nil
	case strings.HasPrefix(typ, "int"):
		// For simplicity, we use int64 for all integers.
		return new(sql.NullInt64), nil
	case strings.HasPrefix(typ, "float"):
		return new(sql.NullFloat64), nil
	default:
		return nil, fmt.Errorf("unsupported column type: %s", ds.config.ColumnConfig[column])
	}
}

func nullValue(v interface{}) interface{} {
	switch n := v.(type) {
	case *sql.NullString:
		return n.String
	case *sql.NullInt64:
		return n.Int64
	case *sql.NullFloat64:
		return n.Float64
	}
	return reflect.ValueOf(v).Elem().Interface()
}

func (ds *SQLiteDatastore) Get(key string, columns []string) (map[string]interface{}, error) {
	values := make([]interface{}, len(columns))
	for i, column := range columns {
		value, err := ds.scanTarget(column)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	row := ds.db.QueryRow(
		fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
			strings.Join(columns, ", "), ds.config.TableName, ds.config.PrimaryKeyColumnName),
		key,
	)
	if err := row.Scan(values...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	result := make(map[string]interface{}, len(columns))
	for i, column := range columns {
		result[column] = nullValue(values[i])
	}
	return result, nil
}

func (ds *SQLiteDatastore) Put(key string, values map[string]interface{}) error {
	columns := []string{ds.config.PrimaryKeyColumnName}
	placeholders := []string{"?"}
	args := []interface{}{key}
	for column, value := range values {
		if column == ds.config.PrimaryKeyColumnName {
			continue
		}
		columns = append(columns, column)
		placeholders = append(placeholders, "?")
		args = append(args, value)
	}
	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		ds.config.TableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	_, err := ds.db.Exec(query, args...)
	return err
}

func (ds *SQLiteDatastore) Update(key string, values map[string]interface{}) error {
	if len(values) == 0 {
		return nil
	}
	sets := make([]string, 0, len(values))
	args := make([]interface{}, 0, len(values)+1)
	for column, value := range values {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	args = append(args, key)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		ds.config.TableName, strings.Join(sets, ", "), ds.config.PrimaryKeyColumnName)
	_, err := ds.db.Exec(query, args...)
	return err
}

func (ds *SQLiteDatastore) Delete(key string) error {
	_, err := ds.db.Exec(
		fmt.Sprintf(
			"DELETE FROM %s WHERE %s = ?", ds.config.TableName, ds.config.PrimaryKeyColumnName),
		key)
	return err
}

func (ds *SQLiteDatastore) ListAll(columns []string) (map[string]map[string]interface{}, error) {
	// primary key always first
	selected := append([]string{ds.config.PrimaryKeyColumnName}, columns...)
	rows, err := ds.db.Query(fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(selected, ", "), ds.config.TableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make(map[string]map[string]interface{})
	for rows.Next() {
		values := make([]interface{}, len(selected))
		values[0] = new(string)
		for i, column := range columns {
			value, err := ds.scanTarget(column)
			if err != nil {
				return nil, err
			}
			values[i+1] = value
		}
		if err := rows.Scan(values...); err != nil {
			return nil, err
		}
		m := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			m[column] = nullValue(values[i+1])
		}
		results[*values[0].(*string)] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
