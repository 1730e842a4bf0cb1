package datastore

import (
	"fmt"
)

type DatastoreFactory struct{}

func (f *DatastoreFactory) New(config *Config) (Datastore, error) {
	switch config.Type {
	case SQLite:
		return NewSQLiteDatastore(config)
	default:
		return nil, fmt.Errorf("not support db type=%s", config.Type)
	}
}

func (f *DatastoreFactory) NewTable(dbType DatastoreType, dbName, tableName string) (Datastore, error) {
	switch dbType {
	case SQLite:
		return f.New(NewSQLiteConfig(dbName, tableName))
	default:
		return nil, fmt.Errorf("not support db type=%s", dbType)
	}
}

func NewSQLiteConfig(dbName, tableName string) *Config {
	config := &Config{
		Type:      SQLite,
		DBName:    dbName,
		TableName: tableName,
	}
	switch tableName {
	case KResultTableName:
		config.ColumnConfig = map[string]string{
			KResultKey:        "TEXT PRIMARY KEY NOT NULL",
			KResultRunId:      "TEXT",
			KResultTest:       "TEXT",
			KResultCheckpoint: "TEXT",
			KResultStatus:     "TEXT",
			KResultPath:       "TEXT",
			KResultMessage:    "TEXT",
			KResultModifyTime: "INT",
		}
		config.PrimaryKeyColumnName = KResultKey
	}
	return config
}
