package datastore

type DatastoreType string

const (
	SQLite DatastoreType = "sqlite"
)

type Config struct {
	Type                 DatastoreType // the datastore type
	DBName               string        // the database name
	TableName            string
	ColumnConfig         map[string]string // map of column name to column type
	PrimaryKeyColumnName string
}

type Datastore interface {
	// Put inserts or replaces the column values in the datastore.
	Put(key string, values map[string]interface{}) error

	// Update the partial column values of an existing key.
	// Update a non-existent key will not return an error.
	Update(key string, values map[string]interface{}) error

	// Get retrieves the column values from the datastore.
	// If the key does not exist, the returned map and error are both nil.
	Get(key string, columns []string) (map[string]interface{}, error)

	// Delete removes a value from the datastore.
	// Note: delete a non-existent key will not return an error.
	Delete(key string) error

	// ListAll read all rows, map[primaryKey]map[columnName]columnValue.
	// Note: it reads all data into memory, so do not call it on a large datastore.
	ListAll(columns []string) (map[string]map[string]interface{}, error)

	// Close close the datastore.
	Close() error
}
