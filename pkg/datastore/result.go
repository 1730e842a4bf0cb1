package datastore

import (
	"fmt"
	"sort"

	"github.com/devsapp/sd-checkpoint-test/pkg/utils"
)

// Result outcome of one (test, checkpoint) pair
type Result struct {
	RunId      string
	Test       string
	Checkpoint string
	Status     string
	Path       string
	Message    string
	ModifyTime int64
}

func ResultKey(test, checkpoint string) string {
	return fmt.Sprintf("%s/%s", test, checkpoint)
}

// ResultStore read/write checkpoint test results to the underlying datastore.
// The last outcome per pair wins.
type ResultStore struct {
	ds Datastore
}

func NewResultStore(dbName string) (*ResultStore, error) {
	f := DatastoreFactory{}
	ds, err := f.NewTable(SQLite, dbName, KResultTableName)
	if err != nil {
		return nil, err
	}
	return &ResultStore{ds: ds}, nil
}

func (r *ResultStore) Close() error {
	return r.ds.Close()
}

func (r *ResultStore) Record(res *Result) error {
	if res.Test == "" || res.Checkpoint == "" {
		return fmt.Errorf("test and checkpoint cannot be empty")
	}
	if res.ModifyTime == 0 {
		res.ModifyTime = utils.TimestampS()
	}
	return r.ds.Put(ResultKey(res.Test, res.Checkpoint), map[string]interface{}{
		KResultRunId:      res.RunId,
		KResultTest:       res.Test,
		KResultCheckpoint: res.Checkpoint,
		KResultStatus:     res.Status,
		KResultPath:       res.Path,
		KResultMessage:    res.Message,
		KResultModifyTime: res.ModifyTime,
	})
}

// Get return nil, nil when the pair was never recorded
func (r *ResultStore) Get(test, checkpoint string) (*Result, error) {
	data, err := r.ds.Get(ResultKey(test, checkpoint), resultColumns)
	if err != nil || data == nil {
		return nil, err
	}
	return toResult(data), nil
}

// ListRun results recorded by run runId, ordered by key
func (r *ResultStore) ListRun(runId string) ([]*Result, error) {
	datas, err := r.ds.ListAll(resultColumns)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(datas))
	for key, data := range datas {
		if data[KResultRunId].(string) == runId {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	results := make([]*Result, 0, len(keys))
	for _, key := range keys {
		results = append(results, toResult(datas[key]))
	}
	return results, nil
}

func toResult(data map[string]interface{}) *Result {
	return &Result{
		RunId:      data[KResultRunId].(string),
		Test:       data[KResultTest].(string),
		Checkpoint: data[KResultCheckpoint].(string),
		Status:     data[KResultStatus].(string),
		Path:       data[KResultPath].(string),
		Message:    data[KResultMessage].(string),
		ModifyTime: data[KResultModifyTime].(int64),
	}
}
