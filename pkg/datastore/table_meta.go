package datastore

// checkpoint test result table
const (
	KResultTableName  = "ckpt_test_result"
	KResultKey        = "RESULT_KEY"
	KResultRunId      = "RESULT_RUN_ID"
	KResultTest       = "RESULT_TEST"
	KResultCheckpoint = "RESULT_CHECKPOINT"
	KResultStatus     = "RESULT_STATUS"
	KResultPath       = "RESULT_PATH"
	KResultMessage    = "RESULT_MESSAGE"
	KResultModifyTime = "RESULT_MODIFY_TIME"
)

var resultColumns = []string{KResultRunId, KResultTest, KResultCheckpoint, KResultStatus,
	KResultPath, KResultMessage, KResultModifyTime}
