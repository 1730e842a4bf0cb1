package utils

import (
	"os"
	"time"
)

func TimestampS() int64 {
	return time.Now().Unix()
}

func TimestampMS() int64 {
	return time.Now().UnixNano() / 1e6
}

func Bool(v bool) *bool {
	return &v
}

// FileExists check file exist
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// EnsureDir create dir and parents if missing
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
