package storage

import (
	"fmt"
	"io"
	"sync"

	"waroengpos/config"
	"waroengpos/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Called once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()

	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation, mainly for tests.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	defaultDisk = name
	managerMu.Unlock()
}

func defaultD() Disk { return Use(defaultDisk) }

// The helpers below proxy to the default disk (STORAGE_DISK, default "local").

func Put(path string, content []byte) error    { return defaultD().Put(path, content) }
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }
func Get(path string) ([]byte, error)          { return defaultD().Get(path) }
func Exists(path string) bool                  { return defaultD().Exists(path) }
func Delete(path string) error                 { return defaultD().Delete(path) }
func URL(path string) string                   { return defaultD().URL(path) }
func Files(directory string) ([]string, error) { return defaultD().Files(directory) }
