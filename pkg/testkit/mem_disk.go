package testkit

import (
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
)

// MemDisk is an in-memory storage disk for tests. Register it as the
// default disk and uploads land in a map instead of the filesystem:
//
//	storage.RegisterDisk("test", testkit.NewMemDisk())
type MemDisk struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemDisk() *MemDisk {
	return &MemDisk{files: make(map[string][]byte)}
}

func (d *MemDisk) Put(p string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[clean(p)] = append([]byte(nil), content...)
	return nil
}

func (d *MemDisk) PutStream(p string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(p, data)
}

func (d *MemDisk) Get(p string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	data, ok := d.files[clean(p)]
	if !ok {
		return nil, fmt.Errorf("memdisk: %s not found", p)
	}
	return data, nil
}

func (d *MemDisk) Exists(p string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.files[clean(p)]
	return ok
}

func (d *MemDisk) Delete(p string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, clean(p))
	return nil
}

func (d *MemDisk) URL(p string) string {
	return "/storage/" + clean(p)
}

func (d *MemDisk) Files(directory string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	prefix := clean(directory) + "/"
	var names []string
	for p := range d.files {
		if strings.HasPrefix(p, prefix) && !strings.Contains(p[len(prefix):], "/") {
			names = append(names, path.Base(p))
		}
	}
	return names, nil
}

func clean(p string) string {
	return strings.TrimLeft(path.Clean("/"+p), "/")
}
