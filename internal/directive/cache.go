package directive

import "sync"

// fileCache remembers what a filter computed for a single file. Asking for a
// different file discards the previous value before rebuilding.
type fileCache[T any] struct {
	mu     sync.Mutex
	file   string
	loaded bool
	value  T
}

func (c *fileCache[T]) get(file string, build func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.loaded && c.file == file {
		return c.value, nil
	}
	c.file, c.loaded, c.value = "", false, zero

	value, err := build()
	if err != nil {
		return zero, err
	}
	c.file, c.loaded, c.value = file, true, value
	return value, nil
}
