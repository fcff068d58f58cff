package xpdf

import (
	"os"
	"sync"
)

// Cleanup collects paths to delete when the program exits. Removal is best
// effort: errors are ignored.
type Cleanup struct {
	mu    sync.Mutex
	paths []string
}

// Register schedules path (a file or a directory tree) for removal.
func (c *Cleanup) Register(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, path)
}

// Unregister forgets path without removing it.
func (c *Cleanup) Unregister(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.paths {
		if p == path {
			c.paths = append(c.paths[:i], c.paths[i+1:]...)
			return
		}
	}
}

// Pending returns the registered paths in registration order.
func (c *Cleanup) Pending() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

// Run removes every registered path, newest first, and forgets them.
func (c *Cleanup) Run() {
	c.mu.Lock()
	paths := c.paths
	c.paths = nil
	c.mu.Unlock()

	for i := len(paths) - 1; i >= 0; i-- {
		_ = os.RemoveAll(paths[i])
	}
}

var exitCleanup Cleanup

// DeleteOnExit registers path with the process-wide cleanup run by
// RunExitCleanup.
func DeleteOnExit(path string) {
	exitCleanup.Register(path)
}

// RemoveNow deletes a path registered with DeleteOnExit ahead of exit.
func RemoveNow(path string) error {
	exitCleanup.Unregister(path)
	return os.RemoveAll(path)
}

// RunExitCleanup removes everything registered with DeleteOnExit. Binaries
// call it on shutdown.
func RunExitCleanup() {
	exitCleanup.Run()
}
