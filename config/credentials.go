package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/uhppoted/sheets-plugin/tools"
)

// Credentials holds the service account key loaded from a credentials file. The key
// is reloaded when the file is rewritten or replaced; a file that fails to load
// leaves the previous key in place.
type Credentials struct {
	file string
	key  []byte
	sync.RWMutex
}

func NewCredentials(file string) (*Credentials, error) {
	c := Credentials{
		file: file,
	}

	if err := c.Reload(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Credentials) File() string {
	return c.file
}

// Get returns the current service account key.
func (c *Credentials) Get() []byte {
	c.RLock()
	defer c.RUnlock()

	return c.key
}

func (c *Credentials) Reload() error {
	key, err := tools.ReadCredentials(c.file)
	if err != nil {
		return err
	}

	c.Lock()
	c.key = key
	c.Unlock()

	return nil
}

// Watch reloads the credentials whenever the file changes, until the context is
// cancelled.
func (c *Credentials) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	defer watcher.Close()

	if err := watcher.Add(c.file); err != nil {
		return fmt.Errorf("unable to watch credentials file '%s' (%w)", c.file, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// ... replaced files drop the watch so re-add it once the new file exists
			if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				if !rewatch(watcher, event.Name) {
					continue
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				if err := c.Reload(); err != nil {
					warnf("Error reloading credentials from %v (%v)", c.file, err)
				} else {
					infof("Reloaded credentials from %v", c.file)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			warnf("Credentials watch error (%v)", err)
		}
	}
}

func rewatch(watcher *fsnotify.Watcher, file string) bool {
	for i := 0; i < 10; i++ {
		if err := watcher.Add(file); err == nil {
			return true
		} else if !os.IsNotExist(err) {
			warnf("Error re-adding watch for %v (%v)", file, err)
			return false
		}

		time.Sleep(100 * time.Millisecond)
	}

	warnf("Credentials file %v removed", file)

	return false
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
