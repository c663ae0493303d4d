// Package watch reports changes to source files so they can be rechecked.
package watch

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long the watcher waits for a burst of writes to settle.
const DefaultDelay = 100 * time.Millisecond

// Op describes what happened to a watched file.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	var names []string
	if op&OpCreate != 0 {
		names = append(names, "CREATE")
	}
	if op&OpWrite != 0 {
		names = append(names, "WRITE")
	}
	if op&OpRemove != 0 {
		names = append(names, "REMOVE")
	}
	if op&OpRename != 0 {
		names = append(names, "RENAME")
	}
	if len(names) == 0 {
		return "NONE"
	}
	s := names[0]
	for _, n := range names[1:] {
		s += "|" + n
	}
	return s
}

// Event is a settled change to one watched file.
type Event struct {
	Path string
	Op   Op
}

// Watcher watches the directories containing a set of files and emits an
// Event per file once its writes have been quiet for the delay. Watching the
// directory keeps files replaced by editors through rename tracked.
type Watcher struct {
	w     *fsnotify.Watcher
	files map[string]struct{}
	delay time.Duration

	evC  chan Event
	erC  chan error
	done chan struct{}
	once sync.Once
}

// New starts watching files. A delay of zero uses DefaultDelay.
func New(files []string, delay time.Duration) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("watch: no files")
	}
	if delay <= 0 {
		delay = DefaultDelay
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	fw := &Watcher{
		w:     w,
		files: make(map[string]struct{}, len(files)),
		delay: delay,
		evC:   make(chan Event, 16),
		erC:   make(chan error, 1),
		done:  make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", f, err)
		}
		fw.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go fw.loop()
	return fw, nil
}

// Files returns the absolute paths being watched, sorted.
func (fw *Watcher) Files() []string {
	out := make([]string, 0, len(fw.files))
	for f := range fw.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (fw *Watcher) loop() {
	defer close(fw.evC)

	pending := make(map[string]Op)
	timer := time.NewTimer(fw.delay)
	timer.Stop()

	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, tracked := fw.files[name]; !tracked {
				continue
			}
			op := translate(ev.Op)
			if op == 0 {
				continue
			}
			pending[name] |= op
			timer.Reset(fw.delay)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		case <-timer.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				select {
				case fw.evC <- Event{Path: name, Op: pending[name]}:
				case <-fw.done:
					return
				}
				delete(pending, name)
			}
		case <-fw.done:
			return
		}
	}
}

func translate(in fsnotify.Op) Op {
	var op Op
	if in&fsnotify.Create != 0 {
		op |= OpCreate
	}
	if in&fsnotify.Write != 0 {
		op |= OpWrite
	}
	if in&fsnotify.Remove != 0 {
		op |= OpRemove
	}
	if in&fsnotify.Rename != 0 {
		op |= OpRename
	}
	return op
}

// Events is closed after Close.
func (fw *Watcher) Events() <-chan Event { return fw.evC }
func (fw *Watcher) Errors() <-chan error { return fw.erC }

// Close stops the watcher. It is safe to call more than once.
func (fw *Watcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.w.Close()
	})
	return err
}
