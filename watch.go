// FILE: lixenwraith/gameini/watch.go
package gameini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultMaxWatchers = 100 // Prevent resource exhaustion

// ErrWatcherRunning is returned by Start on a watcher that is already polling
var ErrWatcherRunning = errors.New("watcher already running")

// WatchOptions configures file watching behavior
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms)
	PollInterval time.Duration

	// Debounce duration to avoid rapid reloads
	Debounce time.Duration

	// MaxWatchers limits concurrent subscriber channels
	MaxWatchers int

	// ReloadTimeout for file reload operations
	ReloadTimeout time.Duration

	// VerifyPermissions reports a group/world permission change once and skips
	// reloading on that poll
	VerifyPermissions bool

	// Load is used for every reload
	Load LoadOptions
}

// DefaultWatchOptions returns sensible defaults for file watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval:      DefaultPollInterval,
		Debounce:          DefaultDebounce,
		MaxWatchers:       DefaultMaxWatchers,
		ReloadTimeout:     DefaultReloadTimeout,
		VerifyPermissions: true,
		Load:              DefaultLoadOptions(),
	}
}

// EventKind classifies watcher notifications
type EventKind int

const (
	// EventReloaded: the file was parsed again; Sections names what changed
	EventReloaded EventKind = iota
	EventDeleted
	EventPermissionsChanged
	EventReloadError
	EventReloadTimeout
)

func (k EventKind) String() string {
	switch k {
	case EventReloaded:
		return "reloaded"
	case EventDeleted:
		return "file_deleted"
	case EventPermissionsChanged:
		return "permissions_changed"
	case EventReloadError:
		return "reload_error"
	case EventReloadTimeout:
		return "reload_timeout"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one watcher notification
type Event struct {
	Kind EventKind
	Path string
	// Sections lists added, removed or modified section names on reload
	Sections []string
	Err      error
}

// Watcher polls an INI file and re-parses it on change. The latest good parse
// is available from Current; a failed reload keeps the previous file.
type Watcher struct {
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	opts             WatchOptions
	filePath         string
	current          atomic.Pointer[File]
	lastModTime      time.Time
	lastSize         int64
	lastMode         os.FileMode
	watching         atomic.Bool
	reloadInProgress atomic.Bool
	subscribers      map[int64]chan Event
	subscriberID     atomic.Int64
	debounceTimer    *time.Timer
}

// NewWatcher parses the file at path and prepares a watcher for it. Polling
// begins with Start.
func NewWatcher(path string, opts WatchOptions) (*Watcher, error) {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.MaxWatchers <= 0 {
		opts.MaxWatchers = DefaultMaxWatchers
	}
	if opts.ReloadTimeout <= 0 {
		opts.ReloadTimeout = DefaultReloadTimeout
	}

	f, err := ParseFileWithOptions(path, opts.Load)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		opts:        opts,
		filePath:    path,
		subscribers: make(map[int64]chan Event),
	}
	w.current.Store(f)
	w.ctx, w.cancel = context.WithCancel(context.Background())

	if info, err := os.Stat(path); err == nil {
		w.lastModTime = info.ModTime()
		w.lastSize = info.Size()
		w.lastMode = info.Mode()
	}
	return w, nil
}

// Current returns the latest successfully parsed file.
func (w *Watcher) Current() *File {
	return w.current.Load()
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.filePath
}

// Start begins polling in the background until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if !w.watching.CompareAndSwap(false, true) {
		return ErrWatcherRunning
	}
	go w.watchLoop(ctx)
	return nil
}

// IsWatching returns true while the poll loop runs
func (w *Watcher) IsWatching() bool {
	return w.watching.Load()
}

// SubscriberCount returns the number of active subscriber channels
func (w *Watcher) SubscriberCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subscribers)
}

// watchLoop is the main file watching loop
func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.watching.Store(false)

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.checkAndReload()
		}
	}
}

// checkAndReload checks if file changed and schedules a debounced reload
func (w *Watcher) checkAndReload() {
	info, err := os.Stat(w.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			w.notify(Event{Kind: EventDeleted, Path: w.filePath})
		}
		return
	}

	changed := !info.ModTime().Equal(w.lastModTime) || info.Size() != w.lastSize

	if w.opts.VerifyPermissions && w.lastMode != 0 && info.Mode() != w.lastMode {
		if (info.Mode() & 0077) != (w.lastMode & 0077) {
			// Group/world permissions changed, do not reload. The new mode is
			// recorded so the event fires once and later edits reload again.
			w.lastMode = info.Mode()
			w.notify(Event{Kind: EventPermissionsChanged, Path: w.filePath})
			return
		}
	}

	if !changed {
		return
	}
	w.lastModTime = info.ModTime()
	w.lastSize = info.Size()
	w.lastMode = info.Mode()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, w.performReload)
	w.mu.Unlock()
}

// performReload parses the file again and publishes it if it succeeds
func (w *Watcher) performReload() {
	if !w.reloadInProgress.CompareAndSwap(false, true) {
		return
	}
	defer w.reloadInProgress.Store(false)

	ctx, cancel := context.WithTimeout(w.ctx, w.opts.ReloadTimeout)
	defer cancel()

	type result struct {
		f   *File
		err error
	}
	done := make(chan result, 1)
	go func() {
		f, err := ParseFileWithOptions(w.filePath, w.opts.Load)
		done <- result{f, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			w.notify(Event{Kind: EventReloadError, Path: w.filePath, Err: r.err})
			return
		}
		old := w.current.Swap(r.f)
		w.notify(Event{Kind: EventReloaded, Path: w.filePath, Sections: changedSections(old, r.f)})

	case <-ctx.Done():
		if w.ctx.Err() == nil {
			w.notify(Event{Kind: EventReloadTimeout, Path: w.filePath, Err: ctx.Err()})
		}
	}
}

// changedSections names sections whose rendered text differs between files,
// in new-file order followed by removed sections.
func changedSections(old, cur *File) []string {
	before := make(map[string]string)
	if old != nil {
		for _, s := range *old.sections.Load() {
			before[s.name] = s.String()
		}
	}

	var names []string
	for _, s := range *cur.sections.Load() {
		prev, ok := before[s.name]
		if !ok || prev != s.String() {
			names = append(names, s.name)
		}
		delete(before, s.name)
	}
	if old != nil {
		for _, s := range *old.sections.Load() {
			if _, ok := before[s.name]; ok {
				names = append(names, s.name)
			}
		}
	}
	return names
}

// Subscribe returns a channel of watcher events, closed on Stop. Past the
// subscriber limit the returned channel is already closed.
func (w *Watcher) Subscribe() <-chan Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.subscribers) >= w.opts.MaxWatchers || w.ctx.Err() != nil {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, subscriberBuffer)
	id := w.subscriberID.Add(1)
	w.subscribers[id] = ch

	go func() {
		<-w.ctx.Done()
		w.mu.Lock()
		delete(w.subscribers, id)
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

// notify sends an event to all subscribers without blocking
func (w *Watcher) notify(ev Event) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.subscribers {
		select {
		case ch <- ev:
		default:
			// Subscriber full, drop
		}
	}
}

// Stop terminates polling and closes all subscriber channels.
func (w *Watcher) Stop() {
	w.cancel()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()

	deadline := time.Now().Add(ShutdownTimeout)
	for w.watching.Load() && time.Now().Before(deadline) {
		time.Sleep(SpinWaitInterval)
	}
}
