package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/chatwire/logging"
)

// ReloadHandler is called after a successful live reload with the merged
// values before and after the change.
type ReloadHandler func(old, cur map[string]any)

// Config holds the merged settings: built-in defaults, then the TOML file,
// then CHATWIRE_ environment overrides, last layer wins. It is safe for
// concurrent use.
type Config struct {
	mu       sync.RWMutex
	values   map[string]any
	handlers []ReloadHandler

	file      string
	envPrefix string
	debounce  time.Duration
	log       *logging.Logger

	watcher   *fsnotify.Watcher
	watchDone chan struct{}
	watchWG   sync.WaitGroup
}

// Option configures a Config.
type Option func(*Config)

// WithFile sets the TOML config file path. Without it only defaults and the
// environment apply.
func WithFile(path string) Option {
	return func(c *Config) {
		c.file = path
	}
}

// WithEnvPrefix overrides DefaultEnvPrefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		if prefix != "" {
			c.envPrefix = prefix
		}
	}
}

// WithDebounce sets how long the watcher waits for writes to settle before
// reloading.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logging.Logger) Option {
	return func(c *Config) {
		if log != nil {
			c.log = log.WithComponent("config")
		}
	}
}

// New creates a Config. Call Load before reading settings.
func New(opts ...Option) *Config {
	c := &Config{
		envPrefix: DefaultEnvPrefix,
		debounce:  100 * time.Millisecond,
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load builds the merged configuration from all layers. It can be called
// again to pick up file changes; Watch does that automatically.
func (c *Config) Load() error {
	merged := Clone(defaults())

	if c.file != "" {
		fromFile, err := loadFile(c.file)
		if err != nil {
			return err
		}
		if fromFile != nil {
			merged = DeepMerge(merged, fromFile)
		}
	}

	fromEnv := loadEnv(c.envPrefix)
	if len(fromEnv) > 0 {
		merged = DeepMerge(merged, fromEnv)
	}

	c.mu.Lock()
	c.values = merged
	c.mu.Unlock()
	return nil
}

// File returns the config file path, if any.
func (c *Config) File() string {
	return c.file
}

// Snapshot returns a deep copy of the merged values.
func (c *Config) Snapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Clone(c.values)
}

// Get returns the value at the given dot-separated key.
func (c *Config) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.values, key)
}

// GetString returns a string setting.
func (c *Config) GetString(key string) (string, error) {
	v, ok := c.Get(key)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Key: key, Expected: "string", Got: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer setting.
func (c *Config) GetInt(key string) (int, error) {
	v, ok := c.Get(key)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Key: key, Expected: "int", Got: typeName(v)}
	}
}

// GetBool returns a boolean setting.
func (c *Config) GetBool(key string) (bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Key: key, Expected: "bool", Got: typeName(v)}
	}
	return b, nil
}

// GetFloat returns a float setting.
func (c *Config) GetFloat(key string) (float64, error) {
	v, ok := c.Get(key)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Key: key, Expected: "float64", Got: typeName(v)}
	}
}

// GetDuration returns a duration setting. TOML files carry durations as
// strings ("45s"); environment values may already be parsed.
func (c *Config) GetDuration(key string) (time.Duration, error) {
	v, ok := c.Get(key)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &TypeError{Key: key, Expected: "duration", Got: "string"}
		}
		return d, nil
	default:
		return 0, &TypeError{Key: key, Expected: "duration", Got: typeName(v)}
	}
}

// GetStringSlice returns a string list setting. A plain string counts as a
// comma-separated list, which is how lists arrive from the environment.
func (c *Config) GetStringSlice(key string) ([]string, error) {
	v, ok := c.Get(key)
	if !ok {
		return nil, ErrSettingNotFound
	}
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Key: key, Expected: "[]string", Got: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	case string:
		if val == "" {
			return nil, nil
		}
		parts := strings.Split(val, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				result = append(result, p)
			}
		}
		return result, nil
	default:
		return nil, &TypeError{Key: key, Expected: "[]string", Got: typeName(v)}
	}
}

// OnReload registers a handler for live reloads.
func (c *Config) OnReload(h ReloadHandler) {
	if h == nil {
		return
	}
	c.mu.Lock()
	c.handlers = append(c.handlers, h)
	c.mu.Unlock()
}

// Watch starts watching the config file and reloads on change. The watch
// covers the directory because editors replace files by rename, which would
// orphan a watch held on the file itself.
func (c *Config) Watch() error {
	if c.file == "" {
		return ErrNoFile
	}

	c.mu.Lock()
	if c.watcher != nil {
		c.mu.Unlock()
		return ErrWatcherRunning
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if err := w.Add(filepath.Dir(c.file)); err != nil {
		w.Close()
		c.mu.Unlock()
		return err
	}

	c.watcher = w
	c.watchDone = make(chan struct{})
	c.mu.Unlock()

	c.watchWG.Add(1)
	go c.watchLoop(w)

	c.log.Debug("watching %s", c.file)
	return nil
}

// Close stops the watcher, if running.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	done := c.watchDone
	c.watcher = nil
	c.watchDone = nil
	c.mu.Unlock()

	if w == nil {
		return
	}
	close(done)
	w.Close()
	c.watchWG.Wait()
}

// watchLoop debounces change events for the config file and reloads once
// writes settle.
func (c *Config) watchLoop(w *fsnotify.Watcher) {
	defer c.watchWG.Done()

	c.mu.RLock()
	done := c.watchDone
	c.mu.RUnlock()

	target := filepath.Clean(c.file)
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case <-done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
				!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(c.debounce)
				timerC = timer.C
			} else {
				timer.Reset(c.debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			c.log.Warn("config watch: %v", err)
		case <-timerC:
			timer = nil
			timerC = nil
			c.reload()
		}
	}
}

// reload rebuilds the merge and notifies handlers. A failed reload keeps the
// previous values.
func (c *Config) reload() {
	old := c.Snapshot()
	if err := c.Load(); err != nil {
		c.log.Warn("config reload failed, keeping previous values: %v", err)
		return
	}
	cur := c.Snapshot()

	c.mu.RLock()
	handlers := make([]ReloadHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.RUnlock()

	c.log.Info("config reloaded from %s", c.file)
	for _, h := range handlers {
		notify(h, old, cur)
	}
}

// notify calls a handler with panic recovery so one bad handler can't kill
// the watch goroutine.
func notify(h ReloadHandler, old, cur map[string]any) {
	defer func() {
		_ = recover()
	}()
	h(old, cur)
}

// typeName returns the type name used in error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []string, []any:
		return "list"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
