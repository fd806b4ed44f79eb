// Package watch converts palette files to GPL as they appear in a directory.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"palconv/convert"
	"palconv/dispatch"
)

// Watcher converts files created or written in Dir. Writes to the same file
// within Debounce of each other trigger a single conversion.
type Watcher struct {
	dir      string
	debounce time.Duration
	opts     convert.Options
	log      logrus.FieldLogger
	fsw      *fsnotify.Watcher

	// OnConvert, if set, is called after each conversion attempt.
	OnConvert func(convert.Outcome, error)
}

// New starts watching dir. opts.OutPath is ignored; OutDir defaults to dir.
func New(dir string, debounce time.Duration, opts convert.Options, log logrus.FieldLogger) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("watch: " + abs + " is not a directory")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(abs); err != nil {
		fsw.Close()
		return nil, err
	}
	opts.OutPath = ""
	if opts.OutDir == "" {
		opts.OutDir = abs
	}
	return &Watcher{
		dir:      abs,
		debounce: debounce,
		opts:     opts,
		log:      log.WithField("component", "watch"),
		fsw:      fsw,
	}, nil
}

// Dir returns the absolute watched directory.
func (w *Watcher) Dir() string { return w.dir }

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	ready := make(chan fire, 16)
	pending := newDebouncer(w.debounce, func(f fire) {
		select {
		case ready <- f:
		case <-ctx.Done():
		}
	})
	defer pending.stop()

	w.log.WithField("dir", w.dir).Info("watching")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !w.wanted(ev.Name) {
				continue
			}
			pending.touch(ev.Name)
		case f := <-ready:
			if pending.due(f) {
				w.convert(f.path)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

// fire is a debounce timer expiry for one generation of path.
type fire struct {
	path string
	gen  uint64
}

// debouncer keeps one timer per path. Every touch bumps the path's
// generation, so a timer that fired before being replaced is recognised as
// stale when its fire is received. Only send runs off the owning goroutine.
type debouncer struct {
	delay  time.Duration
	send   func(fire)
	timers map[string]*time.Timer
	gens   map[string]uint64
}

func newDebouncer(delay time.Duration, send func(fire)) *debouncer {
	return &debouncer{
		delay:  delay,
		send:   send,
		timers: map[string]*time.Timer{},
		gens:   map[string]uint64{},
	}
}

func (d *debouncer) touch(path string) {
	if t, ok := d.timers[path]; ok {
		t.Stop()
	}
	d.gens[path]++
	f := fire{path: path, gen: d.gens[path]}
	d.timers[path] = time.AfterFunc(d.delay, func() { d.send(f) })
}

// due reports whether f is the latest generation for its path and clears
// the pending timer if so.
func (d *debouncer) due(f fire) bool {
	if _, ok := d.timers[f.path]; !ok || d.gens[f.path] != f.gen {
		return false
	}
	delete(d.timers, f.path)
	return true
}

func (d *debouncer) stop() {
	for _, t := range d.timers {
		t.Stop()
	}
}

func (w *Watcher) wanted(path string) bool {
	if !dispatch.Supported(path) {
		return false
	}
	// Our own output must not be fed back in.
	if strings.EqualFold(filepath.Ext(path), ".gpl") && filepath.Clean(filepath.Dir(path)) == filepath.Clean(w.opts.OutDir) {
		return false
	}
	return true
}

func (w *Watcher) convert(path string) {
	out, err := convert.File(path, w.opts)
	entry := w.log.WithFields(logrus.Fields{"file": path, "format": out.Format.String()})
	for _, d := range out.Result.Diagnostics {
		entry.WithFields(logrus.Fields{"unit": d.Unit, "index": d.Index}).Warn(d.Message)
	}
	if err != nil {
		entry.WithError(err).Error("convert failed")
	} else {
		entry.WithFields(logrus.Fields{"output": out.Output, "colors": out.Result.Len()}).Info("converted")
	}
	if w.OnConvert != nil {
		w.OnConvert(out, err)
	}
}
