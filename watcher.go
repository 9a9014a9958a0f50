package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debouncer coalesces rapid event bursts into a single callback per file.
type debouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	delay  time.Duration
	onFire func(path string)
}

func newDebouncer(delay time.Duration, onFire func(path string)) *debouncer {
	return &debouncer{
		timers: make(map[string]*time.Timer),
		delay:  delay,
		onFire: onFire,
	}
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
		d.onFire(path)
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}

type convJob struct {
	input  string
	output string
}

// classifyEvent decides whether path needs converting and where the result
// goes: the output tree mirrors the input directory layout under location.
// Outputs newer than their input are skipped.
func classifyEvent(path string, cfg *Config) *convJob {
	ext := strings.ToLower(filepath.Ext(path))
	if !inputExts[ext] {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}

	var rel string
	for _, dir := range cfg.Watch.Inputs {
		if r, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
			break
		}
	}
	if rel == "" {
		return nil
	}

	out := rel
	if ext == ".qoi" {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + "." + cfg.Watch.RasterFormat
	} else {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + ".qoi"
	}
	out = filepath.Join(cfg.Watch.Location, out)

	if outInfo, err := os.Stat(out); err == nil && outInfo.ModTime().After(info.ModTime()) {
		return nil
	}
	return &convJob{input: path, output: out}
}

func runWatchMode(cfg *Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	for _, dir := range cfg.Watch.Inputs {
		if err := watchRecursive(w, dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		fmt.Printf("Watching: %s\n", dir)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup

	db := newDebouncer(cfg.Watch.DebounceDuration(), func(path string) {
		j := classifyEvent(path, cfg)
		if j == nil {
			return
		}
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; wg.Done() }()
			if err := convertFile(j.input, j.output); err != nil {
				fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", j.input, err)
				return
			}
			fmt.Printf("Converted %s → %s\n", j.input, j.output)
		}()
	})
	defer db.stop()

	initialScan(cfg, db)

	fmt.Println("Daemon ready. Waiting for file changes...")

	eventLoop(ctx, w, db)

	fmt.Println("Waiting for in-flight conversions...")
	wg.Wait()
	fmt.Println("Shutdown complete.")
	return nil
}

func watchRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

// initialScan feeds stale files already present in the watched directories
// through the debouncer.
func initialScan(cfg *Config, db *debouncer) {
	for _, dir := range cfg.Watch.Inputs {
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if inputExts[strings.ToLower(filepath.Ext(path))] {
				db.trigger(path)
			}
			return nil
		})
	}
}

func eventLoop(ctx context.Context, w *fsnotify.Watcher, db *debouncer) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
				watchRecursive(w, ev.Name)
				continue
			}
			db.trigger(ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		}
	}
}
