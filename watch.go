package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// The game writes the save in several bursts; uploads are debounced so a
// half-written file is not picked up.
const uploadDebounce = 2 * time.Second

type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, fn)
}

// runWatch watches the hotseat directory and uploads the game's save
// whenever the engine writes it. It runs until interrupted.
func runWatch(ctx context.Context, api *ServerAPI, config *Config, gameID string) error {
	game, err := api.GameInfo(ctx, gameID)
	if err != nil {
		return err
	}
	fileName := saveFileName(game)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(config.SavePath); err != nil {
		return fmt.Errorf("watching %s: %w", config.SavePath, err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s for %s, ^C to stop\n", config.SavePath, fileName)

	deb := newDebouncer(uploadDebounce)
	for {
		select {
		case <-ctx.Done():
			fmt.Println("Stopped watching")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Base(event.Name) != fileName {
				continue
			}
			path := event.Name
			deb.Do(func() {
				if err := uploadSaveFile(context.Background(), api, gameID, path); err != nil {
					log.Printf("upload failed: %v", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)
		}
	}
}
