package devserver

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/deckshell/internal/config"
	"git.home.luguber.info/inful/deckshell/internal/logfields"
	"git.home.luguber.info/inful/deckshell/internal/shell"
)

// watchTargets lists the files whose change regenerates the shell: the client template,
// every root's index.html and the deck.
func watchTargets(cfg *config.Config) []string {
	targets := []string{filepath.Join(cfg.ClientRoot, shell.IndexFile)}
	for _, root := range cfg.Roots {
		targets = append(targets, filepath.Join(root, shell.IndexFile))
	}
	if cfg.Deck != "" {
		targets = append(targets, cfg.Deck)
	}
	for i, t := range targets {
		targets[i] = filepath.Clean(t)
	}
	slices.Sort(targets)
	return slices.Compact(targets)
}

// setupFileWatcher watches the directories containing targets. Watching the directory is
// more reliable than the file itself: editors replace files on save and files that do
// not exist yet can still be picked up.
func setupFileWatcher(targets []string, logger *slog.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	added := map[string]bool{}
	for _, t := range targets {
		dir := filepath.Dir(t)
		if added[dir] {
			continue
		}
		added[dir] = true
		if err := watcher.Add(dir); err != nil {
			logger.Warn("watch add failed", logfields.Path(dir), logfields.Error(err))
		}
	}
	if len(watcher.WatchList()) == 0 {
		_ = watcher.Close()
		return nil, fmt.Errorf("fsnotify: none of %d watch directories could be added", len(added))
	}
	return watcher, nil
}

// setupRebuildDebouncer creates the rebuild channel and a trigger that fires it once
// delay has passed without another trigger.
func setupRebuildDebouncer(delay time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}

	return rebuildReq, trigger
}

// isRelevantEvent reports whether ev touches one of targets.
func isRelevantEvent(ev fsnotify.Event, targets []string) bool {
	if shouldIgnoreEvent(ev.Name) {
		return false
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	_, found := slices.BinarySearch(targets, filepath.Clean(ev.Name))
	return found
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Editor temp/swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == ".DS_Store" || base == "Thumbs.db"
}
