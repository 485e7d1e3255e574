package host

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceWindow absorbs the burst of events editors emit on save
// (write + chmod, or remove + create for atomic replaces).
const debounceWindow = 500 * time.Millisecond

// RunWatched runs the host like Run, but additionally watches the
// requirements manifest and restarts the host when it changes, invoking
// reinstall first so the new dependency set is in place. It returns the host
// exit code once the host exits for a reason other than a watched restart, or
// when ctx is canceled.
func (h *Host) RunWatched(ctx context.Context, entrypoint string, port int, manifestPath string, reinstall func(context.Context) error) (int, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return 0, fmt.Errorf("creating manifest watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: atomic saves replace the inode and
	// would silently detach a file-level watch.
	dir := filepath.Dir(manifestPath)
	if err := watcher.Add(dir); err != nil {
		return 0, fmt.Errorf("watching %s: %w", dir, err)
	}
	target := filepath.Base(manifestPath)

	changed := make(chan struct{}, 1)
	go func() {
		var last time.Time
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if time.Since(last) < debounceWindow {
					continue
				}
				last = time.Now()
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				h.logger().Warn("manifest watcher error", zap.Error(err))
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		runCtx, cancel := context.WithCancel(ctx)

		exit := make(chan hostExit, 1)
		go func() {
			code, err := h.Run(runCtx, entrypoint, port)
			exit <- hostExit{code: code, err: err}
		}()

		select {
		case res := <-exit:
			cancel()
			if ctx.Err() != nil {
				return res.code, nil
			}
			return res.code, res.err

		case <-changed:
			h.logger().Info("requirements manifest changed, restarting host",
				zap.String("manifest", manifestPath))
			cancel()
			<-exit // wait for the old host to die before reinstalling

			if err := reinstall(ctx); err != nil {
				return 0, fmt.Errorf("reinstalling after manifest change: %w", err)
			}

		case <-ctx.Done():
			cancel()
			res := <-exit
			return res.code, nil
		}
	}
}

type hostExit struct {
	code int
	err  error
}
