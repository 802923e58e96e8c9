package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// watchFile calls onChange with the file's content each time it changes,
// until ctx is done. The parent directory is watched so editors that save by
// renaming a temporary file over the original are followed.
func watchFile(ctx context.Context, path string, logger *zap.Logger, onChange func(string), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return errors.Wrap(err, "watch")
	}

	last, _ := os.ReadFile(target)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				data, err := os.ReadFile(target)
				if err != nil {
					onError(err)
					continue
				}
				if string(data) == string(last) {
					continue
				}
				last = data
				logger.Debug("source changed", zap.String("path", target), zap.Stringer("op", ev.Op))
				onChange(string(data))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onError(err)
			}
		}
	}()
	return nil
}
