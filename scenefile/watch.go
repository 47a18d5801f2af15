package scenefile

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/phanxgames/willow3d"
)

// Watch reloads the document at path every time it is written and hands the
// new tree to onLoad. Reload failures go to onError and watching continues.
// Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file so that editors which
// save by rename keep triggering reloads. onLoad and onError run on the
// watching goroutine.
func Watch(ctx context.Context, path string, onLoad func(*willow3d.Node), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "scenefile: watch")
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "scenefile: watch %q", path)
	}
	log := willow3d.Logger().With(zap.String("path", target))
	log.Debug("watching scene file")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			root, err := LoadFile(target)
			if err != nil {
				log.Warn("scene reload failed", zap.Error(err))
				if onError != nil {
					onError(err)
				}
				continue
			}
			log.Debug("scene reloaded", zap.String("op", event.Op.String()))
			onLoad(root)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(errors.Wrap(err, "scenefile: watch"))
			}
		}
	}
}
