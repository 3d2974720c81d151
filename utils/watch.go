package utils

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchFile 文件变化后调用 fn，delay 内的连续事件只触发一次。
// 监听所在目录，编辑器以替换方式保存也能收到。阻塞到 ctx 结束，
// 返回前等待正在执行的 fn
func WatchFile(ctx context.Context, file string, delay time.Duration, fn func()) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", filepath.Dir(abs), err)
	}

	// 每个已排期的 fn 占一个计数，取消或执行完成时释放
	var wg sync.WaitGroup
	var timer *time.Timer
	cancel := func() {
		if timer != nil && timer.Stop() {
			wg.Done()
		}
	}
	defer func() {
		cancel()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cancel()
			wg.Add(1)
			timer = time.AfterFunc(delay, func() {
				defer wg.Done()
				fn()
			})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
