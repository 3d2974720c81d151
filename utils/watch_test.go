package utils

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "logo.png")
	other := filepath.Join(dir, "other.png")
	if err := os.WriteFile(target, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, target, 50*time.Millisecond, func() { fired <- struct{}{} })
	}()

	// 等待 watcher 就绪
	time.Sleep(200 * time.Millisecond)

	os.WriteFile(other, []byte("x"), 0644)
	select {
	case <-fired:
		t.Fatal("fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		os.WriteFile(target, []byte{byte(i)}, 0644)
	}
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after write")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WatchFile returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WatchFile did not return after cancel")
	}
}

func TestWatchFileWaitsForRunningCallback(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(target, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{}, 10)
	var finished atomic.Bool
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, target, 10*time.Millisecond, func() {
			started <- struct{}{}
			time.Sleep(300 * time.Millisecond)
			finished.Store(true)
		})
	}()

	time.Sleep(200 * time.Millisecond)
	os.WriteFile(target, []byte("v2"), 0644)
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after write")
	}

	cancel()
	select {
	case <-done:
		if !finished.Load() {
			t.Error("WatchFile returned while the callback was still running")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WatchFile did not return after cancel")
	}
}
