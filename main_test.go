// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/danielhkuo/band-planner/store"
)

// closeRecorder is a store that only records Close
type closeRecorder struct {
	store.Store
	closed atomic.Bool
}

func (c *closeRecorder) Close(context.Context) error {
	c.closed.Store(true)
	return nil
}

func TestRunDrainsInFlightRequestsBeforeClosingStore(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	var storeClosedDuringRequest atomic.Bool
	st := &closeRecorder{}

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(started)
			<-release
			storeClosedDuringRequest.Store(st.closed.Load())
			w.WriteHeader(http.StatusOK)
		}),
	}

	stop := make(chan os.Signal, 1)
	runDone := make(chan error, 1)
	go func() { runDone <- run(server, ln, st, stop) }()

	reqDone := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/")
		if err != nil {
			reqDone <- 0
			return
		}
		resp.Body.Close()
		reqDone <- resp.StatusCode
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the handler")
	}

	stop <- syscall.SIGTERM

	select {
	case <-runDone:
		t.Fatal("run returned while a request was still in flight")
	case <-time.After(200 * time.Millisecond):
	}
	if st.closed.Load() {
		t.Fatal("store closed while a request was still in flight")
	}

	close(release)

	select {
	case status := <-reqDone:
		if status != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, status)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight request did not complete")
	}

	select {
	case err := <-runDone:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the drain")
	}

	if storeClosedDuringRequest.Load() {
		t.Error("Expected store to stay open while the handler ran")
	}
	if !st.closed.Load() {
		t.Error("Expected store to be closed after shutdown")
	}
}
