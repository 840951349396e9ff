package picstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
)

func newTestHTTPStore(t *testing.T, baseURL string) *HTTPStore {
	t.Helper()
	store, err := NewHTTPStore(logger.Nop(), Config{
		Backend:     BackendHTTP,
		BaseURL:     baseURL,
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
		CallTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewHTTPStore: %v", err)
	}
	return store
}

func TestHTTPStoreStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   Outcome
	}{
		{http.StatusNoContent, OutcomeSuccess},
		{http.StatusNotFound, OutcomeNotFound},
		{http.StatusForbidden, OutcomePermissionDenied},
		{http.StatusConflict, OutcomeAlreadyExists},
		{http.StatusInsufficientStorage, OutcomeStorageFull},
		{http.StatusInternalServerError, OutcomeUnknownError},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		store := newTestHTTPStore(t, srv.URL)
		res := store.Move(context.Background(), "old_1.jpg", "new_1.jpg")
		srv.Close()
		if res.Outcome != tt.want {
			t.Fatalf("status %d: outcome = %q, want %q", tt.status, res.Outcome, tt.want)
		}
	}
}

func TestHTTPStoreMoveRequestShape(t *testing.T) {
	var gotMethod, gotDestination, gotOverwrite string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotDestination = r.Header.Get("Destination")
		gotOverwrite = r.Header.Get("Overwrite")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := newTestHTTPStore(t, srv.URL)
	res := store.Move(context.Background(), "ABC_SUP001_red_1.jpg", "ABC_SUP002_red_1.jpg")
	if !res.OK() {
		t.Fatalf("Move failed: %+v", res)
	}
	if gotMethod != "MOVE" {
		t.Fatalf("method = %q, want MOVE", gotMethod)
	}
	if want := srv.URL + "/ABC_SUP002_red_1.jpg"; gotDestination != want {
		t.Fatalf("Destination = %q, want %q", gotDestination, want)
	}
	if gotOverwrite != "T" {
		t.Fatalf("Overwrite = %q, want T", gotOverwrite)
	}
	if want := srv.URL + "/ABC_SUP002_red_1.jpg"; res.Locator != want {
		t.Fatalf("Locator = %q, want %q", res.Locator, want)
	}
}

func TestHTTPStoreRetriesNetworkErrors(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Fatal("response writer does not support hijacking")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Fatalf("hijack: %v", err)
		}
		conn.Close()
	}))
	defer srv.Close()

	store := newTestHTTPStore(t, srv.URL)
	res := store.Delete(context.Background(), "gone_1.jpg")
	if res.Outcome != OutcomeNetworkError {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeNetworkError)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("attempts = %d, want exactly 3", got)
	}
}

func TestHTTPStoreDoesNotRetryProtocolFailures(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := newTestHTTPStore(t, srv.URL)
	res := store.Move(context.Background(), "missing_1.jpg", "missing_2.jpg")
	if res.Outcome != OutcomeNotFound {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeNotFound)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("attempts = %d, want 1 (no retries on protocol failures)", got)
	}
}

func TestHTTPStoreValidatesBeforeNetwork(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newTestHTTPStore(t, srv.URL)
	res := store.Upload(context.Background(), "a/b.jpg", []byte("x"), "image/jpeg")
	if res.Outcome != OutcomeInvalidPath {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeInvalidPath)
	}
	if got := atomic.LoadInt32(&attempts); got != 0 {
		t.Fatalf("attempts = %d, want 0 (invalid names never reach the network)", got)
	}
}

func TestHTTPStoreDownloadStreamedBody(t *testing.T) {
	chunk := make([]byte, 64*1024)
	for i := range chunk {
		chunk[i] = byte(i)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fl, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("response writer does not support flushing")
		}
		_, _ = w.Write(chunk)
		fl.Flush()
		// The rest of the body arrives well after the headers.
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write(chunk)
	}))
	defer srv.Close()

	store := newTestHTTPStore(t, srv.URL)
	data, res := store.Download(context.Background(), "ABC_SUP001_1.jpg")
	if !res.OK() {
		t.Fatalf("Download failed: %+v", res)
	}
	if len(data) != 2*len(chunk) {
		t.Fatalf("Download = %d bytes, want %d", len(data), 2*len(chunk))
	}
}

func TestHTTPStoreTimeoutIsPerAttempt(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			// Hang past the call timeout; unblock when the client gives up.
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store, err := NewHTTPStore(logger.Nop(), Config{
		Backend:     BackendHTTP,
		BaseURL:     srv.URL,
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
		CallTimeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewHTTPStore: %v", err)
	}

	res := store.Delete(context.Background(), "slow_1.jpg")
	if !res.OK() {
		t.Fatalf("Delete failed after hung attempts: %+v", res)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("attempts = %d, want 3 (hung attempts must not eat the retry budget)", got)
	}
}

func TestHTTPStoreUploadDownloadRoundTrip(t *testing.T) {
	objects := map[string][]byte{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[1:]
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			objects[name] = body
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			data, ok := objects[name]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(data)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	store := newTestHTTPStore(t, srv.URL)
	ctx := context.Background()

	up := store.Upload(ctx, "ABC_SUP001_1.jpg", []byte("payload"), "image/jpeg")
	if !up.OK() {
		t.Fatalf("Upload failed: %+v", up)
	}
	data, down := store.Download(ctx, "ABC_SUP001_1.jpg")
	if !down.OK() {
		t.Fatalf("Download failed: %+v", down)
	}
	if string(data) != "payload" {
		t.Fatalf("Download = %q, want %q", data, "payload")
	}
	if _, miss := store.Download(ctx, "nope_1.jpg"); miss.Outcome != OutcomeNotFound {
		t.Fatalf("missing object outcome = %q, want %q", miss.Outcome, OutcomeNotFound)
	}
}
