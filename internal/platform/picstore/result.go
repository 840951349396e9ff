// Package picstore talks to the remote picture store. Every operation returns
// a typed Result instead of an error: callers branch on the outcome, and only
// construction-time misconfiguration surfaces as a Go error.
package picstore

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"
)

type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeNotFound         Outcome = "not_found"
	OutcomePermissionDenied Outcome = "permission_denied"
	OutcomeAlreadyExists    Outcome = "already_exists"
	OutcomeStorageFull      Outcome = "storage_full"
	OutcomeInvalidPath      Outcome = "invalid_path"
	OutcomeNetworkError     Outcome = "network_error"
	OutcomeUnknownError     Outcome = "unknown_error"
)

// Result is the uniform answer of every store operation.
type Result struct {
	Outcome Outcome
	// Locator is the public URL of the object after the operation, set on
	// success where it makes sense (upload, move, copy).
	Locator string
	// Detail carries diagnostic context for logs; empty on success.
	Detail string
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

func success(locator string) Result {
	return Result{Outcome: OutcomeSuccess, Locator: locator}
}

func failure(outcome Outcome, detail string) Result {
	return Result{Outcome: outcome, Detail: detail}
}

func invalidPath(err error) Result {
	return Result{Outcome: OutcomeInvalidPath, Detail: err.Error()}
}

// classifyStatus maps an HTTP status code onto the outcome taxonomy.
func classifyStatus(code int) Outcome {
	switch {
	case code >= 200 && code < 300:
		return OutcomeSuccess
	case code == http.StatusNotFound:
		return OutcomeNotFound
	case code == http.StatusForbidden:
		return OutcomePermissionDenied
	case code == http.StatusConflict:
		return OutcomeAlreadyExists
	case code == http.StatusInsufficientStorage:
		return OutcomeStorageFull
	default:
		return OutcomeUnknownError
	}
}

// isNetworkError reports whether err is a transport-level failure worth
// retrying: connection refused/reset, DNS failure, timeout.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// ObjectInfo describes a stored object without its payload.
type ObjectInfo struct {
	Name        string
	Size        int64
	ContentType string
	Updated     time.Time
	ETag        string
}

// Store is the narrow client contract against the remote picture store.
// Implementations exist for the HTTP file protocol, Google Cloud Storage and
// a local directory, so the rename cascade never depends on a concrete
// backend.
type Store interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) Result
	Download(ctx context.Context, name string) ([]byte, Result)
	Delete(ctx context.Context, name string) Result
	Move(ctx context.Context, oldName, newName string) Result
	Copy(ctx context.Context, oldName, newName string) Result
	Exists(ctx context.Context, name string) (bool, Result)
	Info(ctx context.Context, name string) (*ObjectInfo, Result)
	List(ctx context.Context, pattern string, limit int) ([]string, Result)
	URLFor(name string) string
}
