package picstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
)

const defaultMaxAttempts = 3

// httpMove and httpCopy are the protocol's single-request rename/duplicate
// primitives. The server applies them atomically; the target is carried in
// the Destination header.
const (
	httpMove = "MOVE"
	httpCopy = "COPY"
)

// HTTPStore speaks the picture store's HTTP file protocol: one URL per
// object, PUT/GET/DELETE/HEAD for the basics, MOVE/COPY for renames. No
// responses are cached; every query is a fresh remote request.
type HTTPStore struct {
	log           *logger.Logger
	client        *http.Client
	baseURL       string
	publicBaseURL string
	maxAttempts   int
	retryDelay    time.Duration
	callTimeout   time.Duration
}

func NewHTTPStore(log *logger.Logger, cfg Config) (*HTTPStore, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Backend != BackendHTTP {
		return nil, &ConfigError{Code: ConfigErrorInvalidBackend, Backend: string(cfg.Backend)}
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 250 * time.Millisecond
	}
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = cfg.BaseURL
	}
	return &HTTPStore{
		log:           log.With("store", "HTTPStore"),
		client:        &http.Client{},
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		publicBaseURL: strings.TrimRight(publicBase, "/"),
		maxAttempts:   attempts,
		retryDelay:    delay,
		callTimeout:   timeout,
	}, nil
}

func (s *HTTPStore) objectURL(name string) string {
	return s.baseURL + "/" + url.PathEscape(name)
}

func (s *HTTPStore) URLFor(name string) string {
	return s.publicBaseURL + "/" + url.PathEscape(name)
}

// httpReply is one fully consumed HTTP exchange. The body is read inside the
// attempt so callers never touch a response whose context has been released.
type httpReply struct {
	status int
	header http.Header
	body   []byte
}

func (r *httpReply) detail() string {
	body := r.body
	if len(body) > 512 {
		body = body[:512]
	}
	return fmt.Sprintf("status=%d body=%s", r.status, strings.TrimSpace(string(body)))
}

// doRetry performs one HTTP exchange, retrying only transport failures with
// exponential backoff, up to maxAttempts total attempts. The call timeout
// covers a single attempt, headers through body; a hung attempt times out on
// its own without eating the budget of the remaining ones. Protocol-level
// failures (any status code) are returned to the caller unretried.
func (s *HTTPStore) doRetry(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) (*httpReply, error) {
	var reply *httpReply
	err := retry.Do(
		func() error {
			attemptCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
			defer cancel()
			req, err := build(attemptCtx)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := s.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			reply = &httpReply{status: resp.StatusCode, header: resp.Header, body: body}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(s.maxAttempts)),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isNetworkError),
		retry.OnRetry(func(n uint, err error) {
			s.log.Warn("retrying picture store call", "attempt", n+1, "error", err)
		}),
	)
	return reply, err
}

// finish classifies a consumed exchange into a Result.
func (s *HTTPStore) finish(reply *httpReply, err error, locator string) Result {
	if err != nil {
		if isNetworkError(err) {
			return failure(OutcomeNetworkError, err.Error())
		}
		return failure(OutcomeUnknownError, err.Error())
	}
	outcome := classifyStatus(reply.status)
	if outcome == OutcomeSuccess {
		return success(locator)
	}
	return failure(outcome, reply.detail())
}

func (s *HTTPStore) Upload(ctx context.Context, name string, data []byte, contentType string) Result {
	if err := ValidateName(name); err != nil {
		return invalidPath(err)
	}
	resp, err := s.doRetry(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.objectURL(name), strings.NewReader(string(data)))
		if err != nil {
			return nil, err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.ContentLength = int64(len(data))
		return req, nil
	})
	return s.finish(resp, err, s.URLFor(name))
}

func (s *HTTPStore) Download(ctx context.Context, name string) ([]byte, Result) {
	if err := ValidateName(name); err != nil {
		return nil, invalidPath(err)
	}
	reply, err := s.doRetry(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, s.objectURL(name), nil)
	})
	if err != nil {
		if isNetworkError(err) {
			return nil, failure(OutcomeNetworkError, err.Error())
		}
		return nil, failure(OutcomeUnknownError, err.Error())
	}
	if outcome := classifyStatus(reply.status); outcome != OutcomeSuccess {
		return nil, failure(outcome, reply.detail())
	}
	return reply.body, success(s.URLFor(name))
}

func (s *HTTPStore) Delete(ctx context.Context, name string) Result {
	if err := ValidateName(name); err != nil {
		return invalidPath(err)
	}
	resp, err := s.doRetry(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(name), nil)
	})
	return s.finish(resp, err, "")
}

func (s *HTTPStore) Move(ctx context.Context, oldName, newName string) Result {
	return s.relocate(ctx, httpMove, oldName, newName)
}

func (s *HTTPStore) Copy(ctx context.Context, oldName, newName string) Result {
	return s.relocate(ctx, httpCopy, oldName, newName)
}

func (s *HTTPStore) relocate(ctx context.Context, method, oldName, newName string) Result {
	if err := ValidateName(oldName); err != nil {
		return invalidPath(err)
	}
	if err := ValidateName(newName); err != nil {
		return invalidPath(err)
	}
	resp, err := s.doRetry(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, s.objectURL(oldName), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Destination", s.objectURL(newName))
		req.Header.Set("Overwrite", "T")
		return req, nil
	})
	return s.finish(resp, err, s.URLFor(newName))
}

func (s *HTTPStore) Exists(ctx context.Context, name string) (bool, Result) {
	info, res := s.Info(ctx, name)
	switch res.Outcome {
	case OutcomeSuccess:
		return info != nil, res
	case OutcomeNotFound:
		return false, success("")
	default:
		return false, res
	}
}

func (s *HTTPStore) Info(ctx context.Context, name string) (*ObjectInfo, Result) {
	if err := ValidateName(name); err != nil {
		return nil, invalidPath(err)
	}
	reply, err := s.doRetry(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodHead, s.objectURL(name), nil)
	})
	if err != nil {
		if isNetworkError(err) {
			return nil, failure(OutcomeNetworkError, err.Error())
		}
		return nil, failure(OutcomeUnknownError, err.Error())
	}
	if outcome := classifyStatus(reply.status); outcome != OutcomeSuccess {
		return nil, failure(outcome, fmt.Sprintf("status=%d", reply.status))
	}
	info := &ObjectInfo{
		Name:        name,
		ContentType: reply.header.Get("Content-Type"),
		ETag:        reply.header.Get("Etag"),
	}
	if v := reply.header.Get("Content-Length"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			info.Size = n
		}
	}
	if v := reply.header.Get("Last-Modified"); v != "" {
		if t, err := http.ParseTime(v); err == nil {
			info.Updated = t
		}
	}
	return info, success(s.URLFor(name))
}

func (s *HTTPStore) List(ctx context.Context, pattern string, limit int) ([]string, Result) {
	reply, err := s.doRetry(ctx, func(ctx context.Context) (*http.Request, error) {
		q := url.Values{}
		if pattern != "" {
			q.Set("pattern", pattern)
		}
		if limit > 0 {
			q.Set("limit", strconv.Itoa(limit))
		}
		listURL := s.baseURL
		if enc := q.Encode(); enc != "" {
			listURL += "?" + enc
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	})
	if err != nil {
		if isNetworkError(err) {
			return nil, failure(OutcomeNetworkError, err.Error())
		}
		return nil, failure(OutcomeUnknownError, err.Error())
	}
	if outcome := classifyStatus(reply.status); outcome != OutcomeSuccess {
		return nil, failure(outcome, reply.detail())
	}
	var names []string
	if err := json.Unmarshal(reply.body, &names); err != nil {
		return nil, failure(OutcomeUnknownError, fmt.Sprintf("decode listing: %v", err))
	}
	return names, success("")
}
