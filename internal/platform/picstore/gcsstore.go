package picstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
)

// GCSStore keeps pictures in a Google Cloud Storage bucket. It exists so the
// rename cascade can run against object storage instead of the HTTP file
// protocol without any caller noticing; the SDK performs its own transport
// retries, so no extra retry layer is stacked on top.
type GCSStore struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
}

func NewGCSStore(ctx context.Context, log *logger.Logger, cfg Config, opts ...option.ClientOption) (*GCSStore, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Backend != BackendGCS {
		return nil, &ConfigError{Code: ConfigErrorInvalidBackend, Backend: string(cfg.Backend)}
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStore{
		log:    log.With("store", "GCSStore"),
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func (s *GCSStore) URLFor(name string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, name)
}

// classifyGCS maps SDK errors onto the outcome taxonomy.
func classifyGCS(err error) Result {
	if err == nil {
		return success("")
	}
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return failure(OutcomeNotFound, err.Error())
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return failure(classifyStatus(apiErr.Code), err.Error())
	}
	if isNetworkError(err) {
		return failure(OutcomeNetworkError, err.Error())
	}
	return failure(OutcomeUnknownError, err.Error())
}

func (s *GCSStore) object(name string) *storage.ObjectHandle {
	return s.client.Bucket(s.bucket).Object(name)
}

func (s *GCSStore) Upload(ctx context.Context, name string, data []byte, contentType string) Result {
	if err := ValidateName(name); err != nil {
		return invalidPath(err)
	}
	w := s.object(name).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return classifyGCS(err)
	}
	if err := w.Close(); err != nil {
		return classifyGCS(err)
	}
	return success(s.URLFor(name))
}

func (s *GCSStore) Download(ctx context.Context, name string) ([]byte, Result) {
	if err := ValidateName(name); err != nil {
		return nil, invalidPath(err)
	}
	r, err := s.object(name).NewReader(ctx)
	if err != nil {
		return nil, classifyGCS(err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, classifyGCS(err)
	}
	return data, success(s.URLFor(name))
}

func (s *GCSStore) Delete(ctx context.Context, name string) Result {
	if err := ValidateName(name); err != nil {
		return invalidPath(err)
	}
	if err := s.object(name).Delete(ctx); err != nil {
		return classifyGCS(err)
	}
	return success("")
}

// Move is copy-then-delete: GCS has no native rename, but the server-side
// copy never transfers payload through this process and the source delete
// only runs after the copy committed.
func (s *GCSStore) Move(ctx context.Context, oldName, newName string) Result {
	res := s.Copy(ctx, oldName, newName)
	if !res.OK() {
		return res
	}
	if err := s.object(oldName).Delete(ctx); err != nil {
		s.log.Warn("source object left behind after move", "old", oldName, "new", newName, "error", err)
	}
	return success(s.URLFor(newName))
}

func (s *GCSStore) Copy(ctx context.Context, oldName, newName string) Result {
	if err := ValidateName(oldName); err != nil {
		return invalidPath(err)
	}
	if err := ValidateName(newName); err != nil {
		return invalidPath(err)
	}
	src := s.object(oldName)
	dst := s.object(newName)
	if _, err := dst.CopierFrom(src).Run(ctx); err != nil {
		return classifyGCS(err)
	}
	return success(s.URLFor(newName))
}

func (s *GCSStore) Exists(ctx context.Context, name string) (bool, Result) {
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

func (s *GCSStore) Info(ctx context.Context, name string) (*ObjectInfo, Result) {
	if err := ValidateName(name); err != nil {
		return nil, invalidPath(err)
	}
	attrs, err := s.object(name).Attrs(ctx)
	if err != nil {
		return nil, classifyGCS(err)
	}
	return &ObjectInfo{
		Name:        attrs.Name,
		Size:        attrs.Size,
		ContentType: attrs.ContentType,
		Updated:     attrs.Updated,
		ETag:        attrs.Etag,
	}, success(s.URLFor(name))
}

func (s *GCSStore) List(ctx context.Context, pattern string, limit int) ([]string, Result) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: pattern})
	names := []string{}
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classifyGCS(err)
		}
		names = append(names, attrs.Name)
		if limit > 0 && len(names) >= limit {
			break
		}
	}
	return names, success("")
}

// Close releases the underlying SDK client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
