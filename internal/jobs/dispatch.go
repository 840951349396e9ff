package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/repos"
	"github.com/casavera/catalog-media-backend/internal/types"
)

const (
	TypePictureRename = "picture_rename"

	EntityProduct = "product"
)

// DispatchService enqueues background runs and answers status polls.
type DispatchService interface {
	// EnqueuePictureRename queues a rename cascade for one product. If the
	// latest run for the product is still queued or running it is returned
	// instead of stacking a duplicate.
	EnqueuePictureRename(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.JobRun, error)
	Get(ctx context.Context, jobID uuid.UUID) (*types.JobRun, error)
}

type dispatchService struct {
	log  *logger.Logger
	repo repos.JobRunRepo
}

func NewDispatchService(baseLog *logger.Logger, repo repos.JobRunRepo) (DispatchService, error) {
	if repo == nil {
		return nil, fmt.Errorf("NewDispatchService: nil repo")
	}
	return &dispatchService{
		log:  baseLog.With("service", "DispatchService"),
		repo: repo,
	}, nil
}

func (s *dispatchService) EnqueuePictureRename(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.JobRun, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("enqueue picture rename: nil product id")
	}
	latest, err := s.repo.GetLatestByEntity(ctx, tx, EntityProduct, productID, TypePictureRename)
	if err != nil {
		return nil, fmt.Errorf("look up latest run: %w", err)
	}
	if latest != nil && (latest.Status == types.JobStatusQueued || latest.Status == types.JobStatusRunning) {
		return latest, nil
	}

	payload, _ := json.Marshal(map[string]string{"product_id": productID.String()})
	entityID := productID
	job := &types.JobRun{
		JobType:    TypePictureRename,
		EntityType: EntityProduct,
		EntityID:   &entityID,
		Status:     types.JobStatusQueued,
		Payload:    datatypes.JSON(payload),
	}
	created, err := s.repo.Create(ctx, tx, job)
	if err != nil {
		return nil, fmt.Errorf("enqueue picture rename: %w", err)
	}
	s.log.Info("enqueued picture rename", "job_id", created.ID, "product_id", productID)
	return created, nil
}

func (s *dispatchService) Get(ctx context.Context, jobID uuid.UUID) (*types.JobRun, error) {
	return s.repo.GetByID(ctx, nil, jobID)
}
