package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/casavera/catalog-media-backend/internal/repos/testutil"
	"github.com/casavera/catalog-media-backend/internal/types"
)

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }
func ptrTime(t time.Time) *time.Time  { return &t }

func TestJobRunRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewJobRunRepo(db, testutil.Logger(t))
	now := time.Now().UTC()

	queued := &types.JobRun{
		ID:         uuid.New(),
		JobType:    "picture_rename",
		EntityType: "product",
		EntityID:   ptrUUID(uuid.New()),
		Status:     types.JobStatusQueued,
		Payload:    datatypes.JSON([]byte(`{}`)),
		Result:     datatypes.JSON([]byte(`{}`)),
		CreatedAt:  now.Add(-3 * time.Hour),
		UpdatedAt:  now.Add(-3 * time.Hour),
	}
	failedRetryable := &types.JobRun{
		ID:          uuid.New(),
		JobType:     "picture_rename",
		EntityType:  "product",
		EntityID:    ptrUUID(uuid.New()),
		Status:      types.JobStatusFailed,
		Attempts:    1,
		LastErrorAt: ptrTime(now.Add(-2 * time.Hour)),
		Payload:     datatypes.JSON([]byte(`{}`)),
		Result:      datatypes.JSON([]byte(`{}`)),
		CreatedAt:   now.Add(-2 * time.Hour),
		UpdatedAt:   now.Add(-2 * time.Hour),
	}
	freshRunning := &types.JobRun{
		ID:          uuid.New(),
		JobType:     "picture_rename",
		EntityType:  "product",
		EntityID:    ptrUUID(uuid.New()),
		Status:      types.JobStatusRunning,
		HeartbeatAt: ptrTime(now),
		Payload:     datatypes.JSON([]byte(`{}`)),
		Result:      datatypes.JSON([]byte(`{}`)),
		CreatedAt:   now.Add(-1 * time.Hour),
		UpdatedAt:   now.Add(-1 * time.Hour),
	}
	for _, job := range []*types.JobRun{queued, failedRetryable, freshRunning} {
		if _, err := repo.Create(ctx, tx, job); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	t.Run("GetLatestByEntity", func(t *testing.T) {
		got, err := repo.GetLatestByEntity(ctx, tx, "product", *queued.EntityID, "picture_rename")
		if err != nil {
			t.Fatalf("GetLatestByEntity: %v", err)
		}
		if got == nil || got.ID != queued.ID {
			t.Fatalf("got %+v, want %s", got, queued.ID)
		}
		missing, err := repo.GetLatestByEntity(ctx, tx, "product", uuid.New(), "picture_rename")
		if err != nil || missing != nil {
			t.Fatalf("missing entity = (%+v, %v), want (nil, nil)", missing, err)
		}
	})

	t.Run("ClaimNextRunnable prefers the oldest runnable", func(t *testing.T) {
		claimed, err := repo.ClaimNextRunnable(ctx, tx, 5, 30*time.Second, 2*time.Minute)
		if err != nil {
			t.Fatalf("ClaimNextRunnable: %v", err)
		}
		if claimed == nil || claimed.ID != queued.ID {
			t.Fatalf("claimed %+v, want the queued job %s", claimed, queued.ID)
		}
		reloaded, err := repo.GetByID(ctx, tx, queued.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if reloaded.Status != types.JobStatusRunning || reloaded.Attempts != 1 {
			t.Fatalf("claimed row = status %q attempts %d", reloaded.Status, reloaded.Attempts)
		}
	})

	t.Run("ClaimNextRunnable retries old failures but not fresh running jobs", func(t *testing.T) {
		claimed, err := repo.ClaimNextRunnable(ctx, tx, 5, 30*time.Second, 2*time.Minute)
		if err != nil {
			t.Fatalf("ClaimNextRunnable: %v", err)
		}
		if claimed == nil || claimed.ID != failedRetryable.ID {
			t.Fatalf("claimed %+v, want the retryable failed job %s", claimed, failedRetryable.ID)
		}
	})

	t.Run("UpdateFieldsUnlessStatus guards canceled jobs", func(t *testing.T) {
		if err := repo.UpdateFields(ctx, tx, freshRunning.ID, map[string]interface{}{
			"status": types.JobStatusCanceled,
		}); err != nil {
			t.Fatalf("UpdateFields: %v", err)
		}
		ok, err := repo.UpdateFieldsUnlessStatus(ctx, tx, freshRunning.ID, []string{types.JobStatusCanceled}, map[string]interface{}{
			"status": types.JobStatusSucceeded,
		})
		if err != nil {
			t.Fatalf("UpdateFieldsUnlessStatus: %v", err)
		}
		if ok {
			t.Fatal("canceled job was overwritten")
		}
		reloaded, err := repo.GetByID(ctx, tx, freshRunning.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if reloaded.Status != types.JobStatusCanceled {
			t.Fatalf("status = %q, want canceled", reloaded.Status)
		}
	})
}
