package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casavera/catalog-media-backend/internal/http/response"
	"github.com/casavera/catalog-media-backend/internal/jobs"
)

type JobHandler struct {
	dispatch jobs.DispatchService
}

func NewJobHandler(dispatch jobs.DispatchService) *JobHandler {
	return &JobHandler{dispatch: dispatch}
}

// GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_job_id", err)
		return
	}
	job, err := h.dispatch.Get(c.Request.Context(), jobID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "job_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"job": job})
}
