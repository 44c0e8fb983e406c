package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/service"

	"github.com/gorilla/mux"
)

type JobHandler struct {
	jobSvc service.JobService
}

func NewJobHandler(jobSvc service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

type createJobRequest struct {
	Vehicle      domain.VehicleInfo `json:"vehicle"`
	ServiceCodes []string           `json:"service_codes"`
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	job, err := h.jobSvc.CreateJob(r.Context(), claims.AccountID, req.Vehicle, req.ServiceCodes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	jobID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid job id"})
		return
	}

	job, err := h.jobSvc.GetJob(r.Context(), claims.AccountID, claims.IsAdmin(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type listResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	page, pageSize := pagination(r)

	jobs, total, err := h.jobSvc.ListJobs(r.Context(), claims.AccountID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: jobs, Total: total})
}

func (h *JobHandler) ListQueue(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.JobStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.JobStatusPending
	}

	jobs, total, err := h.jobSvc.ListQueue(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: jobs, Total: total})
}

type transitionRequest struct {
	Status        domain.JobStatus `json:"status"`
	Reason        string           `json:"reason,omitempty"`
	AssignedAdmin *int32           `json:"assigned_admin,omitempty"`
}

// Transition drives the lifecycle. Customers may only request revisions on
// their own completed jobs; every other step is admin work.
func (h *JobHandler) Transition(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	jobID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid job id"})
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	if !claims.IsAdmin() {
		if req.Status != domain.JobStatusRevisionRequested {
			writeError(w, domain.ErrUnauthorized)
			return
		}
		job, err := h.jobSvc.GetJob(r.Context(), claims.AccountID, false, jobID)
		if err != nil {
			writeError(w, err)
			return
		}
		if job.OwnerID != claims.AccountID {
			writeError(w, domain.ErrUnauthorized)
			return
		}
	}

	job, err := h.jobSvc.Transition(r.Context(), claims.AccountID, jobID, req.Status, req.Reason, req.AssignedAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func pathID(r *http.Request, key string) (int32, error) {
	raw := mux.Vars(r)[key]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return int32(id), nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
