package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edulab-vn/center-backend-go/internal/domain/overtime"
	"github.com/edulab-vn/center-backend-go/internal/handler/http/middleware"
	"github.com/edulab-vn/center-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

func (h *overtimeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter overtime.ListFilter
	query := r.URL.Query()
	if v := query.Get("from_date"); v != "" {
		filter.FromDate = &v
	}
	if v := query.Get("to_date"); v != "" {
		filter.ToDate = &v
	}
	if v := query.Get("staff_id"); v != "" {
		filter.StaffID = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}

	results, err := h.overtimeService.List(r.Context(), &filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *overtimeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.overtimeService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *overtimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req overtime.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ApproverID = middleware.UserID(r)

	result, err := h.overtimeService.Approve(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request approved", result)
}

func (h *overtimeHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req overtime.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ApproverID = middleware.UserID(r)

	result, err := h.overtimeService.Reject(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request rejected", result)
}
