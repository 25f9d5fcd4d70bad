package http

import (
	"net/http"

	"github.com/edulab-vn/center-backend-go/internal/domain/payroll"
	"github.com/edulab-vn/center-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GenerateReport(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

func (h *payrollHandlerImpl) GenerateReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := payroll.GenerateReportRequest{
		FromDate: query.Get("from_date"),
		ToDate:   query.Get("to_date"),
	}
	if staffID := query.Get("staff_id"); staffID != "" {
		req.StaffID = &staffID
	}

	result, err := h.payrollService.GenerateReport(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
