package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Mobiman12/stundenliste-backend-go/internal/domain/bonus"
	"github.com/Mobiman12/stundenliste-backend-go/internal/handler/http/response"
	"github.com/Mobiman12/stundenliste-backend-go/internal/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type BonusHandler interface {
	GetMonth(w http.ResponseWriter, r *http.Request)
	RecordPayout(w http.ResponseWriter, r *http.Request)
	SaveScheme(w http.ResponseWriter, r *http.Request)
}

type BonusHandlerImpl struct {
	bonusService bonus.Service
}

func NewBonusHandler(bonusService bonus.Service) BonusHandler {
	return &BonusHandlerImpl{bonusService: bonusService}
}

// GetMonth implements BonusHandler.
func (h *BonusHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	companyID, err := auth.CompanyID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, month, ok := yearMonthQuery(r)
	if !ok {
		response.BadRequest(w, "year and month are required", nil)
		return
	}

	if !auth.IsAdmin(r.Context()) {
		if err := assertOwnSheet(r, employeeID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	result, err := h.bonusService.MonthSummary(r.Context(), employeeID, year, month, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type recordBonusPayoutRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Amount     string `json:"amount"`
}

// RecordPayout implements BonusHandler.
func (h *BonusHandlerImpl) RecordPayout(w http.ResponseWriter, r *http.Request) {
	var req recordBonusPayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordPayout decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyID, err := auth.CompanyID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	if req.Month < 1 || req.Month > 12 {
		response.BadRequest(w, "month must be between 1 and 12", nil)
		return
	}

	result, err := h.bonusService.RecordPayout(r.Context(), req.EmployeeID, req.Year, time.Month(req.Month), req.Amount, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bonus payout recorded", result)
}

type saveSchemeRequest struct {
	EmployeeID string `json:"employee_id"`
	Kind       string `json:"kind"`
	Percent    string `json:"percent"`
	Tiers      []struct {
		Threshold string `json:"threshold"`
		Percent   string `json:"percent"`
	} `json:"tiers"`
}

// SaveScheme implements BonusHandler.
func (h *BonusHandlerImpl) SaveScheme(w http.ResponseWriter, r *http.Request) {
	var req saveSchemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveScheme decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyID, err := auth.CompanyID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	scheme := bonus.Scheme{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Kind:       bonus.SchemeKind(req.Kind),
	}
	if req.Percent != "" {
		percent, err := decimal.NewFromString(req.Percent)
		if err != nil {
			response.BadRequest(w, "percent must be a number", nil)
			return
		}
		scheme.Percent = percent
	}
	for _, tier := range req.Tiers {
		threshold, err := decimal.NewFromString(tier.Threshold)
		if err != nil {
			response.BadRequest(w, "tier threshold must be a number", nil)
			return
		}
		percent, err := decimal.NewFromString(tier.Percent)
		if err != nil {
			response.BadRequest(w, "tier percent must be a number", nil)
			return
		}
		scheme.Tiers = append(scheme.Tiers, bonus.Tier{Threshold: threshold, Percent: percent})
	}

	saved, err := h.bonusService.SaveScheme(r.Context(), scheme)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, saved)
}

func yearMonthQuery(r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
