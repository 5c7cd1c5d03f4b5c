package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dkravets/renthub-system/internal/model"
	"github.com/dkravets/renthub-system/internal/repository"
	"github.com/dkravets/renthub-system/internal/service"
)

type apartmentsResponse struct {
	Stats    *service.ListingStats `json:"stats"`
	Listings []model.Listing       `json:"listings"`
}

// AdminApartments возвращает объявления со сводкой для панели администратора.
func (h *Handler) AdminApartments(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	status := model.ListingStatus(r.URL.Query().Get("status"))

	listings, err := h.service.AdminListings(r.Context(), term, status)
	if err != nil {
		h.logger.Error("admin listings error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	stats, err := h.service.ListingOverview(r.Context())
	if err != nil {
		h.logger.Error("listing overview error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, apartmentsResponse{Stats: stats, Listings: listings})
}

// CreateApartment добавляет новое объявление.
func (h *Handler) CreateApartment(w http.ResponseWriter, r *http.Request) {
	var l model.Listing
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if l.Title == "" || l.Price <= 0 {
		http.Error(w, "title and positive price are required", http.StatusUnprocessableEntity)
		return
	}

	id, err := h.service.CreateListing(r.Context(), l)
	if err != nil {
		h.logger.Error("create listing error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateApartment заменяет данные объявления.
func (h *Handler) UpdateApartment(w http.ResponseWriter, r *http.Request) {
	var l model.Listing
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	l.ID = chi.URLParam(r, "id")

	if err := h.service.UpdateListing(r.Context(), l); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("update listing error", zap.Error(err), zap.String("id", l.ID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteApartment удаляет объявление.
func (h *Handler) DeleteApartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteListing(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("delete listing error", zap.Error(err), zap.String("id", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

type tenantsResponse struct {
	Stats   *service.TenantStats `json:"stats"`
	Tenants []model.Tenant       `json:"tenants"`
}

// AdminTenants возвращает арендаторов со сводкой для панели администратора.
func (h *Handler) AdminTenants(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	status := model.TenantStatus(r.URL.Query().Get("status"))

	tenants, err := h.service.SearchTenants(r.Context(), term, status)
	if err != nil {
		h.logger.Error("search tenants error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	stats, err := h.service.TenantOverview(r.Context())
	if err != nil {
		h.logger.Error("tenant overview error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, tenantsResponse{Stats: stats, Tenants: tenants})
}

type paymentsResponse struct {
	Summary  *service.PaymentSummary `json:"summary"`
	Payments []model.PaymentRecord   `json:"payments"`
}

// AdminPayments возвращает журнал платежей с агрегатами.
func (h *Handler) AdminPayments(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	typ := model.PaymentType(r.URL.Query().Get("type"))

	payments, err := h.service.SearchPayments(r.Context(), term, typ)
	if err != nil {
		h.logger.Error("search payments error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	summary, err := h.service.PaymentOverview(r.Context())
	if err != nil {
		h.logger.Error("payment overview error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, paymentsResponse{Summary: summary, Payments: payments})
}

// AdminAnalytics возвращает отчёт по выручке и заполняемости.
func (h *Handler) AdminAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Analytics(r.Context())
	if err != nil {
		h.logger.Error("analytics error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// AdminDashboard возвращает сводку главного экрана панели администратора.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("dashboard error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}
