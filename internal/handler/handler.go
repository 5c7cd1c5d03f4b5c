// Package handler содержит HTTP-обработчики API сервиса аренды жилья.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dkravets/renthub-system/internal/flow"
	"github.com/dkravets/renthub-system/internal/geo"
	"github.com/dkravets/renthub-system/internal/middleware"
	"github.com/dkravets/renthub-system/internal/model"
	"github.com/dkravets/renthub-system/internal/payment"
	"github.com/dkravets/renthub-system/internal/repository"
	"github.com/dkravets/renthub-system/internal/service"
	"github.com/dkravets/renthub-system/internal/session"
	"github.com/dkravets/renthub-system/internal/validation"
	"github.com/dkravets/renthub-system/internal/wizard"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	SearchListings(ctx context.Context, c model.SearchCriteria, key model.SortKey, desc bool) ([]model.Listing, error)
	GetListing(ctx context.Context, id string) (*model.Listing, error)
	RecordFlowPayment(ctx context.Context, listingID string, purpose model.PaymentPurpose, method model.PaymentMethod, res *model.PaymentResult) error

	AdminListings(ctx context.Context, term string, status model.ListingStatus) ([]model.Listing, error)
	ListingOverview(ctx context.Context) (*service.ListingStats, error)
	CreateListing(ctx context.Context, l model.Listing) (string, error)
	UpdateListing(ctx context.Context, l model.Listing) error
	DeleteListing(ctx context.Context, id string) error

	SearchTenants(ctx context.Context, term string, status model.TenantStatus) ([]model.Tenant, error)
	TenantOverview(ctx context.Context) (*service.TenantStats, error)

	SearchPayments(ctx context.Context, term string, typ model.PaymentType) ([]model.PaymentRecord, error)
	PaymentOverview(ctx context.Context) (*service.PaymentSummary, error)

	Analytics(ctx context.Context) (*service.AnalyticsReport, error)
	Dashboard(ctx context.Context) (*service.DashboardSummary, error)
}

// Handler реализует HTTP-обработчики API сервиса аренды жилья.
type Handler struct {
	service    Service
	flows      *flow.Manager
	geo        geo.Provider
	logger     *zap.Logger
	sessionsMW *middleware.SessionMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, flows *flow.Manager, provider geo.Provider, logger *zap.Logger, sessions *middleware.SessionMiddleware) *Handler {
	return &Handler{
		service:    s,
		flows:      flows,
		geo:        provider,
		logger:     logger,
		sessionsMW: sessions,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return nil, false
	}
	return sess, true
}

func (h *Handler) currentFlow(w http.ResponseWriter, r *http.Request) (*flow.Flow, bool) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return nil, false
	}
	return h.flows.Flow(sess.ID()), true
}

// writeFlowError отображает ошибки сценария на коды HTTP.
func (h *Handler) writeFlowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrListingNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, flow.ErrInvalidTransition),
		errors.Is(err, flow.ErrStaleConfirmation),
		errors.Is(err, flow.ErrNoApplication),
		errors.Is(err, wizard.ErrNotAtReview):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, wizard.ErrStepIncomplete),
		errors.Is(err, wizard.ErrWrongSection),
		errors.Is(err, wizard.ErrConsentRequired):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, flow.ErrUnknownPurpose):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, payment.ErrDeclined), errors.Is(err, payment.ErrUnavailable):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		h.logger.Error("flow operation error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func parseSearchCriteria(r *http.Request) model.SearchCriteria {
	q := r.URL.Query()
	c := model.SearchCriteria{Term: q.Get("q")}

	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		c.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		c.MaxPrice = &v
	}
	if v, err := strconv.Atoi(q.Get("min_sqft")); err == nil {
		c.MinSqft = &v
	}
	if v, err := strconv.Atoi(q.Get("max_sqft")); err == nil {
		c.MaxSqft = &v
	}
	if v, err := strconv.Atoi(q.Get("min_bedrooms")); err == nil {
		c.MinBedrooms = &v
	}
	c.NearMe = q.Get("near_me") == "true"

	return c
}

// ListListings возвращает объявления, отобранные по параметрам запроса.
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	c := parseSearchCriteria(r)
	key := model.SortKey(r.URL.Query().Get("sort"))
	desc := r.URL.Query().Get("order") == "desc"

	listings, err := h.service.SearchListings(r.Context(), c, key, desc)
	if err != nil {
		h.logger.Error("search listings error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, listings)
}

// GetListing возвращает одно объявление по идентификатору.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.service.GetListing(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("get listing error", zap.Error(err), zap.String("id", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, listing)
}

// FlowState возвращает текущее состояние сценария сеанса.
func (h *Handler) FlowState(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

type selectRequest struct {
	ListingID string `json:"listing_id"`
}

// SelectListing переводит сценарий к деталям выбранного объявления.
func (h *Handler) SelectListing(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := fl.SelectListing(r.Context(), req.ListingID); err != nil {
		h.writeFlowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

type paymentRequest struct {
	ListingID string               `json:"listing_id"`
	Purpose   model.PaymentPurpose `json:"purpose"`
}

// RequestPayment переводит сценарий на экран оплаты.
func (h *Handler) RequestPayment(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := fl.RequestPayment(r.Context(), req.ListingID, req.Purpose); err != nil {
		h.writeFlowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

// RequestRental открывает анкету заявки на аренду выбранного объявления.
func (h *Handler) RequestRental(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := fl.RequestRental(r.Context(), req.ListingID); err != nil {
		h.writeFlowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

// AdvanceApplication проверяет данные активного шага анкеты и переходит дальше.
// Тело запроса разбирается по схеме того шага, на котором стоит анкета.
func (h *Handler) AdvanceApplication(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}

	step, err := fl.WizardStep()
	if err != nil {
		h.writeFlowError(w, err)
		return
	}

	var section wizard.Section
	switch step {
	case wizard.StepPersonal:
		var s wizard.Personal
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		section = s
	case wizard.StepEmployment:
		var s wizard.Employment
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		section = s
	case wizard.StepFinancial:
		var s wizard.Financial
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		section = s
	case wizard.StepDocuments:
		var s wizard.Documents
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		section = s
	default:
		http.Error(w, "nothing to advance past the review step", http.StatusConflict)
		return
	}

	if err := fl.AdvanceApplication(section); err != nil {
		h.writeFlowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

// RetreatApplication возвращает анкету на предыдущий шаг.
func (h *Handler) RetreatApplication(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}

	if err := fl.RetreatApplication(); err != nil {
		h.writeFlowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

// SubmitApplication отправляет заполненную анкету и переводит сценарий к оплате аренды.
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}

	var review wizard.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := fl.SubmitApplication(r.Context(), review); err != nil {
		h.writeFlowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

type payRequest struct {
	Method     model.PaymentMethod `json:"method"`
	CardNumber string              `json:"card_number,omitempty"`
	Expiry     string              `json:"expiry,omitempty"`
	CVV        string              `json:"cvv,omitempty"`
}

// Pay выполняет платёж на экране оплаты. Для карты реквизиты проверяются
// до обращения к шлюзу: номер по алгоритму Луна, срок действия и CVV по формату.
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	switch req.Method {
	case model.MethodCard:
		if !validation.IsValidCardNumber(req.CardNumber) ||
			!validation.IsValidExpiry(req.Expiry) ||
			!validation.IsValidCVV(req.CVV) {
			http.Error(w, "invalid card details", http.StatusUnprocessableEntity)
			return
		}
	case model.MethodPayPal:
	default:
		http.Error(w, "unknown payment method", http.StatusBadRequest)
		return
	}

	done, err := fl.CompletePayment(r.Context(), req.Method)
	if err != nil {
		h.writeFlowError(w, err)
		return
	}

	// Запись в журнал идёт по данным самого списания: снимок состояния
	// к этому моменту мог уже смениться другим запросом сеанса.
	if err := h.service.RecordFlowPayment(r.Context(), done.ListingID, done.Purpose, req.Method, done.Result); err != nil {
		h.logger.Error("record payment error", zap.Error(err), zap.String("listing", done.ListingID))
	}

	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

// Back возвращает сценарий с экрана оплаты или анкеты к деталям объявления.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}

	if err := fl.ReturnToDetails(); err != nil {
		h.writeFlowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

// Reset возвращает сценарий к списку объявлений.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	fl, ok := h.currentFlow(w, r)
	if !ok {
		return
	}

	if err := fl.ReturnToBrowsing(); err != nil {
		h.writeFlowError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, fl.Snapshot())
}

type locateResponse struct {
	Position *geo.Position `json:"position,omitempty"`
	Notice   string        `json:"notice,omitempty"`
}

// Locate определяет координаты пользователя и сохраняет их в сеансе.
// Отказ геолокации не является ошибкой запроса: клиент получает
// закрываемое уведомление и продолжает просмотр всех объявлений.
func (h *Handler) Locate(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	pos, err := h.geo.CurrentPosition(r.Context())
	if err != nil {
		var notice string
		switch {
		case errors.Is(err, geo.ErrPermissionDenied):
			notice = "Location access denied. You can still browse all listings."
		case errors.Is(err, geo.ErrPositionUnavailable):
			notice = "Location is unavailable right now. Showing all listings."
		case errors.Is(err, geo.ErrTimeout):
			notice = "Location request timed out. Showing all listings."
		default:
			notice = "Could not determine your location. Showing all listings."
		}
		h.writeJSON(w, http.StatusOK, locateResponse{Notice: notice})
		return
	}

	sess.SetLocation(pos)
	h.writeJSON(w, http.StatusOK, locateResponse{Position: &pos})
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login открывает сеансу доступ к панели администратора.
// Реальной проверки учётных данных нет: принимается любая непустая пара.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess.SetPrivileged(true)
	w.WriteHeader(http.StatusOK)
}

// QuickLogin открывает доступ к панели администратора без учётных данных.
func (h *Handler) QuickLogin(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	sess.SetPrivileged(true)
	w.WriteHeader(http.StatusOK)
}
