// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/openfield/courtbook/internal/api/apiutil"
	"github.com/openfield/courtbook/internal/booking"
)

var (
	service     *booking.Service
	serviceOnce sync.Once
	validate    = validator.New()
)

const reservationsQueryTimeout = 5 * time.Second

const defaultPageSize = 20

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

type createReservationRequest struct {
	CourtID   int64     `json:"court_id" validate:"required"`
	UserID    int64     `json:"user_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Notes     string    `json:"notes"`
	CompanyID int64     `json:"company_id"`
	Confirm   bool      `json:"confirm"`
}

type reservationResponse struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	CourtID       int64     `json:"court_id"`
	UserID        int64     `json:"user_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationHours float64   `json:"duration_hours"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CompanyID     int64     `json:"company_id,omitempty"`
}

func toReservationResponse(r booking.Reservation) reservationResponse {
	return reservationResponse{
		ID:            r.ID,
		Reference:     r.Reference,
		CourtID:       r.CourtID,
		UserID:        r.UserID,
		StartTime:     r.Start,
		EndTime:       r.End,
		DurationHours: r.DurationHours,
		TotalPrice:    r.TotalPrice,
		Status:        string(r.Status),
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		CompanyID:     r.CompanyID,
	}
}

// POST /api/v1/reservations
func HandleCreateReservation(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	var req createReservationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteValidationError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apiutil.WriteValidationError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	reservation, err := svc.CreateReservation(ctx, booking.CreateParams{
		CourtID:   req.CourtID,
		UserID:    req.UserID,
		Start:     req.StartTime,
		End:       req.EndTime,
		Notes:     req.Notes,
		CompanyID: req.CompanyID,
		Confirm:   req.Confirm,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusCreated, toReservationResponse(reservation))
}

// GET /api/v1/reservations?user_id=&from=&to=&limit=&offset=
func HandleListReservations(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	params, err := listParamsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	reservations, err := svc.ListReservations(ctx, params)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	responses := make([]reservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		responses = append(responses, toReservationResponse(reservation))
	}
	apiutil.WriteJSON(w, http.StatusOK, responses)
}

// GET /api/v1/reservations/{id}
func HandleGetReservation(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	id, ok := reservationID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	reservation, err := svc.GetReservation(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, toReservationResponse(reservation))
}

// POST /api/v1/reservations/{id}/confirm
func HandleConfirm(w http.ResponseWriter, r *http.Request) {
	handleTransition(w, r, (*booking.Service).Confirm)
}

// POST /api/v1/reservations/{id}/start
func HandleStart(w http.ResponseWriter, r *http.Request) {
	handleTransition(w, r, (*booking.Service).Start)
}

// POST /api/v1/reservations/{id}/complete
func HandleComplete(w http.ResponseWriter, r *http.Request) {
	handleTransition(w, r, (*booking.Service).Complete)
}

// POST /api/v1/reservations/{id}/cancel
func HandleCancel(w http.ResponseWriter, r *http.Request) {
	handleTransition(w, r, (*booking.Service).Cancel)
}

// POST /api/v1/reservations/{id}/revert
func HandleRevert(w http.ResponseWriter, r *http.Request) {
	handleTransition(w, r, (*booking.Service).RevertToDraft)
}

func handleTransition(w http.ResponseWriter, r *http.Request, action func(*booking.Service, context.Context, int64) (booking.Reservation, error)) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	id, ok := reservationID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	reservation, err := action(svc, ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, toReservationResponse(reservation))
}

func reservationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid reservation id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func listParamsFromQuery(r *http.Request) (booking.ListParams, error) {
	params := booking.ListParams{Limit: defaultPageSize}
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("user_id")); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return booking.ListParams{}, errInvalidQuery("user_id")
		}
		params.UserID = userID
	}
	if raw := strings.TrimSpace(query.Get("from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return booking.ListParams{}, errInvalidQuery("from")
		}
		params.From = from
	}
	if raw := strings.TrimSpace(query.Get("to")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return booking.ListParams{}, errInvalidQuery("to")
		}
		params.To = to
	}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 {
			return booking.ListParams{}, errInvalidQuery("limit")
		}
		params.Limit = limit
	}
	if raw := strings.TrimSpace(query.Get("offset")); raw != "" {
		offset, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || offset < 0 {
			return booking.ListParams{}, errInvalidQuery("offset")
		}
		params.Offset = offset
	}

	return params, nil
}

type queryError string

func errInvalidQuery(field string) error { return queryError(field) }

func (e queryError) Error() string { return "invalid query parameter: " + string(e) }

func loadService(w http.ResponseWriter, r *http.Request) *booking.Service {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return service
}
