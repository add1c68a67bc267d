// internal/api/courts/handlers.go
package courts

import (
	"context"
	"net/http"
	"strconv"
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

const courtsQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

type createCourtRequest struct {
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=soccer basketball volleyball tennis padel other"`
	Description string  `json:"description"`
	Capacity    int64   `json:"capacity" validate:"required,min=1"`
	HourlyPrice float64 `json:"hourly_price" validate:"min=0"`
	Location    string  `json:"location"`
	Notes       string  `json:"notes"`
}

type courtResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Description      string  `json:"description,omitempty"`
	Capacity         int64   `json:"capacity"`
	HourlyPrice      float64 `json:"hourly_price"`
	Status           string  `json:"status"`
	Active           bool    `json:"active"`
	Location         string  `json:"location,omitempty"`
	Notes            string  `json:"notes,omitempty"`
	ReservationCount *int64  `json:"reservation_count,omitempty"`
}

func toCourtResponse(c booking.Court) courtResponse {
	return courtResponse{
		ID:          c.ID,
		Name:        c.Name,
		Type:        string(c.Type),
		Description: c.Description,
		Capacity:    c.Capacity,
		HourlyPrice: c.HourlyPrice,
		Status:      string(c.Status),
		Active:      c.Active,
		Location:    c.Location,
		Notes:       c.Notes,
	}
}

// POST /api/v1/courts
func HandleCreateCourt(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	var req createCourtRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteValidationError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apiutil.WriteValidationError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := svc.CreateCourt(ctx, booking.Court{
		Name:        req.Name,
		Type:        booking.CourtType(req.Type),
		Description: req.Description,
		Capacity:    req.Capacity,
		HourlyPrice: req.HourlyPrice,
		Status:      booking.CourtAvailable,
		Active:      true,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusCreated, toCourtResponse(court))
}

// GET /api/v1/courts
func HandleListCourts(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	courts, err := svc.ListCourts(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	responses := make([]courtResponse, 0, len(courts))
	for _, court := range courts {
		responses = append(responses, toCourtResponse(court))
	}
	apiutil.WriteJSON(w, http.StatusOK, responses)
}

// GET /api/v1/courts/{id}
func HandleGetCourt(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid court id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	detail, err := svc.GetCourt(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	response := toCourtResponse(detail.Court)
	response.ReservationCount = &detail.ReservationCount
	apiutil.WriteJSON(w, http.StatusOK, response)
}

// POST /api/v1/courts/{id}/maintenance
func HandleSetMaintenance(w http.ResponseWriter, r *http.Request) {
	handleSetStatus(w, r, booking.CourtMaintenance)
}

// POST /api/v1/courts/{id}/available
func HandleSetAvailable(w http.ResponseWriter, r *http.Request) {
	handleSetStatus(w, r, booking.CourtAvailable)
}

// POST /api/v1/courts/{id}/inactive
func HandleSetInactive(w http.ResponseWriter, r *http.Request) {
	handleSetStatus(w, r, booking.CourtInactive)
}

func handleSetStatus(w http.ResponseWriter, r *http.Request, status booking.CourtStatus) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid court id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	if err := svc.SetCourtStatus(ctx, id, status); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	detail, err := svc.GetCourt(ctx, id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, toCourtResponse(detail.Court))
}

func loadService(w http.ResponseWriter, r *http.Request) *booking.Service {
	if service == nil {
		log.Ctx(r.Context()).Error().Msg("Booking service not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return service
}
