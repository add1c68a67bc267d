// internal/api/users/handlers.go
package users

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/openfield/courtbook/internal/api/apiutil"
	"github.com/openfield/courtbook/internal/contact"
	"github.com/openfield/courtbook/internal/store"
)

var (
	queries     *store.Store
	queriesOnce sync.Once
	validate    = validator.New()
)

const usersQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(st *store.Store) {
	if st == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = st
	})
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// POST /api/v1/users
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	if queries == nil {
		log.Ctx(r.Context()).Error().Msg("Store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req createUserRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteValidationError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apiutil.WriteValidationError(w, err)
		return
	}

	phone, err := contact.NormalizePhone(req.Phone)
	if err != nil {
		apiutil.WriteValidationError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usersQueryTimeout)
	defer cancel()

	user, err := queries.InsertUser(ctx, req.Name, req.Email, phone)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusCreated, userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	})
}
