package http_handlers

import (
	"context"
	"net/http"

	"github.com/baechuer/identity-service/internal/application/auth"
	"github.com/baechuer/identity-service/internal/domain"
	"github.com/baechuer/identity-service/internal/transport/http/dto"
	"github.com/baechuer/identity-service/internal/transport/http/middleware"
	"github.com/baechuer/identity-service/internal/transport/http/response"
)

// IdentityService is the slice of auth.Service the HTTP layer drives.
type IdentityService interface {
	Register(ctx context.Context, req auth.RegistrationRequest) (auth.RegistrationResult, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.Session, error)
	GetInfo(ctx context.Context, id string) (*domain.Profile, error)
}

type UserHandler struct {
	svc IdentityService
}

func NewUserHandler(svc IdentityService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register handles POST /users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), auth.RegistrationRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	switch res.Outcome {
	case auth.OutcomeCreated:
		view := dto.NewUserView(res.User.Profile())
		response.WriteJSON(w, http.StatusCreated, dto.RegisterResponse{Success: true, Data: &view})
	case auth.OutcomeBlacklisted:
		response.WriteError(w, r, domain.ErrUserBlacklisted())
	case auth.OutcomeDuplicate:
		response.WriteJSON(w, http.StatusConflict, dto.RegisterResponse{Success: false, Message: res.Message})
	default:
		response.WriteError(w, r, domain.ErrInternal(nil))
	}
}

// Login handles POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	session, err := h.svc.Login(r.Context(), auth.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	switch s := session.(type) {
	case auth.Authenticated:
		response.WriteJSON(w, http.StatusOK, dto.NewLoginResponse(s))
	default:
		response.WriteError(w, r, domain.ErrInvalidCredentials())
	}
}

// Me handles GET /users/me (behind the Auth middleware).
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	p, err := h.svc.GetInfo(r.Context(), uid)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if p == nil {
		response.WriteError(w, r, domain.ErrUserNotFound())
		return
	}

	response.WriteJSON(w, http.StatusOK, dto.NewUserView(*p))
}
