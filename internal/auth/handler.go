package auth

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/salesops/internal/transport"
	"github.com/frahmantamala/salesops/pkg/logger"
)

type ServiceAPI interface {
	LoginSuperadmin(dto SuperadminLoginDTO) (*LoginResponse, error)
	LoginAdmin(dto AdminLoginDTO) (*LoginResponse, error)
	LoginEmployee(dto EmployeeLoginDTO) (*LoginResponse, error)
	Authenticate(tokenString string) (Principal, error)
	CheckToken(tokenString string) error
	ChangePassword(p Principal, dto ChangePasswordDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidCredentials:
		h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case ErrInvalidToken, ErrTokenExpired:
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
	case ErrTokenRevoked:
		h.WriteError(w, http.StatusUnauthorized, "token is invalid or blacklisted")
	case ErrSessionNotActive:
		h.WriteError(w, http.StatusUnauthorized, "token is invalid or expired")
	default:
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) LoginSuperadmin(w http.ResponseWriter, r *http.Request) {
	var dto SuperadminLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.LoginSuperadmin(dto)
	if err != nil {
		h.Logger.Warn("superadmin login failed", "error", err)
		h.writeAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var dto AdminLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.LoginAdmin(dto)
	if err != nil {
		h.Logger.Warn("admin login failed", "error", err)
		h.writeAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) LoginEmployee(w http.ResponseWriter, r *http.Request) {
	var dto EmployeeLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.LoginEmployee(dto)
	if err != nil {
		h.Logger.Warn("employee login failed", "error", err)
		h.writeAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// CheckToken is polled by the dashboard to detect server-side revocation
// before the next mutating request fails.
func (h *Handler) CheckToken(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	if err := h.Service.CheckToken(token); err != nil {
		h.writeAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Token is valid"})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(p, dto); err != nil {
		switch err.(type) {
		case ValidationError:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			if err == ErrInvalidCredentials {
				h.WriteError(w, http.StatusUnauthorized, "invalid old password")
				return
			}
			h.Logger.Error("change password failed", "error", err, "principal_id", p.ID)
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// AuthMiddleware is the request gate: bearer extraction, signature and
// expiry verification, blacklist and session-ledger cross-checks, then the
// principal is attached to the context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		p, err := h.Service.Authenticate(token)
		if err != nil {
			h.Logger.Warn("gate rejected token", "error", err)
			h.writeAuthError(w, err)
			return
		}

		ctx := ContextWithPrincipal(r.Context(), p)
		ctx = logger.With(ctx, "role", string(p.Role), "principal_id", p.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route group on the authenticated principal's role.
func RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeRoleError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeRoleError(w, http.StatusForbidden, "forbidden: insufficient permissions")
		})
	}
}

// writeRoleError mirrors BaseHandler.WriteError's shape; RequireRole is
// package-level so it carries no handler.
func writeRoleError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    status,
		"message": message,
	})
}
