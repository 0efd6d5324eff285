package http

import (
	"encoding/json"
	"net/http"

	"tally/internal/domain/user"
	"tally/internal/shared/auth"
)

type UserHandler struct {
	userRepo user.Repository
	jwt      *auth.JWT
}

func NewUserHandler(userRepo user.Repository, jwt *auth.JWT) *UserHandler {
	return &UserHandler{userRepo: userRepo, jwt: jwt}
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type UpdateUserResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token,omitempty"`
}

// HandleMe serves the authenticated user's profile.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getMe(w, r)
	case http.MethodPut:
		h.updateMe(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *UserHandler) getMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if u == nil {
		writeDomainError(w, user.ErrUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) updateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := user.UpdateUserParams{
		Name:  req.Name,
		Email: req.Email,
	}

	if req.Password != nil {
		if len(*req.Password) < 6 {
			http.Error(w, "Password must be at least 6 characters", http.StatusBadRequest)
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}
		params.PasswordHash = &hash
	}

	updated, err := h.userRepo.Update(r.Context(), userID, params)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := UpdateUserResponse{User: updated}

	// The email is baked into the token claims, so a changed email needs a
	// fresh token.
	if req.Email != nil {
		token, err := h.jwt.Generate(updated.ID, updated.Email)
		if err != nil {
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}
		setAuthCookie(w, r, token)
		resp.Token = token
	}

	writeJSON(w, http.StatusOK, resp)
}
