package httpx

import (
	"encoding/json"
	"net/http"

	"cercle-be/internal/user"
	"cercle-be/internal/utils"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, u, err := h.users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"token": token,
		"user":  toUserResponse(u),
	}, http.StatusOK)
}

// Logout is a no-op server side; the JWT is stateless and simply dropped
// by the client.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	u, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toUserResponse(u), http.StatusOK)
}

func (h *AuthHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		utils.WriteJSONError(w, "missing token", http.StatusBadRequest)
		return
	}

	if err := h.users.Activate(r.Context(), body.Token); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, map[string]string{"status": "activated"}, http.StatusOK)
}

// RequestPasswordReset always answers 202 so the endpoint cannot be used
// to probe which emails exist.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		utils.WriteJSONError(w, "missing email", http.StatusBadRequest)
		return
	}

	if err := h.users.RequestPasswordReset(r.Context(), body.Email); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
		body.Token == "" || body.Password == "" {
		utils.WriteJSONError(w, "missing token or password", http.StatusBadRequest)
		return
	}

	if err := h.users.ResetPassword(r.Context(), body.Token, body.Password); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, map[string]string{"status": "password updated"}, http.StatusOK)
}
