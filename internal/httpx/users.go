package httpx

import (
	"encoding/json"
	"net/http"

	"cercle-be/internal/user"
	"cercle-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// UserHandler covers the admin user-management surface.
type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FirstName string  `json:"firstName"`
		LastName  string  `json:"lastName"`
		MemberID  *string `json:"memberId"`
		Email     *string `json:"email"`
		Password  string  `json:"password"`
		Role      string  `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.CreateUser(r.Context(), user.CreateUserInput{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		MemberID:  body.MemberID,
		Email:     body.Email,
		Password:  body.Password,
		Role:      body.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toUserResponse(u), http.StatusCreated)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toUserResponses(users), http.StatusOK)
}

func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.ChangeRole(r.Context(), chi.URLParam(r, "id"), body.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toUserResponse(u), http.StatusOK)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
