package httpx

import (
	"encoding/json"
	"net/http"

	"cercle-be/internal/penne"
	"cercle-be/internal/user"
	"cercle-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type PenneHandler struct {
	requests penne.Service
	users    user.Service
}

func NewPenneHandler(requests penne.Service, users user.Service) *PenneHandler {
	return &PenneHandler{requests: requests, users: users}
}

func (h *PenneHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var body struct {
		Color      string `json:"color"`
		Trim       string `json:"trim"`
		Embroidery string `json:"embroidery"`
		HeadSize   string `json:"headSize"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	req, err := h.requests.Create(r.Context(), &penne.Request{
		UserID:     userID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Color:      body.Color,
		Trim:       body.Trim,
		Embroidery: body.Embroidery,
		HeadSize:   body.HeadSize,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPenneResponse(req), http.StatusCreated)
}

func (h *PenneHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	requests, err := h.requests.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPenneResponses(requests), http.StatusOK)
}

func (h *PenneHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var body struct {
		Color      *string `json:"color"`
		Trim       *string `json:"trim"`
		Embroidery *string `json:"embroidery"`
		HeadSize   *string `json:"headSize"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req, err := h.requests.Update(r.Context(), userID, chi.URLParam(r, "id"), penne.UpdateInput{
		Color:      body.Color,
		Trim:       body.Trim,
		Embroidery: body.Embroidery,
		HeadSize:   body.HeadSize,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPenneResponse(req), http.StatusOK)
}

func (h *PenneHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPenneResponses(requests), http.StatusOK)
}

func (h *PenneHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req, err := h.requests.SetStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPenneResponse(req), http.StatusOK)
}

func (h *PenneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.requests.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
