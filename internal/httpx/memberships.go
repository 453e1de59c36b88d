package httpx

import (
	"encoding/json"
	"net/http"

	"cercle-be/internal/membership"
	"cercle-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type MembershipHandler struct {
	cards membership.Service
}

func NewMembershipHandler(cards membership.Service) *MembershipHandler {
	return &MembershipHandler{cards: cards}
}

// Upsert assigns or replaces a user's card for a given year (admin).
func (h *MembershipHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Year int    `json:"year"`
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	card, err := h.cards.UpsertCard(r.Context(), chi.URLParam(r, "id"), body.Year, body.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toCardResponse(card), http.StatusOK)
}

func (h *MembershipHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.ListCards(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toCardResponses(cards), http.StatusOK)
}

func (h *MembershipHandler) DeleteForUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Year int `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.cards.DeleteCard(r.Context(), chi.URLParam(r, "id"), body.Year); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MembershipHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	cards, err := h.cards.ListCards(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toCardResponses(cards), http.StatusOK)
}

// IssueToken hands the card holder a short-lived signed token to render
// as a QR code.
func (h *MembershipHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var body struct {
		Year int `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.cards.IssueToken(r.Context(), userID, body.Year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, map[string]string{"token": token}, http.StatusOK)
}

// Verify is the scanner-side check: signature, expiry, then the stored
// card itself.
func (h *MembershipHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		var body struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			token = body.Token
		}
	}
	if token == "" {
		utils.WriteJSONError(w, "missing token", http.StatusBadRequest)
		return
	}

	card, err := h.cards.VerifyToken(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, map[string]interface{}{
		"valid": true,
		"card":  toCardResponse(card),
	}, http.StatusOK)
}
