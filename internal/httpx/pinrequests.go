package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cercle-be/internal/pinrequest"
	"cercle-be/internal/upload"
	"cercle-be/internal/user"
	"cercle-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type PinRequestHandler struct {
	requests pinrequest.Service
	users    user.Service
	files    upload.Store
}

func NewPinRequestHandler(requests pinrequest.Service, users user.Service, files upload.Store) *PinRequestHandler {
	return &PinRequestHandler{requests: requests, users: users, files: files}
}

// Create accepts a multipart form with the request fields and an optional
// logo file. The requester's name is snapshotted from their account.
func (h *PinRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		utils.WriteJSONError(w, "invalid quantity", http.StatusBadRequest)
		return
	}

	u, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var logoRef string
	if file, header, err := r.FormFile("logo"); err == nil {
		defer file.Close()
		logoRef, err = h.files.Save(header.Filename, file)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	req, err := h.requests.Create(r.Context(), &pinrequest.Request{
		UserID:    userID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Title:     r.FormValue("title"),
		Quantity:  quantity,
		Notes:     r.FormValue("notes"),
		LogoURL:   logoRef,
	})
	if err != nil {
		if logoRef != "" {
			_ = h.files.Delete(logoRef)
		}
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPinRequestResponse(req), http.StatusCreated)
}

func (h *PinRequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	requests, err := h.requests.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPinRequestResponses(requests), http.StatusOK)
}

func (h *PinRequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPinRequestResponses(requests), http.StatusOK)
}

func (h *PinRequestHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
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
	utils.WriteJSON(w, toPinRequestResponse(req), http.StatusOK)
}

func (h *PinRequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.requests.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
