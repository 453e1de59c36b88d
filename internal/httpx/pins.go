package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cercle-be/internal/pin"
	"cercle-be/internal/upload"
	"cercle-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

const maxUploadSize = 10 << 20 // 10 MiB

type PinHandler struct {
	pins  pin.Service
	files upload.Store
}

func NewPinHandler(pins pin.Service, files upload.Store) *PinHandler {
	return &PinHandler{pins: pins, files: files}
}

func (h *PinHandler) List(w http.ResponseWriter, r *http.Request) {
	pins, err := h.pins.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPinResponses(pins), http.StatusOK)
}

func (h *PinHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.pins.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPinResponse(p), http.StatusOK)
}

// Create accepts a multipart form: text fields plus the pin image.
func (h *PinHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.WriteJSONError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		utils.WriteJSONError(w, "invalid price", http.StatusBadRequest)
		return
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil {
		stock = 0
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteJSONError(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageRef, err := h.files.Save(header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.pins.Create(r.Context(), &pin.Pin{
		Title:       r.FormValue("title"),
		Price:       price,
		Description: r.FormValue("description"),
		ImageURL:    imageRef,
		Category:    r.FormValue("category"),
		Stock:       stock,
	})
	if err != nil {
		// The row was never written; do not orphan the file.
		_ = h.files.Delete(imageRef)
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPinResponse(p), http.StatusCreated)
}

// Update takes either JSON (field edits) or multipart (field edits plus a
// replacement image).
func (h *PinHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var input pin.UpdateInput

	if err := r.ParseMultipartForm(maxUploadSize); err == nil {
		if v := r.FormValue("title"); v != "" {
			input.Title = &v
		}
		if v := r.FormValue("price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				utils.WriteJSONError(w, "invalid price", http.StatusBadRequest)
				return
			}
			input.Price = &price
		}
		if v := r.FormValue("description"); v != "" {
			input.Description = &v
		}
		if v := r.FormValue("category"); v != "" {
			input.Category = &v
		}
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			imageRef, err := h.files.Save(header.Filename, file)
			if err != nil {
				writeError(w, r, err)
				return
			}
			input.ImageURL = &imageRef
		}
	} else {
		var body struct {
			Title       *string  `json:"title"`
			Price       *float64 `json:"price"`
			Description *string  `json:"description"`
			Category    *string  `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		input.Title = body.Title
		input.Price = body.Price
		input.Description = body.Description
		input.Category = body.Category
	}

	p, err := h.pins.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPinResponse(p), http.StatusOK)
}

func (h *PinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.pins.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PinHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.pins.SetStock(r.Context(), chi.URLParam(r, "id"), body.Stock)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toPinResponse(p), http.StatusOK)
}
