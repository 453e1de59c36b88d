package httpx

import (
	"encoding/json"
	"net/http"

	"cercle-be/internal/order"
	"cercle-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var body struct {
		Items []struct {
			PinID    string `json:"pinId"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	items := make([]order.NewItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, order.NewItem{PinID: item.PinID, Quantity: item.Quantity})
	}

	o, err := h.orders.Create(r.Context(), userID, items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toOrderResponse(o), http.StatusCreated)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.orders.ListMine(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toOrderResponses(orders), http.StatusOK)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var body struct {
		Items []struct {
			Title    string `json:"title"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	edits := make([]order.QuantityEdit, 0, len(body.Items))
	for _, item := range body.Items {
		edits = append(edits, order.QuantityEdit{Title: item.Title, Quantity: item.Quantity})
	}

	o, err := h.orders.Update(r.Context(), userID, chi.URLParam(r, "id"), edits)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toOrderResponse(o), http.StatusOK)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.orders.Cancel(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Admin surface.

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toOrderResponses(orders), http.StatusOK)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		utils.WriteJSONError(w, "missing status", http.StatusBadRequest)
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, toOrderResponse(o), http.StatusOK)
}

func (h *OrderHandler) DeleteAny(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteAny(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
