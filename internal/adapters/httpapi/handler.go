package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

const maxPayloadBytes = 1 << 16

type handler struct {
	app ports.AppProvider
}

type loginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type taskRequest struct {
	Title    string `json:"title"`
	Time     string `json:"time"`
	Priority string `json:"priority"`
}

type purchaseRequest struct {
	ItemID string `json:"item_id"`
}

type startSessionRequest struct {
	Game            string `json:"game"`
	Task            string `json:"task"`
	DurationMinutes int    `json:"duration_minutes"`
}

type purchaseResponse struct {
	Item   domain.StoreItem `json:"item"`
	Wallet *domain.Wallet   `json:"wallet"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON payload")
	}
	return nil
}

func (h *handler) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.Snapshot(r.Context()))
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.app.Login(r.Context(), req.Name, req.Email, req.Password); err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Snapshot(r.Context()))
}

func (h *handler) startTrial(w http.ResponseWriter, r *http.Request) {
	if err := h.app.StartTrial(r.Context()); err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Snapshot(r.Context()))
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Logout(r.Context()); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listTasks returns every task, or the fuzzy matches of ?q= when given.
func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	var (
		tasks []*domain.Task
		err   error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		tasks, err = h.app.SearchTasks(r.Context(), q)
	} else {
		tasks, err = h.app.ListTasks(r.Context())
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": tasks,
		"total": len(tasks),
	})
}

func (h *handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	task, err := h.app.AddTask(r.Context(), req.Title, req.Time, req.Priority)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *handler) editTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	task, err := h.app.EditTask(r.Context(), chi.URLParam(r, "id"), req.Title, req.Time, req.Priority)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.app.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) toggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.app.ToggleTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handler) listStoreItems(w http.ResponseWriter, r *http.Request) {
	items := h.app.Catalog()
	if c := r.URL.Query().Get("category"); c != "" {
		items = items.ByCategory(domain.ItemCategory(c))
	}
	if items == nil {
		items = domain.Catalog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

func (h *handler) purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.app.Catalog().Find(req.ItemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	wallet, err := h.app.Purchase(r.Context(), req.ItemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, purchaseResponse{Item: item, Wallet: wallet})
}

func (h *handler) getReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.app.Report(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	session, err := h.app.StartSession(r.Context(), req.Game, req.Task, req.DurationMinutes)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *handler) finishSession(w http.ResponseWriter, r *http.Request) {
	out, err := h.app.FinishSession(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) restartSession(w http.ResponseWriter, r *http.Request) {
	if err := h.app.RestartSession(r.Context()); err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Snapshot(r.Context()))
}

func (h *handler) cancelSession(w http.ResponseWriter, r *http.Request) {
	if err := h.app.CancelSession(r.Context()); err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.app.Snapshot(r.Context()))
}
