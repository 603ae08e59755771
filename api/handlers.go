package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/Jubris-Knifes/cardbase/models"
	"github.com/Jubris-Knifes/cardbase/service"
	"github.com/gorilla/mux"
)

func (a *API) cardAll(w http.ResponseWriter, r *http.Request) {
	cards, err := a.svc.GetAllCards(r.Context())
	if err != nil {
		a.internalError(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, cards)
}

func (a *API) cardShow(w http.ResponseWriter, r *http.Request) {
	uuid, ok := a.pathVar(w, r, "uuid")
	if !ok {
		return
	}

	card, err := a.svc.GetCardByUUID(r.Context(), uuid)
	if errors.Is(err, service.ErrCardNotFound) {
		a.writeError(w, r, http.StatusNotFound, service.CardNotFoundMessage)
		return
	}
	if err != nil {
		a.internalError(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, card)
}

// cardSearch rejects short names before touching the store.
func (a *API) cardSearch(w http.ResponseWriter, r *http.Request) {
	name, ok := a.pathVar(w, r, "name")
	if !ok {
		return
	}

	var tooShort *service.NameTooShortError
	if err := a.policy.Check(name); errors.As(err, &tooShort) {
		a.log.DebugContext(r.Context(), "search name too short", "name", name)
		a.writeError(w, r, http.StatusNotFound, tooShort.Message)
		return
	}

	cards, err := a.svc.SearchCardsByName(r.Context(), name)
	if errors.Is(err, service.ErrCardNotFound) {
		a.writeError(w, r, http.StatusNotFound, service.CardNotFoundMessage)
		return
	}
	if err != nil {
		a.internalError(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, cards)
}

func (a *API) listCards(w http.ResponseWriter, r *http.Request) {
	cards, err := a.svc.ListCardsBySetCode(r.Context(), r.URL.Query().Get("setCode"))
	if err != nil {
		a.internalError(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, cards)
}

func (a *API) listSetCodes(w http.ResponseWriter, r *http.Request) {
	setCodes, err := a.svc.ListDistinctSetCodes(r.Context())
	if err != nil {
		a.internalError(w, r, err)
		return
	}

	a.writeJSON(w, r, http.StatusOK, setCodes)
}

// pathVar returns the decoded path variable. The router matches escaped
// paths, so mux leaves the value encoded.
func (a *API) pathVar(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	v, err := url.PathUnescape(mux.Vars(r)[key])
	if err != nil {
		a.log.DebugContext(r.Context(), "bad path variable", key, mux.Vars(r)[key], "error", err)
		a.writeError(w, r, http.StatusNotFound, service.CardNotFoundMessage)
		return "", false
	}
	return v, true
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	a.writeJSON(w, r, status, models.ErrorResponse{Error: msg})
}

func (a *API) internalError(w http.ResponseWriter, r *http.Request, err error) {
	a.log.ErrorContext(r.Context(), "request failed",
		"error", err,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
	)
	a.writeError(w, r, http.StatusInternalServerError, service.InternalErrorMessage)
}
