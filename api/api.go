package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Jubris-Knifes/cardbase/models"
	"github.com/Jubris-Knifes/cardbase/service"
	"github.com/go-openapi/spec"
	"github.com/gorilla/mux"
)

// QueryService is the read side the HTTP layer serves.
type QueryService interface {
	GetAllCards(ctx context.Context) ([]models.Card, error)
	GetCardByUUID(ctx context.Context, uuid string) (models.Card, error)
	SearchCardsByName(ctx context.Context, name string) ([]models.Card, error)
	ListCardsBySetCode(ctx context.Context, setCode string) ([]models.Card, error)
	ListDistinctSetCodes(ctx context.Context) ([]string, error)
}

type API struct {
	svc            QueryService
	policy         service.SearchPolicy
	log            *slog.Logger
	live           http.Handler
	metrics        *Metrics
	allowedOrigins []string
}

type Option func(*API)

// WithLive serves live queries on GET /ws.
func WithLive(h http.Handler) Option {
	return func(a *API) {
		a.live = h
	}
}

// WithAllowedOrigins enables CORS for the given origins. "*" allows any.
func WithAllowedOrigins(origins []string) Option {
	return func(a *API) {
		a.allowedOrigins = origins
	}
}

func New(logger *slog.Logger, svc QueryService, policy service.SearchPolicy, opts ...Option) *API {
	a := &API{
		svc:     svc,
		policy:  policy,
		log:     logger,
		metrics: NewMetrics(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

type route struct {
	method  string
	path    string
	handler http.HandlerFunc
	doc     operationDoc
}

// routes is matched in order: fixed paths precede the {uuid} catch-all.
func (a *API) routes() []route {
	table := []route{
		{
			method:  http.MethodGet,
			path:    "/api/card/all",
			handler: a.cardAll,
			doc: operationDoc{
				ID:        "cardAll",
				Summary:   "Return all cards in the database",
				Responses: []responseDoc{{Status: http.StatusOK, Description: "List all cards", Schema: cardListSchema}},
			},
		},
		{
			method:  http.MethodGet,
			path:    "/api/card/search/{name}",
			handler: a.cardSearch,
			doc: operationDoc{
				ID:      "cardBySearch",
				Summary: "Search cards whose name contains the given text",
				Params:  []*spec.Parameter{pathParam("name", "name of the card")},
				Responses: []responseDoc{
					{Status: http.StatusOK, Description: "Matching cards", Schema: cardListSchema},
					{Status: http.StatusNotFound, Description: "Card not found, or name too short", Schema: errorSchema},
				},
			},
		},
		{
			method:  http.MethodGet,
			path:    "/api/card/{uuid}",
			handler: a.cardShow,
			doc: operationDoc{
				ID:      "cardShow",
				Summary: "Get a card by UUID",
				Params:  []*spec.Parameter{pathParam("uuid", "UUID of the card")},
				Responses: []responseDoc{
					{Status: http.StatusOK, Description: "Show card", Schema: cardSchema},
					{Status: http.StatusNotFound, Description: "Card not found", Schema: errorSchema},
				},
			},
		},
		{
			method:  http.MethodGet,
			path:    "/api/cards",
			handler: a.listCards,
			doc: operationDoc{
				ID:        "listCards",
				Summary:   "List all cards with optional setCode filter",
				Params:    []*spec.Parameter{queryParam("setCode", "The setCode to filter cards by")},
				Responses: []responseDoc{{Status: http.StatusOK, Description: "Returns a list of cards", Schema: cardListSchema}},
			},
		},
		{
			method:  http.MethodGet,
			path:    "/api/set-codes",
			handler: a.listSetCodes,
			doc: operationDoc{
				ID:        "listSetCodes",
				Summary:   "List all available setCodes",
				Responses: []responseDoc{{Status: http.StatusOK, Description: "Returns a list of setCodes", Schema: stringListSchema}},
			},
		},
		{method: http.MethodGet, path: "/api/doc.json", handler: a.apiDoc},
	}

	if a.live != nil {
		table = append(table, route{method: http.MethodGet, path: "/ws", handler: a.live.ServeHTTP})
	}

	return table
}

// Handler builds the router from the route table. Paths are matched escaped
// so a %2F inside a name or uuid stays within its segment.
func (a *API) Handler() http.Handler {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(requestID, a.accessLog, a.metrics.Middleware, cors(a.allowedOrigins))

	for _, rt := range a.routes() {
		r.Handle(rt.path, a.logRoute(rt.path, rt.handler)).
			Methods(rt.method, http.MethodOptions).
			Name(rt.path)
	}

	r.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet).Name("/metrics")

	return r
}

func (a *API) logRoute(name string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.log.InfoContext(r.Context(), "route invoked",
			"route", name,
			"request_id", RequestIDFromContext(r.Context()),
		)
		next(w, r)
	})
}
