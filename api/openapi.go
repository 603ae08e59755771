package api

import (
	"net/http"

	"github.com/go-openapi/spec"
)

type operationDoc struct {
	ID        string
	Summary   string
	Params    []*spec.Parameter
	Responses []responseDoc
}

type responseDoc struct {
	Status      int
	Description string
	Schema      *spec.Schema
}

const cardTag = "Card"

var (
	cardSchema       = spec.RefSchema("#/definitions/Card")
	cardListSchema   = spec.ArrayProperty(cardSchema)
	stringListSchema = spec.ArrayProperty(spec.StringProperty())
	errorSchema      = spec.RefSchema("#/definitions/Error")
)

func pathParam(name, description string) *spec.Parameter {
	return spec.PathParam(name).Typed("string", "").WithDescription(description)
}

func queryParam(name, description string) *spec.Parameter {
	return spec.QueryParam(name).Typed("string", "").WithDescription(description)
}

// swagger documents every route that carries an operationDoc. Any route can
// fail with a 500.
func (a *API) swagger() *spec.Swagger {
	doc := &spec.Swagger{SwaggerProps: spec.SwaggerProps{
		Swagger:  "2.0",
		Info:     &spec.Info{InfoProps: spec.InfoProps{Title: "Card API", Version: "1.0.0"}},
		Produces: []string{"application/json"},
		Tags:     []spec.Tag{spec.NewTag(cardTag, "Routes for all about cards", nil)},
		Paths:    &spec.Paths{Paths: map[string]spec.PathItem{}},
		Definitions: spec.Definitions{
			"Card": *new(spec.Schema).
				Typed("object", "").
				SetProperty("uuid", *spec.StringProperty()).
				SetProperty("name", *spec.StringProperty()).
				SetProperty("text", *spec.StringProperty()).
				SetProperty("setCode", *spec.StringProperty()).
				WithRequired("uuid", "name", "text", "setCode"),
			"Error": *new(spec.Schema).
				Typed("object", "").
				SetProperty("error", *spec.StringProperty()).
				WithRequired("error"),
		},
	}}

	for _, rt := range a.routes() {
		if rt.doc.Summary == "" || rt.method != http.MethodGet {
			continue
		}

		op := spec.NewOperation(rt.doc.ID).
			WithSummary(rt.doc.Summary).
			WithTags(cardTag)
		for _, p := range rt.doc.Params {
			op.AddParam(p)
		}
		for _, r := range rt.doc.Responses {
			op.RespondsWith(r.Status, spec.NewResponse().WithDescription(r.Description).WithSchema(r.Schema))
		}
		op.RespondsWith(http.StatusInternalServerError,
			spec.NewResponse().WithDescription("Store failure").WithSchema(errorSchema))

		doc.Paths.Paths[rt.path] = spec.PathItem{PathItemProps: spec.PathItemProps{Get: op}}
	}

	return doc
}

func (a *API) apiDoc(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, http.StatusOK, a.swagger())
}
