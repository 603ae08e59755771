package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Jubris-Knifes/cardbase/config"
	"github.com/Jubris-Knifes/cardbase/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCards = []models.Card{
	{UUID: "A1", Name: "Bolt", Text: `Deal 3\ndamage`, SetCode: "M10"},
	{UUID: "B2", Name: "Shock", Text: "Deal 2 damage", SetCode: "M10"},
}

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/card/all":
			reply(w, http.StatusOK, testCards)
		case r.URL.Path == "/api/set-codes":
			reply(w, http.StatusOK, []string{"M10"})
		case r.URL.Path == "/api/cards":
			if code := r.URL.Query().Get("setCode"); code != "" && code != "M10" {
				reply(w, http.StatusOK, []models.Card{})
				return
			}
			reply(w, http.StatusOK, testCards)
		case r.URL.Path == "/api/card/search/Shock":
			reply(w, http.StatusOK, testCards[1:])
		case strings.HasPrefix(r.URL.Path, "/api/card/search/"):
			reply(w, http.StatusNotFound, models.ErrorResponse{Error: "Card not found"})
		case r.URL.Path == "/api/card/A1":
			reply(w, http.StatusOK, testCards[0])
		case r.URL.Path == "/api/card/BROKEN":
			reply(w, http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		default:
			reply(w, http.StatusNotFound, models.ErrorResponse{Error: "Card not found"})
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	srv := newFakeAPI(t)

	root := NewRootCmd(config.Client{BaseURL: srv.URL, TimeoutMilliseconds: 2000})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAllCommand(t *testing.T) {
	out, err := run(t, "all")
	require.NoError(t, err)
	assert.Contains(t, out, "Bolt [M10] A1")
	assert.Contains(t, out, "Shock [M10] B2")
	assert.Contains(t, out, "2 card(s)")
}

func TestCardCommandUnescapesText(t *testing.T) {
	out, err := run(t, "card", "A1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bolt [M10] A1\n    Deal 3\n    damage\n")
}

func TestCardCommandJSON(t *testing.T) {
	out, err := run(t, "--json", "card", "A1")
	require.NoError(t, err)

	var card models.Card
	require.NoError(t, json.Unmarshal([]byte(out), &card))
	assert.Equal(t, "Deal 3\ndamage", card.Text)
}

func TestCardCommandNotFound(t *testing.T) {
	out, err := run(t, "card", "Z9")
	require.NoError(t, err)
	assert.Equal(t, "no card found\n", out)

	out, err = run(t, "--json", "card", "Z9")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func TestCardCommandServerError(t *testing.T) {
	_, err := run(t, "card", "BROKEN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "internal server error")
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, "search", "Shock")
	require.NoError(t, err)
	assert.Contains(t, out, "Shock [M10] B2")
	assert.Contains(t, out, "1 card(s)")

	out, err = run(t, "search", "xyz")
	require.NoError(t, err)
	assert.Equal(t, "no card found\n", out)
}

func TestSetCodesCommand(t *testing.T) {
	out, err := run(t, "set-codes")
	require.NoError(t, err)
	assert.Equal(t, "M10\n", out)
}

func TestCardsCommand(t *testing.T) {
	out, err := run(t, "cards", "--set", "M10")
	require.NoError(t, err)
	assert.Contains(t, out, "2 card(s)")

	out, err = run(t, "cards", "-s", "LEA")
	require.NoError(t, err)
	assert.Equal(t, "0 card(s)\n", out)
}

func TestArgsValidation(t *testing.T) {
	_, err := run(t, "card")
	assert.Error(t, err)

	_, err = run(t, "all", "extra")
	assert.Error(t, err)
}
