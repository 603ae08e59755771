package service

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Jubris-Knifes/cardbase/models"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLiveConn(t *testing.T, store *fakeStore) *websocket.Conn {
	t.Helper()

	live := NewLive(discardLogger, New(discardLogger, store), DefaultSearchPolicy(), melody.New())
	srv := httptest.NewServer(live)
	t.Cleanup(func() {
		live.Close()
		srv.Close()
	})

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, request string) models.EnvelopeIn {
	t.Helper()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(request)))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope models.EnvelopeIn
	require.NoError(t, json.Unmarshal(payload, &envelope))
	return envelope
}

func decodeEvent[T any](t *testing.T, envelope models.EnvelopeIn) T {
	t.Helper()

	var data T
	require.NoError(t, json.Unmarshal(envelope.EventData, &data))
	return data
}

func TestLiveCardRequest(t *testing.T) {
	conn := newLiveConn(t, &fakeStore{cards: []models.Card{bolt, shock}})

	reply := roundTrip(t, conn, `{"type":"card_request","event_data":{"uuid":"A1"}}`)
	require.Equal(t, models.EventTypeCardResponse, reply.Type)
	assert.Equal(t, bolt, decodeEvent[models.CardResponse](t, reply).Card)

	reply = roundTrip(t, conn, `{"type":"card_request","event_data":{"uuid":"Z9"}}`)
	require.Equal(t, models.EventTypeError, reply.Type)
	assert.Equal(t, models.Error{
		RequestType: models.EventTypeCardRequest,
		Error:       CardNotFoundMessage,
	}, decodeEvent[models.Error](t, reply))
}

func TestLiveSearchRequest(t *testing.T) {
	store := &fakeStore{cards: []models.Card{bolt, shock}}
	conn := newLiveConn(t, store)

	reply := roundTrip(t, conn, `{"type":"search_request","event_data":{"name":"Sho"}}`)
	require.Equal(t, models.EventTypeSearchResponse, reply.Type)
	assert.Equal(t, []models.Card{shock}, decodeEvent[models.CardsResponse](t, reply).Cards)

	reply = roundTrip(t, conn, `{"type":"search_request","event_data":{"name":"xyz"}}`)
	require.Equal(t, models.EventTypeError, reply.Type)
	assert.Equal(t, CardNotFoundMessage, decodeEvent[models.Error](t, reply).Error)

	callsBefore := store.calls.Load()
	reply = roundTrip(t, conn, `{"type":"search_request","event_data":{"name":"zz"}}`)
	require.Equal(t, models.EventTypeError, reply.Type)
	assert.Equal(t, "Le mot n'est pas assez long", decodeEvent[models.Error](t, reply).Error)
	assert.Equal(t, callsBefore, store.calls.Load())
}

func TestLiveCardsAndSetCodesRequests(t *testing.T) {
	conn := newLiveConn(t, &fakeStore{cards: []models.Card{bolt, shock, giant}})

	reply := roundTrip(t, conn, `{"type":"cards_request","event_data":{"set_code":"LEA"}}`)
	require.Equal(t, models.EventTypeCardsResponse, reply.Type)
	assert.Equal(t, []models.Card{giant}, decodeEvent[models.CardsResponse](t, reply).Cards)

	reply = roundTrip(t, conn, `{"type":"cards_request"}`)
	require.Equal(t, models.EventTypeCardsResponse, reply.Type)
	assert.Len(t, decodeEvent[models.CardsResponse](t, reply).Cards, 3)

	reply = roundTrip(t, conn, `{"type":"set_codes_request"}`)
	require.Equal(t, models.EventTypeSetCodesResponse, reply.Type)
	assert.ElementsMatch(t, []string{"M10", "LEA"}, decodeEvent[models.SetCodesResponse](t, reply).SetCodes)
}

func TestLiveMalformedAndUnknownRequests(t *testing.T) {
	conn := newLiveConn(t, &fakeStore{})

	reply := roundTrip(t, conn, `not json`)
	require.Equal(t, models.EventTypeError, reply.Type)
	assert.Equal(t, invalidEventMessage, decodeEvent[models.Error](t, reply).Error)

	reply = roundTrip(t, conn, `{"type":"card_request","event_data":"A1"}`)
	require.Equal(t, models.EventTypeError, reply.Type)
	assert.Equal(t, invalidEventMessage, decodeEvent[models.Error](t, reply).Error)

	reply = roundTrip(t, conn, `{"type":"delete_everything"}`)
	require.Equal(t, models.EventTypeError, reply.Type)
	assert.Equal(t, models.Error{
		RequestType: "delete_everything",
		Error:       unknownRequestMessage,
	}, decodeEvent[models.Error](t, reply))
}

func TestLiveStoreFailureIsGeneric(t *testing.T) {
	conn := newLiveConn(t, &fakeStore{err: errors.New("database is locked")})

	reply := roundTrip(t, conn, `{"type":"set_codes_request"}`)
	require.Equal(t, models.EventTypeError, reply.Type)
	assert.Equal(t, InternalErrorMessage, decodeEvent[models.Error](t, reply).Error)
}
