package models

import "encoding/json"

type (
	EventType string

	Envelope[EventData any] struct {
		Type      EventType `json:"type"`
		EventData EventData `json:"event_data"`
	}
	EnvelopeIn struct {
		Type      EventType       `json:"type"`
		EventData json.RawMessage `json:"event_data"`
	}
)

const (
	EventTypeCardRequest  EventType = "card_request"
	EventTypeCardResponse EventType = "card_response"
)

type (
	CardRequestEvent = Envelope[CardRequest]
	CardRequest      struct {
		UUID string `json:"uuid"`
	}

	CardResponseEvent = Envelope[CardResponse]
	CardResponse      struct {
		Card Card `json:"card"`
	}
)

const (
	EventTypeSearchRequest  EventType = "search_request"
	EventTypeSearchResponse EventType = "search_response"
)

type (
	SearchRequestEvent = Envelope[SearchRequest]
	SearchRequest      struct {
		Name string `json:"name"`
	}

	SearchResponseEvent = Envelope[CardsResponse]
)

const (
	EventTypeCardsRequest  EventType = "cards_request"
	EventTypeCardsResponse EventType = "cards_response"
)

type (
	CardsRequestEvent = Envelope[CardsRequest]
	CardsRequest      struct {
		SetCode string `json:"set_code"`
	}

	CardsResponseEvent = Envelope[CardsResponse]
	CardsResponse      struct {
		Cards []Card `json:"cards"`
	}
)

const (
	EventTypeSetCodesRequest  EventType = "set_codes_request"
	EventTypeSetCodesResponse EventType = "set_codes_response"
)

type (
	SetCodesResponseEvent = Envelope[SetCodesResponse]
	SetCodesResponse      struct {
		SetCodes []string `json:"set_codes"`
	}
)

const EventTypeError EventType = "error"

type (
	ErrorEvent = Envelope[Error]
	Error      struct {
		RequestType EventType `json:"request_type"`
		Error       string    `json:"error"`
	}
)
