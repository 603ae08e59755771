package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jubris-Knifes/cardbase/models"
	"github.com/olahol/melody"
)

const (
	CardNotFoundMessage   = "Card not found"
	InternalErrorMessage  = "internal server error"
	invalidEventMessage   = "invalid event data"
	unknownRequestMessage = "unknown request type"

	liveQueryTimeout = 5 * time.Second
)

// Live answers card queries sent over websocket sessions. Every request
// envelope gets exactly one reply on the session that sent it.
type Live struct {
	svc    *Service
	policy SearchPolicy
	m      *melody.Melody
	log    *slog.Logger
}

func NewLive(logger *slog.Logger, svc *Service, policy SearchPolicy, m *melody.Melody) *Live {
	l := &Live{
		svc:    svc,
		policy: policy,
		m:      m,
		log:    logger,
	}

	m.HandleConnect(l.NewConnection)
	m.HandleDisconnect(l.ClosedConnection)
	m.HandleMessage(l.HandleMessage)
	m.HandleMessageBinary(l.HandleMessage)

	return l
}

func (l *Live) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := l.m.HandleRequest(w, r); err != nil {
		l.log.ErrorContext(r.Context(), "failed to handle live query session", "error", err)
	}
}

func (l *Live) Close() error {
	return l.m.Close()
}

func (l *Live) NewConnection(session *melody.Session) {
	l.log.InfoContext(session.Request.Context(),
		"live query session opened",
		"remote_address", session.RemoteAddr().String(),
	)
}

func (l *Live) ClosedConnection(session *melody.Session) {
	l.log.InfoContext(session.Request.Context(),
		"live query session closed",
		"remote_address", session.RemoteAddr().String(),
	)
}

func (l *Live) HandleMessage(session *melody.Session, msg []byte) {
	ctx, cancel := context.WithTimeout(session.Request.Context(), liveQueryTimeout)
	defer cancel()

	var envelope models.EnvelopeIn
	if err := json.Unmarshal(msg, &envelope); err != nil {
		l.log.ErrorContext(ctx, "failed to unmarshal message", "error", err)
		l.reply(ctx, session, errorEvent("", invalidEventMessage))
		return
	}

	l.log.DebugContext(ctx, "live query received", "type", envelope.Type)

	switch envelope.Type {
	case models.EventTypeCardRequest:
		l.reply(ctx, session, l.handleCardRequest(ctx, envelope.EventData))
	case models.EventTypeSearchRequest:
		l.reply(ctx, session, l.handleSearchRequest(ctx, envelope.EventData))
	case models.EventTypeCardsRequest:
		l.reply(ctx, session, l.handleCardsRequest(ctx, envelope.EventData))
	case models.EventTypeSetCodesRequest:
		l.reply(ctx, session, l.handleSetCodesRequest(ctx))
	default:
		l.log.WarnContext(ctx, "unknown message type", "type", envelope.Type)
		l.reply(ctx, session, errorEvent(envelope.Type, unknownRequestMessage))
	}
}

func (l *Live) handleCardRequest(ctx context.Context, eventData json.RawMessage) any {
	var req models.CardRequest
	if err := unmarshalEventData(eventData, &req); err != nil {
		l.log.ErrorContext(ctx, "failed to unmarshal card_request event", "error", err)
		return errorEvent(models.EventTypeCardRequest, invalidEventMessage)
	}

	card, err := l.svc.GetCardByUUID(ctx, req.UUID)
	if err != nil {
		return l.failure(ctx, models.EventTypeCardRequest, err)
	}

	return models.CardResponseEvent{
		Type:      models.EventTypeCardResponse,
		EventData: models.CardResponse{Card: card},
	}
}

func (l *Live) handleSearchRequest(ctx context.Context, eventData json.RawMessage) any {
	var req models.SearchRequest
	if err := unmarshalEventData(eventData, &req); err != nil {
		l.log.ErrorContext(ctx, "failed to unmarshal search_request event", "error", err)
		return errorEvent(models.EventTypeSearchRequest, invalidEventMessage)
	}

	if err := l.policy.Check(req.Name); err != nil {
		return l.failure(ctx, models.EventTypeSearchRequest, err)
	}

	cards, err := l.svc.SearchCardsByName(ctx, req.Name)
	if err != nil {
		return l.failure(ctx, models.EventTypeSearchRequest, err)
	}

	return models.SearchResponseEvent{
		Type:      models.EventTypeSearchResponse,
		EventData: models.CardsResponse{Cards: cards},
	}
}

func (l *Live) handleCardsRequest(ctx context.Context, eventData json.RawMessage) any {
	var req models.CardsRequest
	if err := unmarshalEventData(eventData, &req); err != nil {
		l.log.ErrorContext(ctx, "failed to unmarshal cards_request event", "error", err)
		return errorEvent(models.EventTypeCardsRequest, invalidEventMessage)
	}

	cards, err := l.svc.ListCardsBySetCode(ctx, req.SetCode)
	if err != nil {
		return l.failure(ctx, models.EventTypeCardsRequest, err)
	}

	return models.CardsResponseEvent{
		Type:      models.EventTypeCardsResponse,
		EventData: models.CardsResponse{Cards: cards},
	}
}

func (l *Live) handleSetCodesRequest(ctx context.Context) any {
	setCodes, err := l.svc.ListDistinctSetCodes(ctx)
	if err != nil {
		return l.failure(ctx, models.EventTypeSetCodesRequest, err)
	}

	return models.SetCodesResponseEvent{
		Type:      models.EventTypeSetCodesResponse,
		EventData: models.SetCodesResponse{SetCodes: setCodes},
	}
}

func (l *Live) failure(ctx context.Context, requestType models.EventType, err error) models.ErrorEvent {
	var tooShort *NameTooShortError
	switch {
	case errors.As(err, &tooShort):
		return errorEvent(requestType, tooShort.Message)
	case errors.Is(err, ErrCardNotFound):
		return errorEvent(requestType, CardNotFoundMessage)
	default:
		l.log.ErrorContext(ctx, "live query failed", "type", requestType, "error", err)
		return errorEvent(requestType, InternalErrorMessage)
	}
}

func (l *Live) reply(ctx context.Context, session *melody.Session, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		l.log.ErrorContext(ctx, "failed to marshal reply", "error", err)
		return
	}

	if err := session.Write(payload); err != nil {
		l.log.ErrorContext(ctx, "failed to write reply", "error", err,
			"remote_address", session.RemoteAddr().String(),
		)
	}
}

// unmarshalEventData treats a missing event_data as an empty object.
func unmarshalEventData(eventData json.RawMessage, v any) error {
	if len(eventData) == 0 {
		return nil
	}
	return json.Unmarshal(eventData, v)
}

func errorEvent(requestType models.EventType, msg string) models.ErrorEvent {
	return models.ErrorEvent{
		Type: models.EventTypeError,
		EventData: models.Error{
			RequestType: requestType,
			Error:       msg,
		},
	}
}
