package service

import (
	"context"
	"log/slog"

	"github.com/Jubris-Knifes/cardbase/models"
	"github.com/Jubris-Knifes/cardbase/repository"
)

var ErrCardNotFound = repository.ErrCardNotFound

// CardStore is the datastore behind the query service.
//
// CardByUUID returns ErrCardNotFound when no card has the uuid. CardsByName
// matches on name containment and returns an empty slice when nothing
// matches. CardsBySetCode matches exactly. DistinctSetCodes holds no
// duplicates.
type CardStore interface {
	AllCards(ctx context.Context) ([]models.Card, error)
	CardByUUID(ctx context.Context, uuid string) (models.Card, error)
	CardsByName(ctx context.Context, name string) ([]models.Card, error)
	CardsBySetCode(ctx context.Context, setCode string) ([]models.Card, error)
	DistinctSetCodes(ctx context.Context) ([]string, error)
}

type Service struct {
	store CardStore
	log   *slog.Logger
}

func New(logger *slog.Logger, store CardStore) *Service {
	return &Service{
		store: store,
		log:   logger,
	}
}

func (s *Service) GetAllCards(ctx context.Context) ([]models.Card, error) {
	cards, err := s.store.AllCards(ctx)
	if err != nil {
		return nil, err
	}

	return nonNil(cards), nil
}

func (s *Service) GetCardByUUID(ctx context.Context, uuid string) (models.Card, error) {
	return s.store.CardByUUID(ctx, uuid)
}

// SearchCardsByName returns ErrCardNotFound when no card name contains name.
// The minimum length is enforced by callers through SearchPolicy.
func (s *Service) SearchCardsByName(ctx context.Context, name string) ([]models.Card, error) {
	cards, err := s.store.CardsByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(cards) == 0 {
		s.log.DebugContext(ctx, "no card matches search", "name", name)
		return nil, ErrCardNotFound
	}

	return cards, nil
}

// ListCardsBySetCode returns every card when setCode is empty.
func (s *Service) ListCardsBySetCode(ctx context.Context, setCode string) ([]models.Card, error) {
	if setCode == "" {
		return s.GetAllCards(ctx)
	}

	cards, err := s.store.CardsBySetCode(ctx, setCode)
	if err != nil {
		return nil, err
	}

	return nonNil(cards), nil
}

func (s *Service) ListDistinctSetCodes(ctx context.Context) ([]string, error) {
	setCodes, err := s.store.DistinctSetCodes(ctx)
	if err != nil {
		return nil, err
	}

	return nonNil(setCodes), nil
}

// nonNil keeps empty results encoding as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
