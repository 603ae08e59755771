package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/Jubris-Knifes/cardbase/models"
	"github.com/georgysavva/scany/sqlscan"
)

type Repository struct {
	db  *sql.DB
	log *slog.Logger
}

func New(logger *slog.Logger, db *sql.DB) *Repository {
	return &Repository{
		db:  db,
		log: logger,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *Repository) AllCards(ctx context.Context) ([]models.Card, error) {
	r.log.DebugContext(ctx, "getting all cards")

	const query = `
		SELECT uuid, name, text, set_code
		FROM cards
		ORDER BY name, uuid
	`
	cards := []models.Card{}
	if err := sqlscan.Select(ctx, r.db, &cards, query); err != nil {
		r.log.ErrorContext(ctx, "failed to get all cards", "error", err)
		return nil, err
	}

	r.log.DebugContext(ctx, "all cards retrieved", "count", len(cards))

	return cards, nil
}

func (r *Repository) CardByUUID(ctx context.Context, uuid string) (models.Card, error) {
	r.log.DebugContext(ctx, "getting card", "uuid", uuid)

	const query = `
		SELECT uuid, name, text, set_code
		FROM cards
		WHERE uuid = ?
	`
	var card models.Card
	if err := sqlscan.Get(ctx, r.db, &card, query, uuid); err != nil {
		if sqlscan.NotFound(err) {
			r.log.DebugContext(ctx, "card not found", "uuid", uuid)
			return models.Card{}, ErrCardNotFound
		}
		r.log.ErrorContext(ctx, "failed to get card", "error", err, "uuid", uuid)
		return models.Card{}, err
	}

	r.log.DebugContext(ctx, "card retrieved", "uuid", uuid)

	return card, nil
}

// CardsByName returns every card whose name contains name. LIKE wildcards in
// name are matched literally.
func (r *Repository) CardsByName(ctx context.Context, name string) ([]models.Card, error) {
	r.log.DebugContext(ctx, "searching cards by name", "name", name)

	const query = `
		SELECT uuid, name, text, set_code
		FROM cards
		WHERE name LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY name, uuid
	`
	cards := []models.Card{}
	if err := sqlscan.Select(ctx, r.db, &cards, query, likeEscaper.Replace(name)); err != nil {
		r.log.ErrorContext(ctx, "failed to search cards by name", "error", err, "name", name)
		return nil, err
	}

	r.log.DebugContext(ctx, "cards found by name", "name", name, "count", len(cards))

	return cards, nil
}

func (r *Repository) CardsBySetCode(ctx context.Context, setCode string) ([]models.Card, error) {
	r.log.DebugContext(ctx, "getting cards by set code", "set_code", setCode)

	const query = `
		SELECT uuid, name, text, set_code
		FROM cards
		WHERE set_code = ?
		ORDER BY name, uuid
	`
	cards := []models.Card{}
	if err := sqlscan.Select(ctx, r.db, &cards, query, setCode); err != nil {
		r.log.ErrorContext(ctx, "failed to get cards by set code", "error", err, "set_code", setCode)
		return nil, err
	}

	r.log.DebugContext(ctx, "cards retrieved by set code", "set_code", setCode, "count", len(cards))

	return cards, nil
}

func (r *Repository) DistinctSetCodes(ctx context.Context) ([]string, error) {
	r.log.DebugContext(ctx, "getting distinct set codes")

	const query = `
		SELECT DISTINCT set_code
		FROM cards
		ORDER BY set_code
	`
	setCodes := []string{}
	if err := sqlscan.Select(ctx, r.db, &setCodes, query); err != nil {
		r.log.ErrorContext(ctx, "failed to get distinct set codes", "error", err)
		return nil, err
	}

	r.log.DebugContext(ctx, "distinct set codes retrieved", "set_codes", setCodes)

	return setCodes, nil
}
