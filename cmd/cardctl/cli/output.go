package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Jubris-Knifes/cardbase/models"
	"github.com/fatih/color"
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	setCodeColor = color.New(color.FgYellow)
	uuidColor    = color.New(color.Faint)
	missColor    = color.New(color.FgRed)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCard(w io.Writer, asJSON bool, card models.Card) error {
	if asJSON {
		return printJSON(w, card)
	}

	nameColor.Fprint(w, card.Name)
	fmt.Fprint(w, " ")
	setCodeColor.Fprintf(w, "[%s]", card.SetCode)
	fmt.Fprint(w, " ")
	uuidColor.Fprintln(w, card.UUID)

	if card.Text != "" {
		for _, line := range strings.Split(card.Text, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}

	return nil
}

func printCards(w io.Writer, asJSON bool, cards []models.Card) error {
	if asJSON {
		return printJSON(w, cards)
	}

	for _, card := range cards {
		nameColor.Fprint(w, card.Name)
		fmt.Fprint(w, " ")
		setCodeColor.Fprintf(w, "[%s]", card.SetCode)
		fmt.Fprint(w, " ")
		uuidColor.Fprintln(w, card.UUID)
	}
	fmt.Fprintf(w, "%d card(s)\n", len(cards))

	return nil
}

func printSetCodes(w io.Writer, asJSON bool, setCodes []string) error {
	if asJSON {
		return printJSON(w, setCodes)
	}

	for _, code := range setCodes {
		setCodeColor.Fprintln(w, code)
	}

	return nil
}

func printNotFound(w io.Writer, asJSON bool) error {
	if asJSON {
		return printJSON(w, nil)
	}

	missColor.Fprintln(w, "no card found")
	return nil
}
