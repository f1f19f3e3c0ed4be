// Package importer loads menu exports into the catalog. The export format
// grew organically and encodes prices three different ways (plain number,
// decimal string, or a cent-precision object); all of them are normalized to
// fixed-point cents here, at the boundary, so nothing downstream ever sees a
// raw price. Input that fits none of the encodings is rejected, not coerced.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"maqha/internal/domain"
)

type ItemWriter interface {
	Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
}

// MenuImporter reads a JSON menu export and upserts catalog items.
type MenuImporter struct {
	reader io.Reader
	repo   ItemWriter
}

func NewMenuImporter(r io.Reader, repo ItemWriter) *MenuImporter {
	return &MenuImporter{reader: r, repo: repo}
}

type menuEntry struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	NameAr        string          `json:"name_ar"`
	Category      string          `json:"category"`
	Price         json.RawMessage `json:"price"`
	PreviousPrice json.RawMessage `json:"previous_price"`
	Availability  string          `json:"availability"`
}

// Run parses the export and upserts every entry. It stops at the first bad
// entry so a malformed export never half-applies silently.
func (i *MenuImporter) Run(ctx context.Context) (int, error) {
	var entries []menuEntry
	dec := json.NewDecoder(i.reader)
	if err := dec.Decode(&entries); err != nil {
		return 0, fmt.Errorf("decode menu export: %w", err)
	}

	imported := 0
	for _, e := range entries {
		item, err := toItem(e)
		if err != nil {
			return imported, fmt.Errorf("entry %q: %w", e.ID, err)
		}
		if _, err := i.repo.Upsert(ctx, *item); err != nil {
			return imported, fmt.Errorf("upsert %q: %w", e.ID, err)
		}
		imported++
	}
	return imported, nil
}

func toItem(e menuEntry) (*domain.CatalogItem, error) {
	if strings.TrimSpace(e.ID) == "" {
		return nil, errors.New("id required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return nil, errors.New("name required")
	}

	price, err := ParsePriceCents(e.Price)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	item := domain.CatalogItem{
		ID:           e.ID,
		Name:         e.Name,
		NameAr:       e.NameAr,
		Category:     e.Category,
		PriceCents:   price,
		Availability: domain.Available,
	}
	if len(e.PreviousPrice) > 0 && string(e.PreviousPrice) != "null" {
		prev, err := ParsePriceCents(e.PreviousPrice)
		if err != nil {
			return nil, fmt.Errorf("previous_price: %w", err)
		}
		item.PreviousPriceCents = &prev
	}
	if e.Availability != "" {
		item.Availability = domain.Availability(e.Availability)
		if !item.Availability.Valid() {
			return nil, fmt.Errorf("unknown availability %q", e.Availability)
		}
	}
	return &item, nil
}

// centObject is the cent-precision encoding some exports carry.
type centObject struct {
	CentAmount     *int64 `json:"centAmount"`
	FractionDigits int    `json:"fractionDigits"`
}

// ParsePriceCents normalizes the three known price encodings into cents:
// a JSON number of major units (4.5), a decimal string ("4.50"), or an
// object {"centAmount":450,"fractionDigits":2}. Anything else is an error.
func ParsePriceCents(raw json.RawMessage) (int64, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, errors.New("missing")
	}

	switch trimmed[0] {
	case '{':
		var obj centObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return 0, err
		}
		if obj.CentAmount == nil {
			return 0, errors.New("centAmount missing")
		}
		if obj.FractionDigits != 0 && obj.FractionDigits != 2 {
			return 0, fmt.Errorf("unsupported fractionDigits %d", obj.FractionDigits)
		}
		if *obj.CentAmount < 0 {
			return 0, errors.New("negative price")
		}
		return *obj.CentAmount, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return parseDecimalCents(s)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
		return parseDecimalCents(n.String())
	}
}

// parseDecimalCents converts a decimal string of major units to cents without
// going through floating point.
func parseDecimalCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty price")
	}
	if s[0] == '-' {
		return 0, errors.New("negative price")
	}

	whole, frac := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("more than two fraction digits in %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var cents int64
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("not a decimal price: %q", s)
			}
			cents = cents*10 + int64(r-'0')
		}
	}
	return cents, nil
}
