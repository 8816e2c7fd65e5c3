// Package lookup translates the English labels offered by the front end into
// the French category codes and numeric sector/district codes the rent model
// was trained on.
//
// Matching is exact and case-sensitive. A label outside the known domain is
// an UnknownCategory error and is never coerced to a default.
package lookup

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/loyerparis/loyer-server/internal/domain"
	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
)

// Location holds the two geographic codes of a neighborhood.
type Location struct {
	Sector   int `json:"sector"`
	District int `json:"district"`
}

// Translator resolves labels against immutable tables. It is safe for
// concurrent use.
type Translator struct {
	periods       map[string]string
	rentalTypes   map[string]string
	locations     map[string]Location
	neighborhoods []string
}

// New builds a translator from the built-in tables. It fails if a
// neighborhood is missing from either table or has a non-integer district.
func New() (*Translator, error) {
	return newTranslator(labels, sectors)
}

func newTranslator(labelTable map[string]string, sectorTable map[string]int) (*Translator, error) {
	t := &Translator{
		periods:     make(map[string]string, len(periodLabels)),
		rentalTypes: make(map[string]string, len(rentalTypeLabels)),
		locations:   make(map[string]Location, len(sectorTable)),
	}

	for _, label := range periodLabels {
		code, ok := labelTable[label]
		if !ok {
			return nil, fmt.Errorf("period %q has no translation", label)
		}
		t.periods[label] = code
	}
	for _, label := range rentalTypeLabels {
		code, ok := labelTable[label]
		if !ok {
			return nil, fmt.Errorf("rental type %q has no translation", label)
		}
		t.rentalTypes[label] = code
	}

	for name, sector := range sectorTable {
		raw, ok := labelTable[name]
		if !ok {
			return nil, fmt.Errorf("neighborhood %q has a sector but no district", name)
		}
		district, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("neighborhood %q: district %q is not an integer: %w", name, raw, err)
		}
		t.locations[name] = Location{Sector: sector, District: district}
		t.neighborhoods = append(t.neighborhoods, name)
	}

	// Every non period/type label must be a neighborhood with a sector.
	for label := range labelTable {
		if _, ok := t.periods[label]; ok {
			continue
		}
		if _, ok := t.rentalTypes[label]; ok {
			continue
		}
		if _, ok := t.locations[label]; !ok {
			return nil, fmt.Errorf("neighborhood %q has a district but no sector", label)
		}
	}

	slices.Sort(t.neighborhoods)
	return t, nil
}

// Period returns the French code for a construction period label.
func (t *Translator) Period(label string) (string, error) {
	code, ok := t.periods[label]
	if !ok {
		return "", domainerrors.UnknownCategoryf("unknown period %q", label).
			WithDetails(map[string]any{"field": "period", "allowed": t.Periods()})
	}
	return code, nil
}

// RentalType returns the French code for a furnishing label.
func (t *Translator) RentalType(label string) (string, error) {
	code, ok := t.rentalTypes[label]
	if !ok {
		return "", domainerrors.UnknownCategoryf("unknown rental type %q", label).
			WithDetails(map[string]any{"field": "type", "allowed": t.RentalTypes()})
	}
	return code, nil
}

// Neighborhood returns the sector and district codes of a neighborhood.
func (t *Translator) Neighborhood(name string) (sector, district int, err error) {
	loc, ok := t.locations[name]
	if !ok {
		return 0, 0, domainerrors.UnknownCategoryf("unknown neighborhood %q", name).
			WithDetails(map[string]any{"field": "neighborhood"})
	}
	return loc.Sector, loc.District, nil
}

// Translate resolves every label of a request into a feature record.
// Either all lookups succeed or an error is returned with an empty record.
func (t *Translator) Translate(req domain.EstimateRequest) (domain.FeatureRecord, error) {
	period, err := t.Period(req.Period)
	if err != nil {
		return domain.FeatureRecord{}, err
	}
	rentalType, err := t.RentalType(req.RentalType)
	if err != nil {
		return domain.FeatureRecord{}, err
	}
	sector, district, err := t.Neighborhood(req.Neighborhood)
	if err != nil {
		return domain.FeatureRecord{}, err
	}

	return domain.FeatureRecord{
		Period:     period,
		RentalType: rentalType,
		Sector:     sector,
		District:   district,
		MainRooms:  req.MainRooms,
	}, nil
}

// Neighborhoods returns all known neighborhood names, sorted.
func (t *Translator) Neighborhoods() []string {
	return slices.Clone(t.neighborhoods)
}

// Periods returns the construction period labels, oldest first.
func (t *Translator) Periods() []string {
	return slices.Clone(periodLabels)
}

// RentalTypes returns the furnishing labels.
func (t *Translator) RentalTypes() []string {
	return slices.Clone(rentalTypeLabels)
}

// Locations returns a copy of the neighborhood → codes table.
func (t *Translator) Locations() map[string]Location {
	return maps.Clone(t.locations)
}
