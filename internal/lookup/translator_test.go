package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loyerparis/loyer-server/internal/domain"
	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
)

func newTestTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New()
	require.NoError(t, err)
	return tr
}

func TestTables_EveryNeighborhoodHasBothCodes(t *testing.T) {
	tr := newTestTranslator(t)

	names := tr.Neighborhoods()
	require.Len(t, names, 80)

	for _, name := range names {
		sector, district, err := tr.Neighborhood(name)
		require.NoError(t, err, name)
		assert.GreaterOrEqual(t, sector, 1, name)
		assert.LessOrEqual(t, sector, 80, name)
		assert.GreaterOrEqual(t, district, 1, name)
		assert.LessOrEqual(t, district, 14, name)
	}
}

func TestTables_SectorsAreUnique(t *testing.T) {
	seen := make(map[int]string, len(sectors))
	for name, sector := range sectors {
		if other, ok := seen[sector]; ok {
			t.Fatalf("sector %d assigned to both %q and %q", sector, other, name)
		}
		seen[sector] = name
	}
}

func TestTranslator_Odeon(t *testing.T) {
	tr := newTestTranslator(t)

	rec, err := tr.Translate(domain.EstimateRequest{
		Neighborhood: "Odeon",
		Period:       "1946-1970",
		RentalType:   "Furnished",
		MainRooms:    2,
		Area:         30,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.FeatureRecord{
		Period:     "1946-1970",
		RentalType: "meublé",
		Sector:     22,
		District:   2,
		MainRooms:  2,
	}, rec)
}

func TestTranslator_PeriodsAndTypes(t *testing.T) {
	tr := newTestTranslator(t)

	tests := []struct {
		label string
		want  string
	}{
		{"After 1990", "Apres 1990"},
		{"Before 1946", "Avant 1946"},
		{"1971-1990", "1971-1990"},
		{"1946-1970", "1946-1970"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := tr.Period(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	furnished, err := tr.RentalType("Furnished")
	require.NoError(t, err)
	assert.Equal(t, "meublé", furnished)

	unfurnished, err := tr.RentalType("Unfurnished")
	require.NoError(t, err)
	assert.Equal(t, "non meublé", unfurnished)
}

func TestTranslator_UnknownCategory(t *testing.T) {
	tr := newTestTranslator(t)

	tests := []struct {
		name string
		call func() error
	}{
		{"unknown neighborhood", func() error {
			_, _, err := tr.Neighborhood("Nowhereville")
			return err
		}},
		{"case folded neighborhood", func() error {
			_, _, err := tr.Neighborhood("odeon")
			return err
		}},
		{"padded neighborhood", func() error {
			_, _, err := tr.Neighborhood(" Odeon")
			return err
		}},
		{"period label is not a neighborhood", func() error {
			_, _, err := tr.Neighborhood("Furnished")
			return err
		}},
		{"neighborhood is not a period", func() error {
			_, err := tr.Period("Odeon")
			return err
		}},
		{"type label is not a period", func() error {
			_, err := tr.Period("Furnished")
			return err
		}},
		{"unknown type", func() error {
			_, err := tr.RentalType("Semi-furnished")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrUnknownCategory)
		})
	}
}

func TestTranslator_TranslateReturnsNoPartialRecord(t *testing.T) {
	tr := newTestTranslator(t)

	rec, err := tr.Translate(domain.EstimateRequest{
		Neighborhood: "Nowhereville",
		Period:       "1946-1970",
		RentalType:   "Furnished",
		MainRooms:    2,
	})
	require.ErrorIs(t, err, domainerrors.ErrUnknownCategory)
	assert.Equal(t, domain.FeatureRecord{}, rec)
}

func TestTranslator_Idempotent(t *testing.T) {
	tr := newTestTranslator(t)

	req := domain.EstimateRequest{
		Neighborhood: "Père-Lachaise",
		Period:       "After 1990",
		RentalType:   "Unfurnished",
		MainRooms:    3,
	}

	first, err := tr.Translate(req)
	require.NoError(t, err)
	second, err := tr.Translate(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 79, first.Sector)
	assert.Equal(t, 14, first.District)
}

func TestTranslator_EnumerationsAreCopies(t *testing.T) {
	tr := newTestTranslator(t)

	names := tr.Neighborhoods()
	names[0] = "mutated"
	assert.NotEqual(t, "mutated", tr.Neighborhoods()[0])

	assert.Equal(t, "Amérique", tr.Neighborhoods()[0])
	assert.Equal(t, []string{"Before 1946", "1946-1970", "1971-1990", "After 1990"}, tr.Periods())
	assert.Equal(t, []string{"Furnished", "Unfurnished"}, tr.RentalTypes())
}

func TestNewTranslator_RejectsInconsistentTables(t *testing.T) {
	base := map[string]string{
		"After 1990": "Apres 1990", "Before 1946": "Avant 1946",
		"1971-1990": "1971-1990", "1946-1970": "1946-1970",
		"Furnished": "meublé", "Unfurnished": "non meublé",
	}

	tests := []struct {
		name    string
		labels  map[string]string
		sectors map[string]int
		wantErr string
	}{
		{
			name:    "sector without district",
			labels:  map[string]string{},
			sectors: map[string]int{"Odeon": 22},
			wantErr: "has a sector but no district",
		},
		{
			name:    "district without sector",
			labels:  map[string]string{"Odeon": "2"},
			sectors: map[string]int{},
			wantErr: "has a district but no sector",
		},
		{
			name:    "non integer district",
			labels:  map[string]string{"Odeon": "two"},
			sectors: map[string]int{"Odeon": 22},
			wantErr: "is not an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := make(map[string]string, len(base)+len(tt.labels))
			for k, v := range base {
				table[k] = v
			}
			for k, v := range tt.labels {
				table[k] = v
			}

			_, err := newTranslator(table, tt.sectors)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
