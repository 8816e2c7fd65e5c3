package domain

// Column names of the encoding artifact. They are the exact (French) keys the
// vectorizer was fitted on; any drift silently zeroes a feature.
const (
	FieldPeriod     = "Epoque de construction"
	FieldRentalType = "Type de location"
	FieldSector     = "Secteurs géographiques"
	FieldDistrict   = "Numéro du quartier"
	FieldMainRooms  = "Nombre de pièces principales"
)

// FeatureRecord is the fixed 5-field record consumed by the encoder.
// Field order matches the order the vectorizer was fitted with.
type FeatureRecord struct {
	Period     string `json:"period"`
	RentalType string `json:"type"`
	Sector     int    `json:"sector"`
	District   int    `json:"district"`
	MainRooms  int    `json:"main_rooms"`
}

// FieldKind distinguishes one-hot categorical fields from dense numeric ones.
type FieldKind int

const (
	FieldCategorical FieldKind = iota
	FieldNumeric
)

// String implements fmt.Stringer.
func (k FieldKind) String() string {
	if k == FieldNumeric {
		return "numeric"
	}
	return "categorical"
}

// Field is one named value of a feature record.
type Field struct {
	Name   string
	Kind   FieldKind
	Text   string  // set when Kind is FieldCategorical
	Number float64 // set when Kind is FieldNumeric
}

// Fields returns the record as ordered name/value pairs.
func (r FeatureRecord) Fields() []Field {
	return []Field{
		{Name: FieldPeriod, Kind: FieldCategorical, Text: r.Period},
		{Name: FieldRentalType, Kind: FieldCategorical, Text: r.RentalType},
		{Name: FieldSector, Kind: FieldNumeric, Number: float64(r.Sector)},
		{Name: FieldDistrict, Kind: FieldNumeric, Number: float64(r.District)},
		{Name: FieldMainRooms, Kind: FieldNumeric, Number: float64(r.MainRooms)},
	}
}

// RecordSchema lists the field names and kinds of a FeatureRecord, in order.
func RecordSchema() []Field {
	return FeatureRecord{}.Fields()
}
