package domain

import "time"

// EstimateParams holds the raw, unparsed request parameters.
// Every field is required; an empty string means the parameter was absent.
type EstimateParams struct {
	Neighborhood string `json:"neighborhood" validate:"required"`
	Period       string `json:"period" validate:"required"`
	MainRooms    string `json:"main_rooms" validate:"required"`
	Type         string `json:"type" validate:"required"`
	Area         string `json:"area" validate:"required"`
}

// EstimateRequest is a parsed estimate request with typed quantities.
type EstimateRequest struct {
	Neighborhood string  `json:"neighborhood"`
	Period       string  `json:"period"`
	RentalType   string  `json:"type"`
	MainRooms    int     `json:"main_rooms"`
	Area         float64 `json:"area"`
}

// Estimate is the outcome of one prediction.
type Estimate struct {
	ID string `json:"id"`

	// Rent is round(Prediction × Area), rounded half to even.
	Rent int64 `json:"rent"`
	// Prediction is the raw model output, a rent per square meter.
	Prediction float64 `json:"prediction"`

	Request EstimateRequest `json:"request"`
	Record  FeatureRecord   `json:"record"`

	Message   string    `json:"message"`
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"created_at"`
}

// Choices lists the labels accepted by the estimate endpoints.
type Choices struct {
	Neighborhoods []string `json:"neighborhoods"`
	Periods       []string `json:"periods"`
	RentalTypes   []string `json:"types"`
}
