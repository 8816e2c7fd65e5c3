package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/loyerparis/loyer-server/internal/domain"
)

// FormatMessage renders the human-readable estimate sentence. The rent is
// grouped according to locale ("1,250" in English, "1 250" in French).
func FormatMessage(locale language.Tag, req domain.EstimateRequest, rent int64) string {
	p := message.NewPrinter(locale)
	return p.Sprintf("The predicted rent for an apartment located at %s, in a period %s, with %d main rooms and %s is : %d €",
		req.Neighborhood, req.Period, req.MainRooms, req.RentalType, rent)
}
