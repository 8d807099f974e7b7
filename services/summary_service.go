package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySummary aggregates the computed totals across one day's intake records.
type DailySummary struct {
	Date          string          `json:"date"`
	Records       int             `json:"records"`
	Calories      decimal.Decimal `json:"calories"`
	Carbohydrates decimal.Decimal `json:"carbohydrates"`
	Fat           decimal.Decimal `json:"fat"`
	Protein       decimal.Decimal `json:"protein"`
}

type SummaryService struct {
	intakes *IntakeService
}

func NewSummaryService(intakes *IntakeService) *SummaryService {
	return &SummaryService{intakes: intakes}
}

// DailySummary sums the four macro totals over the user's records for the
// date. It reads through the same per-(user, date) cache as the listing path.
func (s *SummaryService) DailySummary(ctx context.Context, userID uint, date time.Time) (*DailySummary, error) {
	day := normalizeDate(date)
	records, err := s.intakes.FindByDate(ctx, &day, userID)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{Date: day.Format("2006-01-02"), Records: len(records)}
	for _, r := range records {
		summary.Calories = summary.Calories.Add(r.Nutriments.Calories)
		summary.Carbohydrates = summary.Carbohydrates.Add(r.Nutriments.Carbohydrates)
		summary.Fat = summary.Fat.Add(r.Nutriments.Fat)
		summary.Protein = summary.Protein.Add(r.Nutriments.Protein)
	}
	return summary, nil
}
