package calculation

import (
	"errors"
	"sort"

	"github.com/homeequity/buyrent/internal/domain"
	"github.com/homeequity/buyrent/pkg/finmath"
	"github.com/shopspring/decimal"
)

// ErrEmptyProjection is returned when a comparison is asked of a run with no records.
var ErrEmptyProjection = errors.New("one or both projections are empty")

const (
	LeaderBuy  = "buy"
	LeaderRent = "rent"
)

// CompareAtCheckpoints reads both runs at the end of each checkpoint year (month index 12*year).
// Years that fall outside either run are skipped. Difference is rent wealth minus buy wealth.
func CompareAtCheckpoints(buy, rent *domain.SimulationResult, years []int) []domain.Checkpoint {
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	var checkpoints []domain.Checkpoint
	seen := make(map[int]bool, len(sorted))
	for _, year := range sorted {
		if year <= 0 || seen[year] {
			continue
		}
		seen[year] = true

		month := year * finmath.PeriodsPerYear
		b, okBuy := buy.At(month)
		r, okRent := rent.At(month)
		if !okBuy || !okRent {
			continue
		}
		checkpoints = append(checkpoints, domain.Checkpoint{
			Year:       year,
			Month:      month,
			BuyWealth:  b.Wealth,
			RentWealth: r.Wealth,
			Difference: r.Wealth.Sub(b.Wealth),
			BuyEquity:  b.HomeEquity,
			BuyDebt:    b.HomeDebt,
		})
	}
	return checkpoints
}

// CalculateWealthBreakEven finds the first month where the wealth lead changes hands between the
// two runs. Months where both are within a cent of each other count as ties and never start or
// end a lead. Runs are aligned by month index and truncated to the shorter one. If the lead never
// changes, returns nil, nil.
func CalculateWealthBreakEven(buy, rent *domain.SimulationResult) (*domain.WealthBreakEven, error) {
	if buy == nil || rent == nil || buy.Len() == 0 || rent.Len() == 0 {
		return nil, ErrEmptyProjection
	}

	n := buy.Len()
	if rent.Len() < n {
		n = rent.Len()
	}

	cent := decimal.NewFromFloat(0.01)
	lead := 0
	for month := 0; month < n; month++ {
		b := buy.Records[month].Wealth
		r := rent.Records[month].Wealth
		diff := b.Sub(r)
		if diff.Abs().LessThan(cent) {
			continue
		}

		sign := diff.Sign()
		if lead != 0 && sign != lead {
			leader := LeaderRent
			if sign > 0 {
				leader = LeaderBuy
			}
			return &domain.WealthBreakEven{
				Month:      month,
				Year:       decimal.NewFromInt(int64(month)).Div(decimal.NewFromInt(finmath.PeriodsPerYear)).Round(2),
				BuyWealth:  b,
				RentWealth: r,
				Leader:     leader,
			}, nil
		}
		lead = sign
	}

	return nil, nil
}
