// Package analyzer is the pure classification and ranking stage: merged
// option records in, a discount-ranked ResultTable out. No I/O.
package analyzer

import (
	"sort"

	"github.com/shopspring/decimal"

	"optionscan/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Rank filters the merged records, classifies moneyness against the
// underlying's last price, computes the discount metrics and returns the
// table sorted by discount percent descending. nearMoneyPct is the NTM
// band width in percent.
//
// Records are dropped when:
//   - the offer is absent or exactly zero (no ask quoted),
//   - moneyness is OTM or UNKNOWN,
//   - the theoretical price is absent or zero (discount percent would
//     be undefined).
//
// The sort is stable, so equal discount percents keep merge order and
// repeated runs over the same input produce identical output.
func Rank(records []models.OptionRecord, nearMoneyPct float64) models.ResultTable {
	band := decimal.NewFromFloat(nearMoneyPct)

	out := make(models.ResultTable, 0, len(records))
	for _, rec := range records {
		if rec.Offer == nil || *rec.Offer == 0 {
			continue
		}
		state, deviation := classify(rec, band)
		if state != models.MoneynessITM && state != models.MoneynessNTM {
			continue
		}
		if rec.TheorPrice == nil || *rec.TheorPrice == 0 {
			continue
		}
		theor := decimal.NewFromFloat(*rec.TheorPrice)
		discount := theor.Sub(decimal.NewFromFloat(*rec.Offer))
		out = append(out, models.RankedOption{
			OptionRecord: rec,
			DeviationPct: deviation,
			Moneyness:    state,
			Discount:     discount,
			DiscountPct:  discount.Div(theor).Mul(hundred),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DiscountPct.GreaterThan(out[j].DiscountPct)
	})
	return out
}

// classify applies the moneyness rule table. The strike must be present
// and the last price positive; anything else is UNKNOWN rather than a
// crash, including side values the board should never produce.
func classify(rec models.OptionRecord, band decimal.Decimal) (models.Moneyness, decimal.Decimal) {
	if rec.Strike == nil || rec.LastPrice <= 0 {
		return models.MoneynessUnknown, decimal.Zero
	}
	strike := *rec.Strike
	last := rec.LastPrice

	deviation := decimal.NewFromFloat(last).
		Sub(decimal.NewFromFloat(strike)).
		Abs().
		Div(decimal.NewFromFloat(last)).
		Mul(hundred)

	var inTheMoney bool
	switch rec.Side {
	case models.SideCall:
		inTheMoney = last > strike
	case models.SidePut:
		inTheMoney = last < strike
	default:
		return models.MoneynessUnknown, deviation
	}

	switch {
	case inTheMoney:
		return models.MoneynessITM, deviation
	case deviation.LessThanOrEqual(band):
		return models.MoneynessNTM, deviation
	default:
		return models.MoneynessOTM, deviation
	}
}
