package rebalance

import (
	"math"
	"sort"

	"github.com/quantward/momentum/internal/contracts"
)

// CalculateOrders turns a target portfolio into the order batch that
// moves the book toward it. Exits come first: long positions outside
// the target longs are sold, short positions outside the target
// shorts are covered. Remaining value is then split equally across
// all target slots and new entries are sized at floor(slot / price)
// shares. Target tickers without a price are skipped and returned so
// the caller can log them. Pure function; the book is not modified.
func CalculateOrders(state contracts.BookState, target contracts.TargetPortfolio, prices map[string]float64) ([]contracts.Order, []string, error) {
	longSet := toSet(target.Longs)
	shortSet := toSet(target.Shorts)

	var orders []contracts.Order
	var skipped []string

	cash := state.Cash
	kept := 0.0

	for _, ticker := range sortedTickers(state.Positions) {
		qty := state.Positions[ticker]
		price, priced := prices[ticker]

		keepLong := qty > 0 && longSet[ticker]
		keepShort := qty < 0 && shortSet[ticker]
		if keepLong || keepShort {
			if priced {
				kept += float64(qty) * price
			}
			continue
		}

		if !priced || price <= 0 {
			skipped = append(skipped, ticker)
			continue
		}

		if qty > 0 {
			orders = append(orders, contracts.Order{
				Action: contracts.ActionSell, Ticker: ticker, Quantity: qty, Price: price,
			})
			cash += float64(qty) * price
		} else {
			orders = append(orders, contracts.Order{
				Action: contracts.ActionBuy, Ticker: ticker, Quantity: -qty, Price: price,
			})
			cash -= float64(-qty) * price
		}
	}

	slots := len(target.Longs) + len(target.Shorts)
	if slots == 0 {
		sort.Strings(skipped)
		return orders, skipped, nil
	}
	perSlot := (cash + kept) / float64(slots)

	for _, ticker := range target.Longs {
		if state.Positions[ticker] > 0 {
			continue
		}
		price, ok := prices[ticker]
		if !ok || price <= 0 {
			skipped = append(skipped, ticker)
			continue
		}
		qty := int64(math.Floor(perSlot / price))
		if qty < 1 {
			skipped = append(skipped, ticker)
			continue
		}
		orders = append(orders, contracts.Order{
			Action: contracts.ActionBuy, Ticker: ticker, Quantity: qty, Price: price,
		})
	}

	for _, ticker := range target.Shorts {
		if state.Positions[ticker] < 0 {
			continue
		}
		price, ok := prices[ticker]
		if !ok || price <= 0 {
			skipped = append(skipped, ticker)
			continue
		}
		qty := int64(math.Floor(perSlot / price))
		if qty < 1 {
			skipped = append(skipped, ticker)
			continue
		}
		orders = append(orders, contracts.Order{
			Action: contracts.ActionSellShort, Ticker: ticker, Quantity: qty, Price: price,
		})
	}

	sort.Strings(skipped)
	return orders, skipped, nil
}

func toSet(tickers []string) map[string]bool {
	set := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		set[t] = true
	}
	return set
}

func sortedTickers(positions map[string]int64) []string {
	tickers := make([]string, 0, len(positions))
	for t := range positions {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
