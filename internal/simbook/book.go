package simbook

import (
	"fmt"
	"sort"

	"github.com/quantward/momentum/internal/contracts"
)

// ApplyOrders plays a batch of orders against a book state and
// returns the resulting state. BUY spends cash for shares; SELL and
// SSHORT raise cash and reduce the share count, with short positions
// going negative. The input state is not modified.
func ApplyOrders(state contracts.BookState, orders []contracts.Order) (contracts.BookState, error) {
	next := contracts.BookState{
		Cash:      state.Cash,
		Positions: make(map[string]int64, len(state.Positions)),
	}
	for ticker, qty := range state.Positions {
		next.Positions[ticker] = qty
	}

	for _, order := range orders {
		if order.Quantity <= 0 {
			return contracts.BookState{}, fmt.Errorf("order for %s has non-positive quantity %d", order.Ticker, order.Quantity)
		}
		if order.Price <= 0 {
			return contracts.BookState{}, fmt.Errorf("order for %s has non-positive price %f", order.Ticker, order.Price)
		}

		notional := float64(order.Quantity) * order.Price
		switch order.Action {
		case contracts.ActionBuy:
			next.Cash -= notional
			next.Positions[order.Ticker] += order.Quantity
		case contracts.ActionSell, contracts.ActionSellShort:
			next.Cash += notional
			next.Positions[order.Ticker] -= order.Quantity
		default:
			return contracts.BookState{}, fmt.Errorf("unknown order action %q", order.Action)
		}

		if next.Positions[order.Ticker] == 0 {
			delete(next.Positions, order.Ticker)
		}
	}

	return next, nil
}

// TotalValue marks the book to the given prices. Short positions
// subtract from the total. Tickers without a price are skipped and
// reported so the caller can decide whether the valuation is usable.
func TotalValue(state contracts.BookState, prices map[string]float64) (float64, []string) {
	total := state.Cash
	var unpriced []string

	for ticker, qty := range state.Positions {
		price, ok := prices[ticker]
		if !ok || price <= 0 {
			unpriced = append(unpriced, ticker)
			continue
		}
		total += float64(qty) * price
	}

	sort.Strings(unpriced)
	return total, unpriced
}
