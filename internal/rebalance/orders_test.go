package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantward/momentum/internal/contracts"
)

func TestCalculateOrdersFromEmptyBook(t *testing.T) {
	state := contracts.NewBookState(10000)
	target := contracts.TargetPortfolio{
		Longs:  []string{"AAPL"},
		Shorts: []string{"XOM"},
	}
	prices := map[string]float64{"AAPL": 100, "XOM": 50}

	orders, skipped, err := CalculateOrders(state, target, prices)
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Len(t, orders, 2)

	// 10000 over two slots is 5000 each
	assert.Equal(t, contracts.Order{Action: contracts.ActionBuy, Ticker: "AAPL", Quantity: 50, Price: 100}, orders[0])
	assert.Equal(t, contracts.Order{Action: contracts.ActionSellShort, Ticker: "XOM", Quantity: 100, Price: 50}, orders[1])
}

func TestCalculateOrdersExitsDepartures(t *testing.T) {
	state := contracts.BookState{
		Cash: 0,
		Positions: map[string]int64{
			"OLD":  10,  // long no longer wanted
			"SHRT": -20, // short to cover
			"KEEP": 5,   // stays long
		},
	}
	target := contracts.TargetPortfolio{
		Longs:  []string{"KEEP"},
		Shorts: []string{},
	}
	prices := map[string]float64{"OLD": 50, "SHRT": 10, "KEEP": 100}

	orders, skipped, err := CalculateOrders(state, target, prices)
	require.NoError(t, err)
	require.Empty(t, skipped)

	require.Len(t, orders, 2)
	assert.Equal(t, contracts.Order{Action: contracts.ActionBuy, Ticker: "SHRT", Quantity: 20, Price: 10}, orders[0])
	assert.Equal(t, contracts.Order{Action: contracts.ActionSell, Ticker: "OLD", Quantity: 10, Price: 50}, orders[1])
}

func TestCalculateOrdersSkipsUnpricedTargets(t *testing.T) {
	state := contracts.NewBookState(1000)
	target := contracts.TargetPortfolio{Longs: []string{"AAPL", "GONE"}}
	prices := map[string]float64{"AAPL": 100}

	orders, skipped, err := CalculateOrders(state, target, prices)
	require.NoError(t, err)

	assert.Equal(t, []string{"GONE"}, skipped)
	require.Len(t, orders, 1)
	assert.Equal(t, "AAPL", orders[0].Ticker)
}

func TestCalculateOrdersSkipsUnaffordableTargets(t *testing.T) {
	state := contracts.NewBookState(50)
	target := contracts.TargetPortfolio{Longs: []string{"PRICY"}}
	prices := map[string]float64{"PRICY": 1000}

	orders, skipped, err := CalculateOrders(state, target, prices)
	require.NoError(t, err)

	assert.Empty(t, orders)
	assert.Equal(t, []string{"PRICY"}, skipped)
}

func TestCalculateOrdersEmptyTarget(t *testing.T) {
	state := contracts.BookState{
		Cash:      100,
		Positions: map[string]int64{"OLD": 2},
	}

	orders, skipped, err := CalculateOrders(state, contracts.TargetPortfolio{}, map[string]float64{"OLD": 10})
	require.NoError(t, err)
	require.Empty(t, skipped)

	// Everything is liquidated, nothing is bought
	require.Len(t, orders, 1)
	assert.Equal(t, contracts.ActionSell, orders[0].Action)
}

func TestCalculateOrdersDeterministicOrdering(t *testing.T) {
	state := contracts.BookState{
		Cash:      0,
		Positions: map[string]int64{"ZZZ": 1, "AAA": 1, "MMM": 1},
	}

	orders, _, err := CalculateOrders(state, contracts.TargetPortfolio{}, map[string]float64{"AAA": 1, "MMM": 1, "ZZZ": 1})
	require.NoError(t, err)

	require.Len(t, orders, 3)
	assert.Equal(t, "AAA", orders[0].Ticker)
	assert.Equal(t, "MMM", orders[1].Ticker)
	assert.Equal(t, "ZZZ", orders[2].Ticker)
}
