package contracts

// OrderAction is the side of a rebalance order
type OrderAction string

const (
	ActionBuy       OrderAction = "BUY"
	ActionSell      OrderAction = "SELL"
	ActionSellShort OrderAction = "SSHORT"
)

// Order is one rebalance instruction for the simulated book
type Order struct {
	Action   OrderAction `json:"action"`
	Ticker   string      `json:"ticker"`
	Quantity int64       `json:"quantity"`
	Price    float64     `json:"price"`
}

// BookState is the persisted state of the simulated portfolio book.
// Positions are share counts; negative counts are short positions.
type BookState struct {
	Cash      float64          `json:"cash"`
	Positions map[string]int64 `json:"positions"`
}

// NewBookState creates an empty book with starting cash
func NewBookState(cash float64) BookState {
	return BookState{
		Cash:      cash,
		Positions: make(map[string]int64),
	}
}
