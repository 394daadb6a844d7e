package entity

// PositionSide is the direction of a leveraged position.
type PositionSide string

const (
	SideLong  PositionSide = "long"
	SideShort PositionSide = "short"
)

// Valid reports whether the side is one of the two known directions.
func (s PositionSide) Valid() bool {
	return s == SideLong || s == SideShort
}

// Position describes an isolated-margin perpetual position to be evaluated.
// Constructed fresh per calculation; never persisted.
type Position struct {
	EntryPrice float64      `json:"entryPrice"`
	Leverage   float64      `json:"leverage"`
	Collateral float64      `json:"collateral"`
	Side       PositionSide `json:"side"`
}

// LiquidationResult holds the liquidation and bankruptcy prices for both
// sides of a position opened at the same entry price. All prices are floored
// at zero.
type LiquidationResult struct {
	LongLiquidationPrice  float64 `json:"longLiquidationPrice"`
	ShortLiquidationPrice float64 `json:"shortLiquidationPrice"`
	LongBankruptcyPrice   float64 `json:"longBankruptcyPrice"`
	ShortBankruptcyPrice  float64 `json:"shortBankruptcyPrice"`
	PositionQuantity      float64 `json:"positionQuantity"`
}

// IsZero reports whether the result is the degraded all-zero value returned
// for invalid input.
func (r LiquidationResult) IsZero() bool {
	return r == LiquidationResult{}
}

// TpSlRequest is the input of a take-profit / stop-loss projection.
// TargetPrice and StopLossPrice are optional; a non-positive value means
// "not supplied".
type TpSlRequest struct {
	EntryPrice    float64      `json:"entryPrice"`
	Leverage      float64      `json:"leverage"`
	Collateral    float64      `json:"collateral"`
	Side          PositionSide `json:"side"`
	TargetPrice   float64      `json:"targetPrice,omitempty"`
	StopLossPrice float64      `json:"stopLossPrice,omitempty"`
}

// TpSlResult is the projected payout of a position at its target and stop
// prices. Gains and losses are absolute quote-currency amounts; percentages
// are relative to collateral, since that is what the trader's account balance
// reflects. IsLiquidated is set when the stop price sits at or beyond the
// liquidation price, in which case the loss is capped at the full collateral.
type TpSlResult struct {
	PositionSize       float64 `json:"positionSize"`
	TargetGain         float64 `json:"targetGain"`
	TargetPercentage   float64 `json:"targetPercentage"`
	StopLoss           float64 `json:"stopLoss"`
	StopLossPercentage float64 `json:"stopLossPercentage"`
	IsLiquidated       bool    `json:"isLiquidated"`
	LiquidationPrice   float64 `json:"liquidationPrice"`
}
