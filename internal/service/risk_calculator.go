package service

import (
	"tokenscope/internal/domain/entity"
	"tokenscope/internal/port"

	"go.uber.org/zap"
)

// defaultMaintenanceMarginRate is the fixed MMR of the isolated-margin model.
const defaultMaintenanceMarginRate = 0.005

// riskCalculatorImpl implements port.RiskCalculator. Both operations are pure
// functions of their inputs; the struct only carries configuration.
type riskCalculatorImpl struct {
	logger          *zap.Logger
	mmr             float64
	strictStopCheck bool
}

// RiskCalculatorOption customizes a RiskCalculator.
type RiskCalculatorOption func(*riskCalculatorImpl)

// WithMaintenanceMarginRate overrides the default maintenance margin rate.
func WithMaintenanceMarginRate(mmr float64) RiskCalculatorOption {
	return func(c *riskCalculatorImpl) {
		if mmr > 0 {
			c.mmr = mmr
		}
	}
}

// WithStrictStopCheck makes a stop-loss sitting exactly at the liquidation
// price count as a regular exit instead of a liquidation. The default
// (non-strict) treats touching the liquidation price as already liquidated.
func WithStrictStopCheck(strict bool) RiskCalculatorOption {
	return func(c *riskCalculatorImpl) {
		c.strictStopCheck = strict
	}
}

// NewRiskCalculator creates a new instance of riskCalculatorImpl.
func NewRiskCalculator(logger *zap.Logger, opts ...RiskCalculatorOption) port.RiskCalculator {
	c := &riskCalculatorImpl{
		logger: logger.Named("RiskCalculator"),
		mmr:    defaultMaintenanceMarginRate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// validPosition reports whether the basic position parameters are inside the
// calculator's domain.
func validPosition(entryPrice, leverage, collateral float64) bool {
	return entryPrice > 0 && leverage > 1 && collateral > 0
}

// ComputeLiquidation returns liquidation and bankruptcy prices for both sides
// of a position opened at entryPrice. Invalid input yields the all-zero
// result; calculate-as-you-type callers rely on this never failing.
func (c *riskCalculatorImpl) ComputeLiquidation(entryPrice, leverage, collateral float64) entity.LiquidationResult {
	if !validPosition(entryPrice, leverage, collateral) {
		return entity.LiquidationResult{}
	}

	return entity.LiquidationResult{
		LongLiquidationPrice:  c.liquidationPrice(entity.SideLong, entryPrice, leverage),
		ShortLiquidationPrice: c.liquidationPrice(entity.SideShort, entryPrice, leverage),
		LongBankruptcyPrice:   clampZero(entryPrice * (1 - 1/leverage)),
		ShortBankruptcyPrice:  entryPrice * (1 + 1/leverage),
		PositionQuantity:      positionQuantity(entryPrice, leverage, collateral),
	}
}

// ComputeTpSl projects the payout of a position at its target and stop prices.
// The liquidation price comes from the same per-side formula ComputeLiquidation
// uses, so the two operations always agree on identical inputs.
func (c *riskCalculatorImpl) ComputeTpSl(req entity.TpSlRequest) entity.TpSlResult {
	if !validPosition(req.EntryPrice, req.Leverage, req.Collateral) || !req.Side.Valid() {
		return entity.TpSlResult{}
	}
	if req.TargetPrice <= 0 && req.StopLossPrice <= 0 {
		return entity.TpSlResult{}
	}

	size := positionQuantity(req.EntryPrice, req.Leverage, req.Collateral)
	liq := c.liquidationPrice(req.Side, req.EntryPrice, req.Leverage)

	result := entity.TpSlResult{
		PositionSize:     size,
		LiquidationPrice: liq,
	}

	switch req.Side {
	case entity.SideLong:
		if req.TargetPrice > 0 {
			result.TargetGain = (req.TargetPrice - req.EntryPrice) * size
			result.TargetPercentage = result.TargetGain / req.Collateral * 100
		}
		if req.StopLossPrice > 0 {
			if c.stopHitsLiquidation(req.StopLossPrice <= liq, req.StopLossPrice < liq) {
				result.IsLiquidated = true
				result.StopLoss = -req.Collateral
				result.StopLossPercentage = -100
			} else {
				result.StopLoss = (req.StopLossPrice - req.EntryPrice) * size
				result.StopLossPercentage = result.StopLoss / req.Collateral * 100
			}
		}
	case entity.SideShort:
		if req.TargetPrice > 0 {
			result.TargetGain = (req.EntryPrice - req.TargetPrice) * size
			result.TargetPercentage = result.TargetGain / req.Collateral * 100
		}
		if req.StopLossPrice > 0 {
			if c.stopHitsLiquidation(req.StopLossPrice >= liq, req.StopLossPrice > liq) {
				result.IsLiquidated = true
				result.StopLoss = -req.Collateral
				result.StopLossPercentage = -100
			} else {
				result.StopLoss = (req.EntryPrice - req.StopLossPrice) * size
				result.StopLossPercentage = result.StopLoss / req.Collateral * 100
			}
		}
	}

	return result
}

// liquidationPrice computes the maintenance-margin-adjusted liquidation price
// for one side of a position.
func (c *riskCalculatorImpl) liquidationPrice(side entity.PositionSide, entryPrice, leverage float64) float64 {
	if side == entity.SideShort {
		return entryPrice * (leverage + 1) / (leverage * (1 + c.mmr))
	}
	return clampZero(entryPrice * (leverage - 1) / (leverage * (1 - c.mmr)))
}

// stopHitsLiquidation picks the inequality variant according to the strictness
// policy: the inclusive comparison counts touching the liquidation price as a
// liquidation, the exclusive one requires going beyond it.
func (c *riskCalculatorImpl) stopHitsLiquidation(inclusive, exclusive bool) bool {
	if c.strictStopCheck {
		return exclusive
	}
	return inclusive
}

// positionQuantity is the amount of the underlying controlled by the position.
func positionQuantity(entryPrice, leverage, collateral float64) float64 {
	return collateral * leverage / entryPrice
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
