package restapi

import (
	"net/http"
	"strings"

	"tokenscope/internal/domain/entity"
	"tokenscope/internal/pkg/utils"
	"tokenscope/internal/port"

	"github.com/gin-gonic/gin"
)

// CalculatorHandler handles HTTP requests for the position risk calculators.
// Inputs arrive as raw query strings because the UI recomputes on every
// keystroke; anything unparseable degrades to the calculator's zero result
// with HTTP 200 rather than an error.
type CalculatorHandler struct {
	calculator port.RiskCalculator
}

// NewCalculatorHandler creates a new instance of CalculatorHandler.
func NewCalculatorHandler(calculator port.RiskCalculator) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator}
}

// GetLiquidationHandler computes liquidation and bankruptcy prices for both
// sides of a position.
func (h *CalculatorHandler) GetLiquidationHandler(c *gin.Context) {
	entryPrice := utils.ParseFloatOrZero(c.Query("entryPrice"))
	leverage := utils.ParseFloatOrZero(c.Query("leverage"))
	collateral := utils.ParseFloatOrZero(c.Query("collateral"))

	result := h.calculator.ComputeLiquidation(entryPrice, leverage, collateral)

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetTpSlHandler computes the take-profit / stop-loss projection for one side.
func (h *CalculatorHandler) GetTpSlHandler(c *gin.Context) {
	req := entity.TpSlRequest{
		EntryPrice:    utils.ParseFloatOrZero(c.Query("entryPrice")),
		Leverage:      utils.ParseFloatOrZero(c.Query("leverage")),
		Collateral:    utils.ParseFloatOrZero(c.Query("collateral")),
		Side:          entity.PositionSide(strings.ToLower(c.DefaultQuery("side", string(entity.SideLong)))),
		TargetPrice:   utils.ParseFloatOrZero(c.Query("targetPrice")),
		StopLossPrice: utils.ParseFloatOrZero(c.Query("stopLossPrice")),
	}

	result := h.calculator.ComputeTpSl(req)

	c.JSON(http.StatusOK, gin.H{"data": result})
}
