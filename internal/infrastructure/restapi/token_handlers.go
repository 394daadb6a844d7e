package restapi

import (
	"net/http"

	"tokenscope/internal/domain/entity"
	"tokenscope/internal/port"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APITokenResponse is the response envelope of the token lookup endpoint.
type APITokenResponse struct {
	Data          entity.ResolvedToken `json:"data"`
	StatusMessage string               `json:"status_message"`
}

// TokenHandler handles HTTP requests related to token lookups.
type TokenHandler struct {
	resolver port.TokenResolver
	market   port.MarketOverviewService
	history  port.SearchHistory
	logger   *zap.Logger
}

// NewTokenHandler creates a new instance of TokenHandler.
func NewTokenHandler(resolver port.TokenResolver, market port.MarketOverviewService, history port.SearchHistory, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		resolver: resolver,
		market:   market,
		history:  history,
		logger:   logger.Named("TokenHandler"),
	}
}

// GetTokenHandler resolves a token by symbol or contract address.
func (h *TokenHandler) GetTokenHandler(c *gin.Context) {
	ctx := c.Request.Context()
	query := c.Param("query")

	resolved, err := h.resolver.Resolve(ctx, query)
	if err != nil {
		// Resolution only fails on blank input or a cancelled request.
		h.logger.Warn("Token resolution failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"status_message": "Token query could not be processed. Please check the token name."})
		return
	}

	h.history.Record(query)

	response := APITokenResponse{Data: resolved}
	if resolved.Source.IsSynthetic() {
		response.StatusMessage = "No live data source could serve this token; showing simulated data."
	} else {
		response.StatusMessage = "Token data retrieved successfully."
	}
	c.JSON(http.StatusOK, response)
}

// GetTokenListHandler returns the popular-token list.
func (h *TokenHandler) GetTokenListHandler(c *gin.Context) {
	list, err := h.market.GetTokenList(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to build token list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status_message": "Token list is unavailable."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"tokens": list}, "status_message": "Token list retrieved successfully."})
}

// GetMarketOverviewHandler returns aggregated market numbers.
func (h *TokenHandler) GetMarketOverviewHandler(c *gin.Context) {
	overview, err := h.market.GetMarketOverview(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to build market overview", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status_message": "Market data is unavailable."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": overview, "status_message": "Market data retrieved successfully."})
}

// GetRecentSearchesHandler returns the latest resolve queries, newest first.
func (h *TokenHandler) GetRecentSearchesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"searches": h.history.Recent()}})
}
