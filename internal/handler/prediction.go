package handler

import (
	"errors"
	"net/http"

	"listingprice/internal/model"
	"listingprice/internal/service"

	"github.com/gin-gonic/gin"
)

// PredictionHandler handles the JSON price API
type PredictionHandler struct {
	predictionService *service.PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionService *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}

// Predict handles POST /api/v1/predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	// Fields left out of the body keep the form defaults
	req := model.PredictRequest{ListingInput: model.DefaultListingInput()}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.predictionService.Predict(c.Request.Context(), &req)
	if err != nil {
		c.JSON(predictionErrorStatus(err), gin.H{"error": "Error making prediction: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Schema handles GET /api/v1/schema
func (h *PredictionHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictionService.Schema())
}

// Options handles GET /api/v1/options
func (h *PredictionHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictionService.Options())
}

// ModelInfo handles GET /api/v1/model
func (h *PredictionHandler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictionService.ModelInfo())
}

func predictionErrorStatus(err error) int {
	if errors.Is(err, service.ErrPredictionFailed) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
