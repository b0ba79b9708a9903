package handler

import (
	"net/http"

	"listingprice/internal/features"
	"listingprice/internal/model"
	"listingprice/internal/service"

	"github.com/gin-gonic/gin"
)

// FormTemplate is the name of the page template
const FormTemplate = "index.html"

// FormHandler serves the browser form
type FormHandler struct {
	predictionService *service.PredictionService
}

// NewFormHandler creates a new form handler
func NewFormHandler(predictionService *service.PredictionService) *FormHandler {
	return &FormHandler{
		predictionService: predictionService,
	}
}

type numberField struct {
	Field string
	Label string
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

type checkbox struct {
	Column  string
	Label   string
	Checked bool
}

type formView struct {
	Input          model.ListingInput
	RoomTypes      []string
	Neighbourhoods []string
	Numbers        []numberField
	Amenities      []checkbox
	Model          *model.ModelInfo
	Result         *model.PredictResponse
	Error          string
}

// Show handles GET /
func (h *FormHandler) Show(c *gin.Context) {
	c.HTML(http.StatusOK, FormTemplate, h.view(model.DefaultListingInput()))
}

// Submit handles POST /
func (h *FormHandler) Submit(c *gin.Context) {
	in := model.DefaultListingInput()
	if err := c.ShouldBind(&in); err != nil {
		view := h.view(in)
		view.Error = "Invalid input: " + err.Error()
		c.HTML(http.StatusBadRequest, FormTemplate, view)
		return
	}

	resp, err := h.predictionService.Predict(c.Request.Context(), &model.PredictRequest{ListingInput: in})
	view := h.view(in)
	if err != nil {
		view.Error = "Error making prediction: " + err.Error()
		c.HTML(predictionErrorStatus(err), FormTemplate, view)
		return
	}

	view.Result = resp
	c.HTML(http.StatusOK, FormTemplate, view)
}

func (h *FormHandler) view(in model.ListingInput) formView {
	numbers := make([]numberField, len(features.Bounds))
	for i, b := range features.Bounds {
		numbers[i] = numberField{
			Field: b.Field,
			Label: b.Label,
			Min:   b.Min,
			Max:   b.Max,
			Step:  b.Step,
			Value: b.Value(&in),
		}
	}

	amenities := make([]checkbox, len(features.Amenities))
	for i, a := range features.Amenities {
		amenities[i] = checkbox{Column: a.Column, Label: a.Label, Checked: a.Checked(&in)}
	}

	return formView{
		Input:          in,
		RoomTypes:      model.RoomTypes,
		Neighbourhoods: model.Neighbourhoods,
		Numbers:        numbers,
		Amenities:      amenities,
		Model:          h.predictionService.ModelInfo(),
	}
}
