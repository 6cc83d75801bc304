package app_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randomtoy/cropreport-go/internal/app"
	"github.com/randomtoy/cropreport-go/internal/domain"
)

func TestBuildPrompt_EachInputExactlyOnce(t *testing.T) {
	req := testRequest()
	prompt := app.BuildPrompt(req)

	for _, v := range []string{
		req.SoilType,
		req.Crop,
		req.CropVariant,
		req.PreviousCrop,
		req.SelectedFertilizer,
		req.IrrigationMethod,
		app.FormatAcres(req.AreaSizeAcres),
	} {
		assert.Equal(t, 1, strings.Count(prompt, v), "value %q", v)
	}
}

func TestBuildPrompt_AcresExactlyOnce(t *testing.T) {
	// Text inputs without digits, so only the area can contribute numbers.
	req := domain.ReportRequest{
		SoilType:           "Sandy",
		Crop:               "Barley",
		CropVariant:        "Malting",
		PreviousCrop:       "Fallow",
		SelectedFertilizer: "Compost",
		IrrigationMethod:   "Furrow",
	}

	for _, acres := range []float64{1, 2, 3, 5, 10, 0.5, 3.75, 100} {
		req.AreaSizeAcres = acres
		prompt := app.BuildPrompt(req)
		v := app.FormatAcres(acres)
		assert.Equal(t, 1, strings.Count(prompt, v), "acres %s", v)
	}
}

func TestBuildPrompt_Verbatim(t *testing.T) {
	req := domain.ReportRequest{
		SoilType:           `Red "laterite" soil`,
		Crop:               "Ragi (finger millet)",
		CropVariant:        "GPU-28",
		PreviousCrop:       "Tur dal",
		SelectedFertilizer: "NPK 19:19:19",
		IrrigationMethod:   "Rainfed / tank",
		AreaSizeAcres:      12,
	}
	prompt := app.BuildPrompt(req)

	assert.Contains(t, prompt, "- Soil type: Red \"laterite\" soil\n")
	assert.Contains(t, prompt, "- Selected fertilizer: NPK 19:19:19\n")
	assert.Contains(t, prompt, "- Area size: 12 acres\n")
}

func TestBuildPrompt_ListsEveryReportKey(t *testing.T) {
	prompt := app.BuildPrompt(testRequest())
	for _, key := range domain.ReportFields {
		assert.Contains(t, prompt, `"`+key+`":`)
	}
	assert.Contains(t, prompt, "ONLY one JSON object")
}

func TestFormatAcres(t *testing.T) {
	assert.Equal(t, "2.5", app.FormatAcres(2.5))
	assert.Equal(t, "10", app.FormatAcres(10))
	assert.Equal(t, "0.125", app.FormatAcres(0.125))
}
