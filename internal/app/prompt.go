package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/randomtoy/cropreport-go/internal/domain"
)

// reportSchema describes each report key without repeating any input value.
// The fixed wording carries no digits, so a numeric area cannot collide with it.
var reportSchema = []struct{ key, instruction string }{
	{"score", "A suitability score out of ten for growing the selected crop on this farm, written as 'The suitability score for growing this crop on your land is X.X out of ten.'"},
	{"overview", "Summarize the overall suitability of the soil, crop, and conditions in one or two sentences."},
	{"key_observations", "Highlight key observations about soil texture, nutrient availability, and crop compatibility in two or three sentences."},
	{"assessments", "Give the potential yield percentage compared to optimal conditions, the average expected yield per acre, and any soil or climate-related limitations."},
	{"soil_and_weather_analysis", "Analyze soil composition, pH range, organic matter percentage, and how local weather affects crop growth."},
	{"fertilizer_evaluation", "Evaluate how effective the chosen fertilizer is and recommend additional nutrients or amendments if needed."},
	{"farming_recommendation", "Recommend planting depth, spacing, irrigation frequency, and disease prevention strategies."},
	{"suggested_farming_method", "Recommend a farming method based on the farm size, irrigation method, and soil type."},
	{"alternative_crops", "Suggest one or two alternative crops if the chosen crop is not highly suitable, explaining why they may be better options."},
	{"recommendations", "List specific actionable steps for fertilizer dosage, irrigation frequency, pest control, and expected yield improvements."},
}

// FormatAcres renders an area the way it is embedded in the prompt.
func FormatAcres(acres float64) string {
	return strconv.FormatFloat(acres, 'f', -1, 64)
}

// BuildPrompt embeds the request fields verbatim in the report instruction.
func BuildPrompt(req domain.ReportRequest) string {
	var b strings.Builder

	b.WriteString("You are an agricultural assistant. Write a soil and crop assessment report for a farmer ")
	b.WriteString("based on the farm details below. Use simple, farmer-friendly language and avoid technical jargon.\n\n")

	b.WriteString("Farm details:\n")
	fmt.Fprintf(&b, "- Soil type: %s\n", req.SoilType)
	fmt.Fprintf(&b, "- Crop: %s\n", req.Crop)
	fmt.Fprintf(&b, "- Crop variant: %s\n", req.CropVariant)
	fmt.Fprintf(&b, "- Previous crop: %s\n", req.PreviousCrop)
	fmt.Fprintf(&b, "- Selected fertilizer: %s\n", req.SelectedFertilizer)
	fmt.Fprintf(&b, "- Irrigation method: %s\n", req.IrrigationMethod)
	fmt.Fprintf(&b, "- Area size: %s acres\n", FormatAcres(req.AreaSizeAcres))

	b.WriteString("\nRespond with ONLY one JSON object (no markdown, no code fences, no extra text). ")
	b.WriteString("Every value must be a plain-language string. Use exactly these keys:\n{\n")
	for i, f := range reportSchema {
		fmt.Fprintf(&b, "  %q: %q", f.key, f.instruction)
		if i < len(reportSchema)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}
