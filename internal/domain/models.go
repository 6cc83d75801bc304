package domain

// ReportRequest holds the farm inputs collected by the selection pages.
// All text fields are required; AreaSizeAcres must be positive.
type ReportRequest struct {
	SoilType           string  `json:"soil_type"           validate:"required,notblank"`
	Crop               string  `json:"crop"                validate:"required,notblank"`
	CropVariant        string  `json:"crop_variant"        validate:"required,notblank"`
	PreviousCrop       string  `json:"previous_crop"       validate:"required,notblank"`
	SelectedFertilizer string  `json:"selected_fertilizer" validate:"required,notblank"`
	IrrigationMethod   string  `json:"irrigation_method"   validate:"required,notblank"`
	AreaSizeAcres      float64 `json:"area_size_acres"     validate:"gt=0,finite"`
}

// ReportResult is the ten-field assessment decoded from the model output.
type ReportResult struct {
	Score                  string `json:"score"`
	Overview               string `json:"overview"`
	KeyObservations        string `json:"key_observations"`
	Assessments            string `json:"assessments"`
	SoilAndWeatherAnalysis string `json:"soil_and_weather_analysis"`
	FertilizerEvaluation   string `json:"fertilizer_evaluation"`
	FarmingRecommendation  string `json:"farming_recommendation"`
	SuggestedFarmingMethod string `json:"suggested_farming_method"`
	AlternativeCrops       string `json:"alternative_crops"`
	Recommendations        string `json:"recommendations"`
}

// ReportFields lists the keys every report object must carry, in display order.
var ReportFields = []string{
	"score",
	"overview",
	"key_observations",
	"assessments",
	"soil_and_weather_analysis",
	"fertilizer_evaluation",
	"farming_recommendation",
	"suggested_farming_method",
	"alternative_crops",
	"recommendations",
}

// Labels maps report keys to the English headings used by text renderers.
var Labels = map[string]string{
	"score":                     "Score",
	"overview":                  "Overview",
	"key_observations":          "Key Observations",
	"assessments":               "Assessments",
	"soil_and_weather_analysis": "Soil and Weather Analysis",
	"fertilizer_evaluation":     "Fertilizer Evaluation",
	"farming_recommendation":    "Farming Recommendation",
	"suggested_farming_method":  "Suggested Farming Method",
	"alternative_crops":         "Alternative Crops",
	"recommendations":           "Recommendations",
}

// Field returns the value stored under a report key, or "" for unknown keys.
func (r ReportResult) Field(key string) string {
	switch key {
	case "score":
		return r.Score
	case "overview":
		return r.Overview
	case "key_observations":
		return r.KeyObservations
	case "assessments":
		return r.Assessments
	case "soil_and_weather_analysis":
		return r.SoilAndWeatherAnalysis
	case "fertilizer_evaluation":
		return r.FertilizerEvaluation
	case "farming_recommendation":
		return r.FarmingRecommendation
	case "suggested_farming_method":
		return r.SuggestedFarmingMethod
	case "alternative_crops":
		return r.AlternativeCrops
	case "recommendations":
		return r.Recommendations
	default:
		return ""
	}
}
