package domain

// Catalog lists the farm inputs a farmer can pick from before requesting a report.
type Catalog struct {
	SoilTypes         []string `json:"soil_types"`
	Crops             []Crop   `json:"crops"`
	IrrigationMethods []string `json:"irrigation_methods"`
	Fertilizers       []string `json:"fertilizers"`
}

// Crop is a selectable crop and its known variants.
type Crop struct {
	Name     string   `json:"name"`
	Variants []string `json:"variants"`
}
