package models

// LibraryFeature is a reusable feature from the catalog
type LibraryFeature struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Effort      string   `json:"effort"`
	Tags        []string `json:"tags"`
}

// FeaturePack groups catalog features for a kind of product
type FeaturePack struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Features    []LibraryFeature `json:"features"`
}
