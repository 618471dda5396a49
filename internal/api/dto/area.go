package dto

type CitationResponse struct {
	Title   string   `json:"title"`
	URI     string   `json:"uri"`
	Reviews []string `json:"reviews,omitempty"`
}

type AreaSummaryResponse struct {
	Text      string             `json:"text"`
	Citations []CitationResponse `json:"citations"`
}

type PlaceResponse struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address,omitempty"`
}

type ListPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}
