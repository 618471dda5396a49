package dto

type CoordinateDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type RouteRequest struct {
	Start       CoordinateDTO `json:"start"`
	Destination CoordinateDTO `json:"destination"`
}

type RouteResponse struct {
	Path          []CoordinateDTO `json:"path"`
	DurationText  string          `json:"duration_text"`
	SafetyNote    string          `json:"safety_note"`
	ConflictCount int             `json:"conflict_count"`
	Detoured      bool            `json:"detoured"`
}
