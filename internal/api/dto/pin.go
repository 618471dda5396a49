package dto

import "time"

type CreatePinRequest struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
	ReportedBy  string  `json:"reported_by"`
}

type PinResponse struct {
	ID          string    `json:"id"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	ReportedBy  string    `json:"reported_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListPinsResponse struct {
	Pins []PinResponse `json:"pins"`
}
