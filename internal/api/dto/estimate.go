package dto

import "directions-route-service/internal/domain"

type EstimateResponse struct {
	Mode            string `json:"mode"`
	DistanceText    string `json:"distance_text"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationText    string `json:"duration_text"`
	DurationSeconds int    `json:"duration_seconds"`
	StartAddress    string `json:"start_address,omitempty"`
	EndAddress      string `json:"end_address,omitempty"`
}

func NewEstimateResponse(mode domain.TravelMode, e domain.Estimate) EstimateResponse {
	return EstimateResponse{
		Mode:            mode.String(),
		DistanceText:    e.DistanceText,
		DistanceMeters:  e.DistanceValue,
		DurationText:    e.DurationText,
		DurationSeconds: e.DurationValue,
		StartAddress:    e.StartAddress,
		EndAddress:      e.EndAddress,
	}
}
