package domain

// Estimate is the distance/duration pair of a route's first leg.
// It is derived on demand and never stored.
type Estimate struct {
	DistanceText  string `json:"distance_text"`
	DistanceValue int    `json:"distance_value"`
	DurationText  string `json:"duration_text"`
	DurationValue int    `json:"duration_value"`
	StartAddress  string `json:"start_address,omitempty"`
	EndAddress    string `json:"end_address,omitempty"`
}

// EstimateFromResponse extracts routes[0].legs[0] as an Estimate.
// An empty result is ErrNoRouteFound, never a zero Estimate.
func EstimateFromResponse(resp *DirectionsResponse) (Estimate, error) {
	_, leg, err := resp.FirstLeg()
	if err != nil {
		return Estimate{}, err
	}

	return EstimateFromLeg(leg), nil
}

func EstimateFromLeg(leg Leg) Estimate {
	return Estimate{
		DistanceText:  leg.Distance.Text,
		DistanceValue: leg.Distance.Value,
		DurationText:  leg.Duration.Text,
		DurationValue: leg.Duration.Value,
		StartAddress:  leg.StartAddress,
		EndAddress:    leg.EndAddress,
	}
}
