package model

import "math"

// PurchaseEstimate holds the results of a board purchasing calculation.
type PurchaseEstimate struct {
	TotalCutInches    float64 `json:"total_cut_inches"`    // Demand including kerf allowance
	TotalLinearFeet   float64 `json:"total_linear_feet"`   // Demand in linear feet
	BoardLengthInches float64 `json:"board_length_inches"` // Length of one board
	BoardsNeededExact float64 `json:"boards_needed_exact"` // Exact fractional number of boards
	BoardsNeededMin   int     `json:"boards_needed_min"`   // Ceiling of exact
	BoardsWithWaste   int     `json:"boards_with_waste"`   // Recommended boards including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	PricePerBoard     float64 `json:"price_per_board"`
	EstimatedCost     float64 `json:"estimated_cost"`
	KerfInches        float64 `json:"kerf_inches"`
}

// CalculatePurchaseEstimate computes how many boards of one length to buy for
// a cut list. Each cut instance is charged one kerf. Cuts with a bad unit are
// reported through the returned error.
func CalculatePurchaseEstimate(cuts []CutSpec, boardLengthInches, kerfInches, wastePercent, pricePerBoard float64) (PurchaseEstimate, error) {
	var total float64
	for _, c := range cuts {
		in, err := c.LengthInches()
		if err != nil {
			return PurchaseEstimate{}, err
		}
		total += (in + kerfInches) * float64(c.Quantity)
	}

	est := PurchaseEstimate{
		TotalCutInches:    total,
		TotalLinearFeet:   total / 12.0,
		BoardLengthInches: boardLengthInches,
		WastePercent:      wastePercent,
		PricePerBoard:     pricePerBoard,
		KerfInches:        kerfInches,
	}
	if boardLengthInches <= 0 {
		return est, nil
	}

	est.BoardsNeededExact = total / boardLengthInches
	est.BoardsNeededMin = int(math.Ceil(est.BoardsNeededExact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.BoardsWithWaste = int(math.Ceil(est.BoardsNeededExact * wasteFactor))
	if est.BoardsWithWaste < est.BoardsNeededMin {
		est.BoardsWithWaste = est.BoardsNeededMin
	}
	est.EstimatedCost = float64(est.BoardsWithWaste) * pricePerBoard
	return est, nil
}
