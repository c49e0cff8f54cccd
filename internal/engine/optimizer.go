package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/BoardCut/internal/model"
)

// fitEpsilon absorbs floating-point residue when comparing lengths in inches.
const fitEpsilon = 1e-9

// Optimizer runs the 1D best-fit cutting algorithm.
type Optimizer struct {
	Settings model.PlanSettings
}

func New(settings model.PlanSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize plans boards and cuts with the default settings.
func Optimize(boards []model.BoardSpec, cuts []model.CutSpec) (model.PlanResult, error) {
	return New(model.DefaultSettings()).Optimize(boards, cuts)
}

// boardPiece is one physical board expanded from a BoardSpec.
type boardPiece struct {
	boardIndex  int
	pieceID     int
	start       float64
	remaining   float64
	kerf        float64
	assignments []int
}

// cutInstance is one physical cut expanded from a CutSpec.
type cutInstance struct {
	cutIndex int
	length   float64
}

// Optimize assigns every desired cut to a board piece, longest cut first,
// choosing the piece that leaves the least slack. Ties go to the board listed
// first, then to the lowest piece id. Inputs are never modified.
//
// Unit conversion errors are returned unchanged in the error chain. When
// either list is empty no plan is made; any demand is reported as shortfall.
func (o *Optimizer) Optimize(boards []model.BoardSpec, cuts []model.CutSpec) (model.PlanResult, error) {
	pieces, err := expandBoards(boards)
	if err != nil {
		return model.PlanResult{}, err
	}
	instances, err := expandCuts(cuts)
	if err != nil {
		return model.PlanResult{}, err
	}

	result := model.PlanResult{
		Assignments:     []model.Assignment{},
		RemainingBoards: []model.RemainingBoard{},
		Pieces:          []model.PieceUsage{},
		UnsatisfiedCuts: []model.CutSpec{},
	}

	if len(pieces) == 0 || len(instances) == 0 {
		for _, inst := range instances {
			result.AdditionalMaterialNeededInches += inst.length
			result.UnsatisfiedCuts = append(result.UnsatisfiedCuts, cuts[inst.cutIndex])
		}
		result.Message = model.MessageNothingToPlan
		return result, nil
	}

	var shortfall float64
	for _, inst := range instances {
		idx, need := o.bestFit(pieces, inst.length)
		if idx < 0 {
			shortfall += inst.length
			result.UnsatisfiedCuts = append(result.UnsatisfiedCuts, cuts[inst.cutIndex])
			continue
		}

		bp := &pieces[idx]
		result.Assignments = append(result.Assignments, model.Assignment{
			Cut:             cuts[inst.cutIndex],
			CutIndex:        inst.cutIndex,
			QuantityToCut:   1,
			Board:           boards[bp.boardIndex],
			BoardIndex:      bp.boardIndex,
			PieceID:         bp.pieceID,
			CutLengthInches: inst.length,
		})
		bp.kerf += need - inst.length
		bp.remaining -= need
		if bp.remaining < 0 {
			bp.remaining = 0
		}
		bp.assignments = append(bp.assignments, len(result.Assignments)-1)
	}

	o.aggregate(&result, boards, pieces, shortfall)
	return result, nil
}

// bestFit returns the index of the piece with the tightest fit for a cut of
// the given length, and the length that cut consumes on it (cut plus any
// kerf). It returns -1 when no piece can take the cut.
func (o *Optimizer) bestFit(pieces []boardPiece, length float64) (int, float64) {
	best := -1
	var bestNeed, bestSlack float64
	for i := range pieces {
		need := length + o.kerfFor(&pieces[i])
		if pieces[i].remaining+fitEpsilon < need {
			continue
		}
		slack := pieces[i].remaining - need
		// Pieces are ordered by board index then piece id, so keeping the
		// first of equal slacks applies the tie-break.
		if best < 0 || slack < bestSlack-fitEpsilon {
			best = i
			bestNeed = need
			bestSlack = slack
		}
	}
	return best, bestNeed
}

// kerfFor returns the blade allowance a new cut costs on the piece. The first
// cut on a board is taken from its end and costs nothing.
func (o *Optimizer) kerfFor(bp *boardPiece) float64 {
	if len(bp.assignments) == 0 || o.Settings.KerfInches <= 0 {
		return 0
	}
	return o.Settings.KerfInches
}

// aggregate fills waste, shortfall, leftovers and the status message.
func (o *Optimizer) aggregate(result *model.PlanResult, boards []model.BoardSpec, pieces []boardPiece, shortfall float64) {
	threshold := o.Settings.RemnantThreshold()

	var waste float64
	for _, bp := range pieces {
		board := boards[bp.boardIndex]
		result.Pieces = append(result.Pieces, model.PieceUsage{
			PieceID:         bp.pieceID,
			BoardIndex:      bp.boardIndex,
			Board:           board,
			StartInches:     bp.start,
			RemainingInches: bp.remaining,
			KerfInches:      bp.kerf,
			Assignments:     append([]int{}, bp.assignments...),
		})
		result.TotalKerfInches += bp.kerf

		if len(bp.assignments) > 0 {
			waste += bp.remaining
		}
		if bp.remaining > threshold {
			result.RemainingBoards = append(result.RemainingBoards, model.RemainingBoard{
				SourceID:   board.ID,
				BoardIndex: bp.boardIndex,
				PieceID:    bp.pieceID,
				Label:      board.Label,
				Length:     bp.remaining,
				Unit:       "in",
				Quantity:   1,
			})
		}
	}

	result.AdditionalMaterialNeededInches = shortfall
	if shortfall > 0 {
		result.TotalWasteInches = 0
		result.Message = model.ShortfallMessage(shortfall)
		return
	}
	result.TotalWasteInches = waste
	result.Message = model.MessageComplete
}

// expandBoards creates one piece per physical board, in input order.
func expandBoards(boards []model.BoardSpec) ([]boardPiece, error) {
	var pieces []boardPiece
	pieceID := 0
	for i, b := range boards {
		length, err := b.LengthInches()
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", i, err)
		}
		for q := 0; q < b.Quantity; q++ {
			pieces = append(pieces, boardPiece{
				boardIndex: i,
				pieceID:    pieceID,
				start:      length,
				remaining:  length,
			})
			pieceID++
		}
	}
	return pieces, nil
}

// expandCuts sorts cut specs by length descending, keeping input order for
// equal lengths, then creates one instance per physical cut.
func expandCuts(cuts []model.CutSpec) ([]cutInstance, error) {
	lengths := make([]float64, len(cuts))
	order := make([]int, len(cuts))
	for i, c := range cuts {
		length, err := c.LengthInches()
		if err != nil {
			return nil, fmt.Errorf("cut %d: %w", i, err)
		}
		lengths[i] = length
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return lengths[order[a]] > lengths[order[b]]
	})

	var instances []cutInstance
	for _, idx := range order {
		for q := 0; q < cuts[idx].Quantity; q++ {
			instances = append(instances, cutInstance{cutIndex: idx, length: lengths[idx]})
		}
	}
	return instances, nil
}
