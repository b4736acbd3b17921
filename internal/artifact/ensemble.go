package artifact

import (
	"errors"
	"fmt"
	"math"
)

// Ensemble objectives.
const (
	// ObjectiveSoftprob sums per-class margin trees and applies softmax.
	ObjectiveSoftprob = "multi:softprob"
	// ObjectiveLogistic sums margin trees and applies the sigmoid; two classes only.
	ObjectiveLogistic = "binary:logistic"
	// ObjectiveForest averages per-class probability vectors stored in the leaves.
	ObjectiveForest = "forest"
)

// ErrCompute is returned when scoring produces an unusable probability vector.
var ErrCompute = errors.New("model compute error")

// Ensemble is a serialized tree ensemble.
type Ensemble struct {
	Objective string  `json:"objective"`
	BaseScore float64 `json:"base_score"`
	Trees     []Tree  `json:"trees"`
}

// Tree is a flat array of nodes rooted at index 0.
type Tree struct {
	// Class is the output class for softprob trees; ignored otherwise.
	Class int    `json:"class"`
	Nodes []Node `json:"nodes"`
}

// Node is either a split (Leaf empty) or a leaf. A split sends x[Feature] < Threshold left.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Leaf      []float64 `json:"leaf,omitempty"`
}

func (n *Node) isLeaf() bool { return len(n.Leaf) > 0 }

func (m *Ensemble) validate(numFeatures, numClasses int) error {
	if len(m.Trees) == 0 {
		return fmt.Errorf("%w: ensemble has no trees", ErrMalformed)
	}

	leafWidth := 1
	switch m.Objective {
	case ObjectiveSoftprob:
	case ObjectiveLogistic:
		if numClasses != 2 {
			return fmt.Errorf("%w: %s needs 2 classes, have %d", ErrMalformed, m.Objective, numClasses)
		}
	case ObjectiveForest:
		leafWidth = numClasses
	default:
		return fmt.Errorf("%w: unsupported objective %q", ErrMalformed, m.Objective)
	}

	for ti, t := range m.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d is empty", ErrMalformed, ti)
		}
		if m.Objective == ObjectiveSoftprob && (t.Class < 0 || t.Class >= numClasses) {
			return fmt.Errorf("%w: tree %d class %d out of range", ErrMalformed, ti, t.Class)
		}
		for ni, n := range t.Nodes {
			if n.isLeaf() {
				if len(n.Leaf) != leafWidth {
					return fmt.Errorf("%w: tree %d node %d leaf has %d values, want %d", ErrMalformed, ti, ni, len(n.Leaf), leafWidth)
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= numFeatures {
				return fmt.Errorf("%w: tree %d node %d feature %d out of range", ErrMalformed, ti, ni, n.Feature)
			}
			if n.Left <= ni || n.Left >= len(t.Nodes) || n.Right <= ni || n.Right >= len(t.Nodes) {
				return fmt.Errorf("%w: tree %d node %d has invalid children", ErrMalformed, ti, ni)
			}
		}
	}
	return nil
}

// leaf walks the tree for x. Children always sit after their parent (checked in
// validate), so the walk terminates.
func (t *Tree) leaf(x []float64) []float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.isLeaf() {
			return n.Leaf
		}
		if x[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// PredictProba returns one probability per class, in training class order.
func (h *Handle) PredictProba(x []float64) ([]float64, error) {
	if len(x) != len(h.columns) {
		return nil, fmt.Errorf("%w: vector has %d features, model expects %d", ErrCompute, len(x), len(h.columns))
	}

	k := len(h.classes)
	var proba []float64

	switch h.model.Objective {
	case ObjectiveSoftprob:
		margins := make([]float64, k)
		for i := range margins {
			margins[i] = h.model.BaseScore
		}
		for i := range h.model.Trees {
			t := &h.model.Trees[i]
			margins[t.Class] += t.leaf(x)[0]
		}
		proba = softmax(margins)

	case ObjectiveLogistic:
		margin := h.model.BaseScore
		for i := range h.model.Trees {
			margin += h.model.Trees[i].leaf(x)[0]
		}
		p := 1 / (1 + math.Exp(-margin))
		proba = []float64{1 - p, p}

	case ObjectiveForest:
		proba = make([]float64, k)
		for i := range h.model.Trees {
			for c, v := range h.model.Trees[i].leaf(x) {
				proba[c] += v
			}
		}
		var sum float64
		for _, v := range proba {
			sum += v
		}
		if sum <= 0 {
			return nil, fmt.Errorf("%w: forest leaves sum to %v", ErrCompute, sum)
		}
		for c := range proba {
			proba[c] /= sum
		}
	}

	for c, p := range proba {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: class %s probability %v", ErrCompute, h.classes[c], p)
		}
	}
	return proba, nil
}

func softmax(margins []float64) []float64 {
	maxM := math.Inf(-1)
	for _, m := range margins {
		if m > maxM {
			maxM = m
		}
	}
	out := make([]float64, len(margins))
	var sum float64
	for i, m := range margins {
		out[i] = math.Exp(m - maxM)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
