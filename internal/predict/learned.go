package predict

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/reliefroute/backend/internal/models"
)

var ErrModelUnavailable = errors.New("learned model unavailable")

const (
	ridgeLambda = 0.5
	// Hashed bag-of-words buckets appended to the classifier features. The
	// text signal is down-weighted the same way the reference training did.
	textBuckets = 8
	textWeight  = 0.5
)

// regressor is one trained ridge-regression demand model: quantity =
// intercept + w · features.
type regressor struct {
	weights   []float64
	intercept float64
}

func (r *regressor) predict(features []float64) float64 {
	out := r.intercept
	for i, w := range r.weights {
		if i < len(features) {
			out += w * features[i]
		}
	}
	return out
}

// importance reports |weight| per feature name, normalized to sum to 1.
func (r *regressor) importance() map[string]float64 {
	total := 0.0
	for _, w := range r.weights {
		total += math.Abs(w)
	}
	if total == 0 {
		return nil
	}
	out := make(map[string]float64, len(r.weights))
	for i, w := range r.weights {
		if i < len(FeatureNames) {
			out[FeatureNames[i]] = math.Abs(w) / total
		}
	}
	return out
}

// fitRidge solves (XᵀX + λI)w = Xᵀy in closed form.
func fitRidge(rows [][]float64, targets []float64) (*regressor, error) {
	if len(rows) == 0 || len(rows) != len(targets) {
		return nil, fmt.Errorf("fit ridge: %d rows, %d targets", len(rows), len(targets))
	}
	n := len(rows)
	d := len(rows[0]) + 1 // +1 for intercept column

	x := mat.NewDense(n, d, nil)
	y := mat.NewVecDense(n, nil)
	for i, row := range rows {
		x.Set(i, 0, 1)
		for j, v := range row {
			x.Set(i, j+1, v)
		}
		y.SetVec(i, targets[i])
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for j := 0; j < d; j++ {
		xtx.Set(j, j, xtx.At(j, j)+ridgeLambda)
	}
	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var w mat.VecDense
	if err := w.SolveVec(&xtx, &xty); err != nil {
		return nil, fmt.Errorf("fit ridge: %w", err)
	}

	weights := make([]float64, d-1)
	for j := 1; j < d; j++ {
		weights[j-1] = w.AtVec(j)
	}
	return &regressor{weights: weights, intercept: w.AtVec(0)}, nil
}

// classifier is a multinomial logistic model over the numeric features plus
// hashed text buckets, trained by batch gradient descent.
type classifier struct {
	// weights[class][feature]; last column is the bias.
	weights [][]float64
	dim     int
}

func textFeatures(s models.Scenario) []float64 {
	buckets := make([]float64, textBuckets)
	text := strings.ToLower(strings.Join(append(append([]string{string(s.DisasterType), s.Notes}, s.Zones...), s.BlockedRoads...), " "))
	for _, tok := range strings.Fields(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		buckets[int(h.Sum32())%textBuckets] += textWeight
	}
	return buckets
}

func classifierFeatures(s models.Scenario) []float64 {
	numeric, _ := Features(s)
	return append(numeric, textFeatures(s)...)
}

func historicalClassifierFeatures(h models.HistoricalScenario) []float64 {
	s := models.Scenario{
		DisasterType: h.DisasterType,
		Severity:     h.Severity,
		Population:   h.Population,
		Zones:        h.Zones,
		HospitalLoad: h.HospitalLoad,
		BlockedRoads: h.BlockedRoads,
	}
	return classifierFeatures(s)
}

func fitClassifier(rows [][]float64, labels []models.RiskLevel) (*classifier, error) {
	if len(rows) == 0 || len(rows) != len(labels) {
		return nil, fmt.Errorf("fit classifier: %d rows, %d labels", len(rows), len(labels))
	}
	dim := len(rows[0])
	const classes = 4
	const epochs = 400
	const lr = 0.5

	x := mat.NewDense(len(rows), dim+1, nil)
	for i, row := range rows {
		for j, v := range row {
			x.Set(i, j, v)
		}
		x.Set(i, dim, 1)
	}

	w := mat.NewDense(classes, dim+1, nil)
	grad := mat.NewDense(classes, dim+1, nil)
	probs := make([]float64, classes)
	for epoch := 0; epoch < epochs; epoch++ {
		grad.Zero()
		for i := 0; i < len(rows); i++ {
			xi := x.RawRowView(i)
			maxLogit := math.Inf(-1)
			for c := 0; c < classes; c++ {
				probs[c] = dot(w.RawRowView(c), xi)
				if probs[c] > maxLogit {
					maxLogit = probs[c]
				}
			}
			sum := 0.0
			for c := 0; c < classes; c++ {
				probs[c] = math.Exp(probs[c] - maxLogit)
				sum += probs[c]
			}
			for c := 0; c < classes; c++ {
				p := probs[c] / sum
				target := 0.0
				if models.RiskLevel(c) == labels[i] {
					target = 1.0
				}
				delta := p - target
				gRow := grad.RawRowView(c)
				for j, v := range xi {
					gRow[j] += delta * v
				}
			}
		}
		scale := lr / float64(len(rows))
		for c := 0; c < classes; c++ {
			wRow := w.RawRowView(c)
			gRow := grad.RawRowView(c)
			for j := range wRow {
				wRow[j] -= scale * gRow[j]
			}
		}
	}

	weights := make([][]float64, classes)
	for c := 0; c < classes; c++ {
		weights[c] = append([]float64{}, w.RawRowView(c)...)
	}
	return &classifier{weights: weights, dim: dim}, nil
}

func dot(w, x []float64) float64 {
	out := 0.0
	for i := range x {
		out += w[i] * x[i]
	}
	return out
}

func (c *classifier) predict(features []float64) (models.RiskLevel, map[string]float64) {
	if len(features) != c.dim {
		return models.RiskLow, nil
	}
	withBias := append(append([]float64{}, features...), 1)
	best := models.RiskLow
	bestScore := math.Inf(-1)
	for class := 0; class < len(c.weights); class++ {
		score := dot(c.weights[class], withBias)
		if score > bestScore {
			bestScore = score
			best = models.RiskLevel(class)
		}
	}

	// Contribution of each named numeric feature to the winning class.
	weights := map[string]float64{}
	row := c.weights[int(best)]
	for i, name := range FeatureNames {
		if i < len(features) {
			weights[name] = row[i] * features[i]
		}
	}
	return best, weights
}
