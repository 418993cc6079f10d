package ml

// #region linear-regressor
// LinearRegressor is an online ridge-style regressor trained by single-sample
// SGD on squared error: yhat = w·x + b.
type LinearRegressor struct {
	Dim  int       `json:"dim"`
	LR   float64   `json:"lr"`
	L2   float64   `json:"l2"`
	W    []float64 `json:"w"`
	Bias float64   `json:"bias"`
}

// NewLinearRegressor creates a zero-initialized regressor.
func NewLinearRegressor(dim int) *LinearRegressor {
	return &LinearRegressor{Dim: dim, LR: 0.05, L2: 1e-4, W: make([]float64, dim)}
}

// Predict returns w·x + b.
func (r *LinearRegressor) Predict(x []float64) float64 {
	return dot(r.W, x) + r.Bias
}

// Update takes one gradient step toward y. L2 regularization applies to the
// weights only, never the bias.
func (r *LinearRegressor) Update(x []float64, y float64) {
	err := r.Predict(x) - y
	for i := 0; i < r.Dim; i++ {
		grad := err*x[i] + r.L2*r.W[i]
		r.W[i] -= r.LR * grad
	}
	r.Bias -= r.LR * err
}

// #endregion linear-regressor

// #region logistic-regressor
// LogisticRegressor is an online classifier trained by single-sample SGD on
// log loss: p = sigmoid(w·x + b).
type LogisticRegressor struct {
	Dim  int       `json:"dim"`
	LR   float64   `json:"lr"`
	L2   float64   `json:"l2"`
	W    []float64 `json:"w"`
	Bias float64   `json:"bias"`
}

// NewLogisticRegressor creates a zero-initialized classifier.
func NewLogisticRegressor(dim int) *LogisticRegressor {
	return &LogisticRegressor{Dim: dim, LR: 0.05, L2: 1e-4, W: make([]float64, dim)}
}

// PredictProba returns the probability of the positive class.
func (r *LogisticRegressor) PredictProba(x []float64) float64 {
	return sigmoid(dot(r.W, x) + r.Bias)
}

// Update takes one gradient step toward the 0/1 label.
func (r *LogisticRegressor) Update(x []float64, y01 float64) {
	err := r.PredictProba(x) - y01
	for i := 0; i < r.Dim; i++ {
		grad := err*x[i] + r.L2*r.W[i]
		r.W[i] -= r.LR * grad
	}
	r.Bias -= r.LR * err
}

// #endregion logistic-regressor
