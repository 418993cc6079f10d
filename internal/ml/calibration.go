package ml

// #region calibration
// Calibration tracks the running bias and variance of RPE residuals
// (reported minus predicted) for one exercise, via Welford's update.
type Calibration struct {
	N    int     `json:"n"`
	Bias float64 `json:"bias"`
	M2   float64 `json:"m2"`
}

// Update folds one residual into the running statistics.
func (c *Calibration) Update(residual float64) {
	c.N++
	delta := residual - c.Bias
	c.Bias += delta / float64(c.N)
	delta2 := residual - c.Bias
	c.M2 += delta * delta2
}

// Variance returns the sample variance, defaulting to 1 until two residuals
// have been seen.
func (c *Calibration) Variance() float64 {
	if c.N < 2 {
		return 1.0
	}
	return c.M2 / float64(c.N-1)
}

// Calibrate removes the learned reporting bias from a raw RPE.
func (c *Calibration) Calibrate(rpe float64) float64 {
	return rpe - c.Bias
}

// #endregion calibration
