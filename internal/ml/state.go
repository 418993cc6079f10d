package ml

// #region dims
const (
	// FeatureDim is the length of every context vector fed to the models.
	FeatureDim = 16

	// EmbedDim is the length of user and exercise embeddings.
	EmbedDim = 4

	// banditAlpha is the fixed LinUCB exploration constant.
	banditAlpha = 1.5
)

// #endregion dims

// #region state
// State is the persistent per-user learning state. Every learned-policy call
// reads and mutates it in place; the caller owns its lifecycle (creation,
// persistence, reset).
//
// A State instance is not safe for concurrent use: updates are multi-field
// mutations. Run at most one suggestion call against it at a time; distinct
// users' State values are independent.
type State struct {
	// RPEModel predicts the RPE of a proposed next set.
	RPEModel *LinearRegressor `json:"rpe_model"`

	// ReadinessModel predicts fatigue (0 = ready, 1 = fatigued).
	ReadinessModel *LogisticRegressor `json:"readiness_model"`

	// Bandit prefers among action types.
	Bandit *LinUCB `json:"bandit"`

	// CalibrationByExercise holds residual bias/variance stats per exercise.
	CalibrationByExercise map[string]*Calibration `json:"calibration_by_exercise"`

	// UserEmbed and ExerciseEmbed are lazily-initialized entity embeddings.
	UserEmbed     *EmbeddingTable `json:"user_embed"`
	ExerciseEmbed *EmbeddingTable `json:"exercise_embed"`
}

// NewState creates a fresh learning state.
func NewState() *State {
	return &State{
		RPEModel:              NewLinearRegressor(FeatureDim),
		ReadinessModel:        NewLogisticRegressor(FeatureDim),
		Bandit:                NewLinUCB(FeatureDim, banditAlpha),
		CalibrationByExercise: make(map[string]*Calibration),
		UserEmbed:             NewEmbeddingTable(EmbedDim),
		ExerciseEmbed:         NewEmbeddingTable(EmbedDim),
	}
}

// Seed makes lazy embedding initialization deterministic, for reproducible
// offline runs.
func (s *State) Seed(seed int64) {
	s.UserEmbed.Seed(seed)
	s.ExerciseEmbed.Seed(seed + 1)
}

// calibrationFor returns the per-exercise calibration, creating it on first
// use.
func (s *State) calibrationFor(exercise string) *Calibration {
	if s.CalibrationByExercise == nil {
		s.CalibrationByExercise = make(map[string]*Calibration)
	}
	cal, ok := s.CalibrationByExercise[exercise]
	if !ok {
		cal = &Calibration{}
		s.CalibrationByExercise[exercise] = cal
	}
	return cal
}

// #endregion state
