// Standard attribute keys for estimator logging.
//
// Using the same keys everywhere keeps fit/predict logs filterable: every
// estimator reports "ml.operation", "data.samples", "data.features" and so on
// under identical names.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of estimator.
	// Examples: "LinearRegression", "KNeighborsClassifier"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is logging.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"

	// RunIDKey identifies one benchmark run.
	RunIDKey = "run.id"

	// DatasetKey names the dataset an estimator is trained or scored on.
	DatasetKey = "data.name"
)

// Data Shape
const (
	// SamplesKey is the number of rows.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns.
	FeaturesKey = "data.features"

	// ChunkSizeKey is the number of rows per parallel chunk.
	ChunkSizeKey = "data.chunk_size"
)

// Performance and Training Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// LossKey records the final training loss.
	LossKey = "metrics.loss"

	// R2ScoreKey records the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey records the gradient-descent iteration a failure happened in.
	IterationKey = "training.iteration"

	// IterationsKey records the configured number of iterations.
	IterationsKey = "training.iterations"
)

// Hyperparameters
const (
	// LearningRateKey records the gradient-descent step size.
	LearningRateKey = "hyperparams.learning_rate"

	// NeighborsKey records k for nearest-neighbour models.
	NeighborsKey = "hyperparams.k"

	// JobsKey records the degree of parallelism.
	JobsKey = "hyperparams.n_jobs"
)

// Error Context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	PhaseBenchmark = "benchmark"
)
