// Package log defines standard attribute keys for tree building operations.
//
// Using these keys keeps the structured output of the estimators, the tree
// builder and the CLI consistent, so logs can be filtered by "ml.operation"
// or "tree.depth" regardless of which component emitted them.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "DecisionTreeClassifier", "DecisionTreeRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is performing the operation.
	// Examples: "tree.builder", "sklearn.tree", "cli"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"

	// TaskKey is either "classification" or "regression".
	TaskKey = "ml.task"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns).
	FeaturesKey = "data.features"

	// CategoricalKey indicates how many features were fixed as binary-categorical.
	CategoricalKey = "data.categorical"

	// LabelKey names the label column.
	LabelKey = "data.label"
)

// Tree structure
const (
	TreeDepthKey  = "tree.depth"
	TreeNodesKey  = "tree.nodes"
	TreeLeavesKey = "tree.leaves"
	NodeIDKey     = "tree.node_id"
)

// Split details, logged per node at debug level.
const (
	SplitFeatureKey   = "split.feature"
	SplitKindKey      = "split.kind"
	SplitThresholdKey = "split.threshold"
	SplitScoreKey     = "split.score"
	SplitLeftKey      = "split.left"
	SplitRightKey     = "split.right"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy.
	AccuracyKey = "metrics.accuracy"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// MSEKey records mean squared error for regression.
	MSEKey = "metrics.mse"
)

// Prediction and Output Context
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains model hyperparameters as a structured object.
	HyperParamsKey = "model.hyperparams"

	MaxDepthKey        = "hyperparams.max_depth"
	MinSamplesSplitKey = "hyperparams.min_samples_split"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	PhaseTraining   = "training"
	PhaseInference  = "inference"
	PhaseEvaluation = "evaluation"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorMissingFeature    = "MISSING_FEATURE"
)
