package workflow

// User-facing texts. The wording is part of the behaviour users rely on.
const (
	LabelRunQuery        = "Run the Query"
	LabelRunningQuery    = "Running Query..."
	LabelGenerateChart   = "Generate Chart"
	LabelGeneratingChart = "Generating Chart..."
	LabelShowChecks      = "Show Atomic Checks"
	LabelHideChecks      = "Hide Atomic Checks"
	LabelTestCheck       = "Test This Query"

	TextLoading           = "Loading..."
	TextNoMainQuery       = "No main SQL query returned."
	TextNoData            = "No data returned or data format is incorrect."
	TextNoChecks          = "No atomic checks generated for this query."
	TextNoCheckResult     = "No result returned or result is empty."
	TextNetworkRetry      = "Network error. Please try again."
	TextChartLoading      = "Loading Chart Data Result..."
	TextNoChartResult     = "No explicit query result for chart."
	TextNoChartData       = "No chart data available"
	TextCanvasNetwork     = "Network error."
	TextExecutingCheck    = "Executing atomic query..."
	TextNoResult          = "No result."
	TextCheckFailed       = "Failed to execute atomic query"
	TextCheckNetworkError = "Network error during atomic query test."
	TextUnknownError      = "Unknown error"

	ToastSQLGenerated    = "SQL Generated Successfully"
	ToastQueryFailed     = "Something went wrong during query execution"
	ToastQueryNetwork    = "Network error during query execution. Please try again."
	ToastNoSQL           = "No SQL query available to generate chart."
	ToastChartGenerated  = "Chart Generated Successfully"
	ToastChartFailed     = "No chart data received or error during chart generation"
	ToastChartNetwork    = "Network error during chart generation. Please try again."
	ToastCheckPassed     = "Atomic check successful!"
	ToastCheckFailed     = "Atomic check failed!"
	ToastCheckNetwork    = "Network error during atomic check."
)

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
