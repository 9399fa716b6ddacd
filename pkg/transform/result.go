// File: pkg/transform/result.go
package transform

// Result is the outcome of one Transform call. Every outcome, success or
// failure, is reported through it; callers inspect Success.
type Result struct {
	Content        string // Full artifact text, summary included.
	OutputPath     string // Where the artifact was written.
	Success        bool   // False when the transform failed.
	ErrorMessage   string // Human-readable cause when Success is false.
	FilesProcessed int    // Number of file blocks in Content.
	LimitReached   bool   // The total file cap was hit.
	Err            error  // Wrapped cause for errors.Is; nil on success.
}

func failure(err error) Result {
	return Result{
		Success:      false,
		ErrorMessage: "error processing directory: " + err.Error(),
		Err:          err,
	}
}
