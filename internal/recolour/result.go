package recolour

import "fmt"

// Result is the outcome code of a single recolour job.
type Result int

const (
	// ResultFailed marks a job stopped by an I/O or decoding error. It sits
	// outside the 0-3 outcome codes and always comes with a non-nil error.
	ResultFailed Result = -1

	// ResultSuccess means the recoloured image was written.
	ResultSuccess Result = 0

	// ResultNotFound means no catalog entry matched the file stem.
	ResultNotFound Result = 1

	// ResultLightAbsent means the light base colour is not in the image.
	ResultLightAbsent Result = 2

	// ResultDarkAbsent means the dark base colour is not in the image.
	ResultDarkAbsent Result = 3
)

// Codes returns the outcome codes in ascending order.
func Codes() []Result {
	return []Result{ResultSuccess, ResultNotFound, ResultLightAbsent, ResultDarkAbsent}
}

// String returns a short description of the result.
func (r Result) String() string {
	switch r {
	case ResultFailed:
		return "failed"
	case ResultSuccess:
		return "success"
	case ResultNotFound:
		return "entry not found"
	case ResultLightAbsent:
		return "light colour absent"
	case ResultDarkAbsent:
		return "dark colour absent"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}
