package grade

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/gradebook/core"
)

const (
	MinMark = 0
	MaxMark = 100
)

type Grade struct {
	StudentID   string    `json:"student_id"`
	SubjectCode string    `json:"subject_code"`
	Mark        float64   `json:"mark"`
	RecordedAt  time.Time `json:"recorded_at"` // UTC
}

// NewGrade contains information needed to record a Grade.
// Recording a Grade for an existing (StudentID, SubjectCode) pair overwrites its Mark.
type NewGrade struct {
	StudentID   string  `json:"student_id"`
	SubjectCode string  `json:"subject_code"`
	Mark        float64 `json:"mark" validate:"gte=0,lte=100"`
}

func (ng *NewGrade) Clean() {
	ng.StudentID = core.CleanString(ng.StudentID)
	ng.SubjectCode = core.CleanString(ng.SubjectCode)
}

func invalidMarkError() error {
	return core.NewValidationError(core.ErrInvalidMark, core.FieldError{Field: "mark", Error: core.ErrInvalidMark.Error()})
}

// ParseMark converts free-text or decoded JSON input into a mark.
// Anything that is not a finite number in [MinMark, MaxMark] yields a core.ErrInvalidMark validation error.
func ParseMark(v interface{}) (float64, error) {
	var (
		mark float64
		err  error
	)
	switch val := v.(type) {
	case float64:
		mark = val
	case float32:
		mark = float64(val)
	case int:
		mark = float64(val)
	case int64:
		mark = float64(val)
	case json.Number:
		mark, err = val.Float64()
	case string:
		mark, err = strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return 0, invalidMarkError()
	}
	if err != nil || !validMark(mark) {
		return 0, invalidMarkError()
	}
	return mark, nil
}

func validMark(mark float64) bool {
	return !math.IsNaN(mark) && !math.IsInf(mark, 0) && mark >= MinMark && mark <= MaxMark
}
