package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/gradebook/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}
	ord.Orderings = core.ParseOrderings(val)
}

type (
	SuccessResponse struct {
		Success string `json:"success"`
	}

	GPAResponse struct {
		StudentID string   `json:"student_id"`
		Average   *float64 `json:"average"` // null when the student has no grade
	}

	// RecordGradeRequest keeps the mark raw so that strings & numbers both reach grade.ParseMark.
	RecordGradeRequest struct {
		StudentID   string      `json:"student_id"`
		SubjectCode string      `json:"subject_code"`
		Mark        interface{} `json:"mark"`
	}
)
