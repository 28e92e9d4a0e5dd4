// Package analytics computes averages over the recorded grades.
// Every query rescans the grades; nothing is cached between calls.
package analytics

import (
	"sort"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grade"
)

type (
	// Source gives read access to the recorded grades.
	Source interface {
		QueryStudentGrades(studentID string) ([]grade.Grade, error)
		QueryAllGrades() ([]grade.Grade, error)
	}

	SubjectAverage struct {
		SubjectCode string  `json:"subject_code"`
		Average     float64 `json:"average"`
		Count       int     `json:"count"`
	}

	Service struct {
		source Source
	}
)

// NewService panics on a nil source. The source must be a pointer, map, slice or func.
func NewService(source Source) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(source, "source"),
	).CheckAndPanic()

	return &Service{source: source}
}

// AverageForStudent returns the mean of the student's marks, or core.ErrNoData if they have none.
func (svc *Service) AverageForStudent(studentID string) (float64, error) {
	grades, err := svc.source.QueryStudentGrades(studentID)
	if err != nil {
		return 0, errors.Wrap(err, "querying student grades")
	}
	if len(grades) == 0 {
		return 0, core.ErrNoData
	}

	var total float64
	for _, g := range grades {
		total += g.Mark
	}
	return total / float64(len(grades)), nil
}

// SubjectAverages returns, ordered by subject code, the mean mark of every subject graded at least once.
func (svc *Service) SubjectAverages() ([]SubjectAverage, error) {
	grades, err := svc.source.QueryAllGrades()
	if err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}

	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, g := range grades {
		totals[g.SubjectCode] += g.Mark
		counts[g.SubjectCode]++
	}

	avgs := make([]SubjectAverage, 0, len(counts))
	for code, count := range counts {
		avgs = append(avgs, SubjectAverage{
			SubjectCode: code,
			Average:     totals[code] / float64(count),
			Count:       count,
		})
	}
	sort.Slice(avgs, func(i, j int) bool { return avgs[i].SubjectCode < avgs[j].SubjectCode })
	return avgs, nil
}

// AveragePerSubject returns the mean mark keyed by subject code. Subjects without grades are omitted.
func (svc *Service) AveragePerSubject() (map[string]float64, error) {
	avgs, err := svc.SubjectAverages()
	if err != nil {
		return nil, err
	}
	res := make(map[string]float64, len(avgs))
	for _, avg := range avgs {
		res[avg.SubjectCode] = avg.Average
	}
	return res, nil
}
