package grade

import (
	"math"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/directory"
)

var (
	errUnknownStudent = "selected student does not exist"
	errUnknownSubject = "selected subject does not exist"
)

type (
	// Repository stores at most one Grade per (StudentID, SubjectCode) pair.
	Repository interface {
		UpsertGrade(grade Grade) (Grade, error)
		// QueryStudentGrades returns the student's grades ordered by SubjectCode.
		QueryStudentGrades(studentID string) ([]Grade, error)
		// QueryAllGrades returns all grades ordered by StudentID then SubjectCode.
		QueryAllGrades() ([]Grade, error)
		DeleteStudentGrades(studentID string) error
		DeleteSubjectGrades(subjectCode string) error
	}

	// Registry resolves the students and subjects a Grade refers to.
	Registry interface {
		GetStudent(id string) (directory.Student, error)
		GetSubject(code string) (directory.Subject, error)
	}

	Service struct {
		repo      Repository
		registry  Registry
		validator *core.Validator
	}
)

var _ directory.Purger = (*Service)(nil)

// NewService panics on nil dependencies. Implementations must be pointers, maps, slices or funcs.
func NewService(repo Repository, registry Registry, validator *core.Validator) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(registry, "registry"),
		vala.IsNotNil(validator, "validator"),
	).CheckAndPanic()

	return &Service{repo: repo, registry: registry, validator: validator}
}

// Record validates the mark, then checks that the student and the subject exist, then upserts the Grade.
func (svc *Service) Record(ng NewGrade) (Grade, error) {
	ng.Clean()
	if math.IsNaN(ng.Mark) || math.IsInf(ng.Mark, 0) {
		return Grade{}, invalidMarkError()
	}
	if err := svc.validator.Struct(ng, core.ErrInvalidMark); err != nil {
		return Grade{}, err
	}

	if _, err := svc.registry.GetStudent(ng.StudentID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return Grade{}, core.NewValidationError(core.ErrReference, core.FieldError{Field: "student_id", Error: errUnknownStudent})
		}
		return Grade{}, errors.Wrap(err, "getting student")
	}
	if _, err := svc.registry.GetSubject(ng.SubjectCode); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return Grade{}, core.NewValidationError(core.ErrReference, core.FieldError{Field: "subject_code", Error: errUnknownSubject})
		}
		return Grade{}, errors.Wrap(err, "getting subject")
	}

	return svc.repo.UpsertGrade(Grade{
		StudentID:   ng.StudentID,
		SubjectCode: ng.SubjectCode,
		Mark:        ng.Mark,
		RecordedAt:  time.Now().UTC(),
	})
}

// ForStudent returns the student's marks keyed by subject code. The map is empty if there are none.
func (svc *Service) ForStudent(studentID string) (map[string]float64, error) {
	grades, err := svc.repo.QueryStudentGrades(core.CleanString(studentID))
	if err != nil {
		return nil, err
	}
	marks := make(map[string]float64, len(grades))
	for _, g := range grades {
		marks[g.SubjectCode] = g.Mark
	}
	return marks, nil
}

func (svc *Service) QueryStudentGrades(studentID string) ([]Grade, error) {
	return svc.repo.QueryStudentGrades(core.CleanString(studentID))
}

func (svc *Service) QueryAllGrades() ([]Grade, error) {
	return svc.repo.QueryAllGrades()
}

func (svc *Service) PurgeStudent(studentID string) error {
	return svc.repo.DeleteStudentGrades(core.CleanString(studentID))
}

func (svc *Service) PurgeSubject(subjectCode string) error {
	return svc.repo.DeleteSubjectGrades(core.CleanString(subjectCode))
}
