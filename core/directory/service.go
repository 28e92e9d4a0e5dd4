package directory

import (
	"fmt"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

var (
	// errors
	ErrStudentNotFound = fmt.Errorf("student %w", core.ErrNotFound)
	ErrSubjectNotFound = fmt.Errorf("subject %w", core.ErrNotFound)
	ErrStudentExists   = errors.New("a student with this id already exists")
	ErrSubjectExists   = errors.New("a subject with this code already exists")
)

type (
	// Repository stores Students and Subjects.
	// Query methods return records in insertion order.
	Repository interface {
		CreateStudent(student Student) (Student, error) // ErrStudentExists if the ID is taken
		QueryAllStudents() ([]Student, error)
		GetStudent(id string) (Student, error)
		UpdateStudent(student Student) (Student, error)
		DeleteStudent(id string) error

		CreateSubject(subject Subject) (Subject, error) // ErrSubjectExists if the Code is taken
		QueryAllSubjects() ([]Subject, error)
		GetSubject(code string) (Subject, error)
		UpdateSubject(subject Subject) (Subject, error)
		DeleteSubject(code string) error
	}

	// Purger drops the grades that depend on a removed Student or Subject.
	Purger interface {
		PurgeStudent(id string) error
		PurgeSubject(code string) error
	}

	Service struct {
		repo      Repository
		purger    Purger
		validator *core.Validator
	}
)

func NewService(repo Repository, purger Purger, validator *core.Validator) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(purger, "purger"),
		vala.IsNotNil(validator, "validator"),
	).CheckAndPanic()

	return &Service{repo: repo, purger: purger, validator: validator}
}

func duplicateKeyError(err error) error {
	var field string
	switch err {
	case ErrStudentExists:
		field = "id"
	case ErrSubjectExists:
		field = "code"
	default:
		return err
	}
	return core.NewValidationError(core.ErrDuplicateKey, core.FieldError{Field: field, Error: err.Error()})
}

// Students

func (svc *Service) AddStudent(ns NewStudent) (Student, error) {
	ns.Clean()
	if err := svc.validator.Struct(ns, core.ErrInvalidInput); err != nil {
		return Student{}, err
	}

	now := time.Now().UTC()
	student, err := svc.repo.CreateStudent(Student{
		ID:        ns.ID,
		Name:      ns.Name,
		Email:     ns.Email,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Student{}, duplicateKeyError(err)
	}
	return student, nil
}

func (svc *Service) UpdateStudent(id string, us UpdateStudent) (Student, error) {
	student, err := svc.repo.GetStudent(core.CleanString(id))
	if err != nil {
		return Student{}, err
	}

	us.Clean()
	if err := svc.validator.Struct(us, core.ErrInvalidInput); err != nil {
		return Student{}, err
	}

	student.Name = us.Name
	student.Email = us.Email
	student.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(student)
}

// RemoveStudent deletes the Student and all their grades. Unknown IDs are ignored.
func (svc *Service) RemoveStudent(id string) error {
	id = core.CleanString(id)
	if err := svc.repo.DeleteStudent(id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if err := svc.purger.PurgeStudent(id); err != nil {
		return errors.Wrap(err, "purging student grades")
	}
	return nil
}

func (svc *Service) GetStudent(id string) (Student, error) {
	return svc.repo.GetStudent(core.CleanString(id))
}

func (svc *Service) ListStudents(orderings ...core.Ordering) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	SortStudents(students, orderings)
	return students, nil
}

// Subjects

func (svc *Service) AddSubject(ns NewSubject) (Subject, error) {
	ns.Clean()
	if err := svc.validator.Struct(ns, core.ErrInvalidInput); err != nil {
		return Subject{}, err
	}

	now := time.Now().UTC()
	subject, err := svc.repo.CreateSubject(Subject{
		Code:      ns.Code,
		Name:      ns.Name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Subject{}, duplicateKeyError(err)
	}
	return subject, nil
}

func (svc *Service) UpdateSubject(code string, us UpdateSubject) (Subject, error) {
	subject, err := svc.repo.GetSubject(core.CleanString(code))
	if err != nil {
		return Subject{}, err
	}

	us.Clean()
	if err := svc.validator.Struct(us, core.ErrInvalidInput); err != nil {
		return Subject{}, err
	}

	subject.Name = us.Name
	subject.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSubject(subject)
}

// RemoveSubject deletes the Subject and its grades across all students. Unknown codes are ignored.
func (svc *Service) RemoveSubject(code string) error {
	code = core.CleanString(code)
	if err := svc.repo.DeleteSubject(code); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	if err := svc.purger.PurgeSubject(code); err != nil {
		return errors.Wrap(err, "purging subject grades")
	}
	return nil
}

func (svc *Service) GetSubject(code string) (Subject, error) {
	return svc.repo.GetSubject(core.CleanString(code))
}

func (svc *Service) ListSubjects(orderings ...core.Ordering) ([]Subject, error) {
	subjects, err := svc.repo.QueryAllSubjects()
	if err != nil {
		return nil, err
	}
	SortSubjects(subjects, orderings)
	return subjects, nil
}
