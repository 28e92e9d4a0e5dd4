package directory

import (
	"strings"
	"time"

	"github.com/trezcool/gradebook/core"
)

type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type Subject struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	ID    string `json:"id" validate:"required,notblank"`
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email"`
}

func (ns *NewStudent) Clean() {
	ns.ID = core.CleanString(ns.ID)
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// The ID is immutable once the Student is created.
type UpdateStudent struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email"`
}

func (us *UpdateStudent) Clean() {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email)
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Code string `json:"code" validate:"required,notblank"`
	Name string `json:"name" validate:"required,notblank"`
}

func (ns *NewSubject) Clean() {
	ns.Code = core.CleanString(ns.Code)
	ns.Name = core.CleanString(ns.Name)
}

// UpdateSubject defines what information may be provided to modify an existing Subject.
type UpdateSubject struct {
	Name string `json:"name" validate:"required,notblank"`
}

func (us *UpdateSubject) Clean() {
	us.Name = core.CleanString(us.Name)
}

// SortStudents sorts students in place by id, name, email or created_at.
func SortStudents(students []Student, orderings []core.Ordering) {
	core.SortBy(
		len(students),
		func(i, j int) { students[i], students[j] = students[j], students[i] },
		func(field string, i, j int) int {
			a, b := students[i], students[j]
			switch field {
			case "id":
				return strings.Compare(a.ID, b.ID)
			case "name":
				return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
			case "email":
				return strings.Compare(a.Email, b.Email)
			case "created_at":
				return compareTimes(a.CreatedAt, b.CreatedAt)
			default:
				return 0
			}
		},
		orderings,
	)
}

// SortSubjects sorts subjects in place by code, name or created_at.
func SortSubjects(subjects []Subject, orderings []core.Ordering) {
	core.SortBy(
		len(subjects),
		func(i, j int) { subjects[i], subjects[j] = subjects[j], subjects[i] },
		func(field string, i, j int) int {
			a, b := subjects[i], subjects[j]
			switch field {
			case "code":
				return strings.Compare(a.Code, b.Code)
			case "name":
				return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
			case "created_at":
				return compareTimes(a.CreatedAt, b.CreatedAt)
			default:
				return 0
			}
		},
		orderings,
	)
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
