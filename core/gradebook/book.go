// Package gradebook wires the student & subject directory, the grade ledger and the analytics together.
//
// A Book is the single entry point of the presentation layers (HTTP API, shell).
// It serializes every mutation behind one writer lock, so that a grade is always
// validated against a consistent view of the existing students and subjects.
package gradebook

import (
	"sync"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/analytics"
	"github.com/trezcool/gradebook/core/directory"
	"github.com/trezcool/gradebook/core/grade"
)

type Book struct {
	mu      sync.RWMutex
	dir     *directory.Service
	ledger  *grade.Service
	stats   *analytics.Service
	mailSvc core.EmailService
}

func New(dirRepo directory.Repository, gradeRepo grade.Repository, mailSvc core.EmailService, validator *core.Validator) *Book {
	vala.BeginValidation().Validate(
		vala.IsNotNil(dirRepo, "dirRepo"),
		vala.IsNotNil(gradeRepo, "gradeRepo"),
		vala.IsNotNil(mailSvc, "mailSvc"),
		vala.IsNotNil(validator, "validator"),
	).CheckAndPanic()

	ledger := grade.NewService(gradeRepo, dirRepo, validator)
	return &Book{
		dir:     directory.NewService(dirRepo, ledger, validator),
		ledger:  ledger,
		stats:   analytics.NewService(ledger),
		mailSvc: mailSvc,
	}
}

// Students

func (b *Book) AddStudent(ns directory.NewStudent) (directory.Student, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir.AddStudent(ns)
}

func (b *Book) UpdateStudent(id string, us directory.UpdateStudent) (directory.Student, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir.UpdateStudent(id, us)
}

func (b *Book) RemoveStudent(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir.RemoveStudent(id)
}

func (b *Book) GetStudent(id string) (directory.Student, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dir.GetStudent(id)
}

func (b *Book) ListStudents(orderings ...core.Ordering) ([]directory.Student, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dir.ListStudents(orderings...)
}

// Subjects

func (b *Book) AddSubject(ns directory.NewSubject) (directory.Subject, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir.AddSubject(ns)
}

func (b *Book) UpdateSubject(code string, us directory.UpdateSubject) (directory.Subject, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir.UpdateSubject(code, us)
}

func (b *Book) RemoveSubject(code string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dir.RemoveSubject(code)
}

func (b *Book) GetSubject(code string) (directory.Subject, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dir.GetSubject(code)
}

func (b *Book) ListSubjects(orderings ...core.Ordering) ([]directory.Subject, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dir.ListSubjects(orderings...)
}

// Grades

func (b *Book) RecordGrade(ng grade.NewGrade) (grade.Grade, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Record(ng)
}

func (b *Book) GradesForStudent(studentID string) (map[string]float64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ledger.ForStudent(studentID)
}

// Analytics

func (b *Book) AverageForStudent(studentID string) (float64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats.AverageForStudent(core.CleanString(studentID))
}

func (b *Book) AveragePerSubject() (map[string]float64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats.AveragePerSubject()
}

// ChartBars returns the subject averages joined with the subject names, ordered by subject code.
func (b *Book) ChartBars() ([]analytics.Bar, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	avgs, err := b.stats.SubjectAverages()
	if err != nil {
		return nil, err
	}
	bars := make([]analytics.Bar, 0, len(avgs))
	for _, avg := range avgs {
		bar := analytics.Bar{SubjectCode: avg.SubjectCode, Average: avg.Average, Count: avg.Count}
		if subject, err := b.dir.GetSubject(avg.SubjectCode); err == nil {
			bar.SubjectName = subject.Name
		} else if !errors.Is(err, core.ErrNotFound) {
			return nil, errors.Wrap(err, "getting subject")
		}
		bars = append(bars, bar)
	}
	return bars, nil
}
