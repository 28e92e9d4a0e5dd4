package inmemdb

import (
	"sort"

	"github.com/trezcool/gradebook/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func sortGrades(grades []grade.Grade) {
	sort.Slice(grades, func(i, j int) bool {
		if grades[i].StudentID != grades[j].StudentID {
			return grades[i].StudentID < grades[j].StudentID
		}
		return grades[i].SubjectCode < grades[j].SubjectCode
	})
}

func (repo *gradeRepository) UpsertGrade(g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	marks, ok := repo.db.table[g.StudentID]
	if !ok {
		marks = make(map[string]*grade.Grade)
		repo.db.table[g.StudentID] = marks
	}
	marks[g.SubjectCode] = &g
	return g, nil
}

func (repo *gradeRepository) QueryStudentGrades(studentID string) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	marks := repo.db.table[studentID]
	grades := make([]grade.Grade, 0, len(marks))
	for _, g := range marks {
		grades = append(grades, *g)
	}
	sortGrades(grades)
	return grades, nil
}

func (repo *gradeRepository) QueryAllGrades() ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	grades := make([]grade.Grade, 0)
	for _, marks := range repo.db.table {
		for _, g := range marks {
			grades = append(grades, *g)
		}
	}
	sortGrades(grades)
	return grades, nil
}

func (repo *gradeRepository) DeleteStudentGrades(studentID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.table, studentID)
	return nil
}

func (repo *gradeRepository) DeleteSubjectGrades(subjectCode string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for studentID, marks := range repo.db.table {
		delete(marks, subjectCode)
		if len(marks) == 0 {
			delete(repo.db.table, studentID)
		}
	}
	return nil
}
