package inmemdb

import (
	"github.com/trezcool/gradebook/core/directory"
)

type directoryRepository struct {
	students *studentTable
	subjects *subjectTable
}

func NewDirectoryRepository(db *DB) directory.Repository {
	return &directoryRepository{students: db.student, subjects: db.subject}
}

// Students

func (repo *directoryRepository) CreateStudent(student directory.Student) (directory.Student, error) {
	repo.students.Lock()
	defer repo.students.Unlock()

	if _, ok := repo.students.table[student.ID]; ok {
		return directory.Student{}, directory.ErrStudentExists
	}
	repo.students.table[student.ID] = &student
	repo.students.keys = append(repo.students.keys, student.ID)
	return student, nil
}

func (repo *directoryRepository) QueryAllStudents() ([]directory.Student, error) {
	repo.students.RLock()
	defer repo.students.RUnlock()

	students := make([]directory.Student, 0, len(repo.students.keys))
	for _, id := range repo.students.keys {
		students = append(students, *repo.students.table[id])
	}
	return students, nil
}

func (repo *directoryRepository) GetStudent(id string) (directory.Student, error) {
	repo.students.RLock()
	defer repo.students.RUnlock()

	if student, ok := repo.students.table[id]; ok {
		return *student, nil
	}
	return directory.Student{}, directory.ErrStudentNotFound
}

func (repo *directoryRepository) UpdateStudent(student directory.Student) (directory.Student, error) {
	repo.students.Lock()
	defer repo.students.Unlock()

	// only save mutable fields
	orig, ok := repo.students.table[student.ID]
	if !ok {
		return directory.Student{}, directory.ErrStudentNotFound
	}
	orig.Name = student.Name
	orig.Email = student.Email
	orig.UpdatedAt = student.UpdatedAt
	return *orig, nil
}

func (repo *directoryRepository) DeleteStudent(id string) error {
	repo.students.Lock()
	defer repo.students.Unlock()

	if _, ok := repo.students.table[id]; ok {
		delete(repo.students.table, id)
		repo.students.keys = removeKey(repo.students.keys, id)
	}
	return nil
}

// Subjects

func (repo *directoryRepository) CreateSubject(subject directory.Subject) (directory.Subject, error) {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	if _, ok := repo.subjects.table[subject.Code]; ok {
		return directory.Subject{}, directory.ErrSubjectExists
	}
	repo.subjects.table[subject.Code] = &subject
	repo.subjects.keys = append(repo.subjects.keys, subject.Code)
	return subject, nil
}

func (repo *directoryRepository) QueryAllSubjects() ([]directory.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	subjects := make([]directory.Subject, 0, len(repo.subjects.keys))
	for _, code := range repo.subjects.keys {
		subjects = append(subjects, *repo.subjects.table[code])
	}
	return subjects, nil
}

func (repo *directoryRepository) GetSubject(code string) (directory.Subject, error) {
	repo.subjects.RLock()
	defer repo.subjects.RUnlock()

	if subject, ok := repo.subjects.table[code]; ok {
		return *subject, nil
	}
	return directory.Subject{}, directory.ErrSubjectNotFound
}

func (repo *directoryRepository) UpdateSubject(subject directory.Subject) (directory.Subject, error) {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	orig, ok := repo.subjects.table[subject.Code]
	if !ok {
		return directory.Subject{}, directory.ErrSubjectNotFound
	}
	orig.Name = subject.Name
	orig.UpdatedAt = subject.UpdatedAt
	return *orig, nil
}

func (repo *directoryRepository) DeleteSubject(code string) error {
	repo.subjects.Lock()
	defer repo.subjects.Unlock()

	if _, ok := repo.subjects.table[code]; ok {
		delete(repo.subjects.table, code)
		repo.subjects.keys = removeKey(repo.subjects.keys, code)
	}
	return nil
}
