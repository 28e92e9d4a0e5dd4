package inmemdb_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core/directory"
	inmemdb "github.com/trezcool/gradebook/storage/database/inmem"
)

func openDB(t *testing.T) *inmemdb.DB {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return db
}

func Test_directoryRepository_students(t *testing.T) {
	repo := inmemdb.NewDirectoryRepository(openDB(t))
	now := time.Now().UTC()

	s2, err := repo.CreateStudent(directory.Student{ID: "S2", Name: "Bob", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	s1, err := repo.CreateStudent(directory.Student{ID: "S1", Name: "Alice", Email: "alice@test.cd", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	_, err = repo.CreateStudent(directory.Student{ID: "S1", Name: "Mallory"})
	assert.Equal(t, directory.ErrStudentExists, err)

	all, err := repo.QueryAllStudents()
	require.NoError(t, err)
	assert.Equal(t, []directory.Student{s2, s1}, all)

	// returned values are copies
	all[0].Name = "changed"
	got, err := repo.GetStudent("S2")
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	later := now.Add(time.Minute)
	updated, err := repo.UpdateStudent(directory.Student{ID: "S1", Name: "Alicia", UpdatedAt: later, CreatedAt: later})
	require.NoError(t, err)
	assert.Equal(t, directory.Student{ID: "S1", Name: "Alicia", CreatedAt: now, UpdatedAt: later}, updated)

	_, err = repo.UpdateStudent(directory.Student{ID: "S9", Name: "Nobody"})
	assert.Equal(t, directory.ErrStudentNotFound, err)
	_, err = repo.GetStudent("S9")
	assert.Equal(t, directory.ErrStudentNotFound, err)

	require.NoError(t, repo.DeleteStudent("S2"))
	require.NoError(t, repo.DeleteStudent("S2"))
	all, err = repo.QueryAllStudents()
	require.NoError(t, err)
	assert.Equal(t, []directory.Student{updated}, all)

	// a re-added id goes to the end
	s2, err = repo.CreateStudent(directory.Student{ID: "S2", Name: "Bob"})
	require.NoError(t, err)
	all, err = repo.QueryAllStudents()
	require.NoError(t, err)
	assert.Equal(t, []directory.Student{updated, s2}, all)
}

func Test_directoryRepository_subjects(t *testing.T) {
	repo := inmemdb.NewDirectoryRepository(openDB(t))

	sci, err := repo.CreateSubject(directory.Subject{Code: "SCI", Name: "Science"})
	require.NoError(t, err)
	math, err := repo.CreateSubject(directory.Subject{Code: "MATH", Name: "Mathematics"})
	require.NoError(t, err)
	_, err = repo.CreateSubject(directory.Subject{Code: "SCI", Name: "Sciences"})
	assert.Equal(t, directory.ErrSubjectExists, err)

	all, err := repo.QueryAllSubjects()
	require.NoError(t, err)
	assert.Equal(t, []directory.Subject{sci, math}, all)

	math.Name = "Maths"
	got, err := repo.UpdateSubject(math)
	require.NoError(t, err)
	assert.Equal(t, math, got)
	_, err = repo.UpdateSubject(directory.Subject{Code: "ART"})
	assert.Equal(t, directory.ErrSubjectNotFound, err)

	require.NoError(t, repo.DeleteSubject("SCI"))
	require.NoError(t, repo.DeleteSubject("ART"))
	_, err = repo.GetSubject("SCI")
	assert.Equal(t, directory.ErrSubjectNotFound, err)
	all, err = repo.QueryAllSubjects()
	require.NoError(t, err)
	assert.Equal(t, []directory.Subject{math}, all)
}

func TestOpen_isolated(t *testing.T) {
	repo1 := inmemdb.NewDirectoryRepository(openDB(t))
	repo2 := inmemdb.NewDirectoryRepository(openDB(t))

	_, err := repo1.CreateStudent(directory.Student{ID: "S1", Name: "Alice"})
	require.NoError(t, err)
	_, err = repo2.GetStudent("S1")
	assert.Equal(t, directory.ErrStudentNotFound, err)
}
