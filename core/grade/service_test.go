package grade_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/directory"
	"github.com/trezcool/gradebook/core/grade"
	inmemdb "github.com/trezcool/gradebook/storage/database/inmem"
)

type registryMock struct {
	students map[string]bool
	subjects map[string]bool
}

func (r *registryMock) GetStudent(id string) (directory.Student, error) {
	if r.students[id] {
		return directory.Student{ID: id}, nil
	}
	return directory.Student{}, directory.ErrStudentNotFound
}

func (r *registryMock) GetSubject(code string) (directory.Subject, error) {
	if r.subjects[code] {
		return directory.Subject{Code: code}, nil
	}
	return directory.Subject{}, directory.ErrSubjectNotFound
}

func setup(t *testing.T) *grade.Service {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	registry := &registryMock{
		students: map[string]bool{"S1": true, "S2": true},
		subjects: map[string]bool{"MATH": true, "SCI": true},
	}
	return grade.NewService(inmemdb.NewGradeRepository(db), registry, core.NewValidator())
}

func TestNewService(t *testing.T) {
	db, err := inmemdb.Open()
	require.NoError(t, err)
	repo := inmemdb.NewGradeRepository(db)

	assert.Panics(t, func() { grade.NewService(nil, nil, nil) })
	assert.Panics(t, func() { grade.NewService(repo, nil, core.NewValidator()) })
	assert.NotPanics(t, func() { grade.NewService(repo, &registryMock{}, core.NewValidator()) })
}

func TestService_Record(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name      string
		ng        grade.NewGrade
		wantKind  error
		wantField string
	}{
		{name: "below range", ng: grade.NewGrade{StudentID: "S1", SubjectCode: "MATH", Mark: -1}, wantKind: core.ErrInvalidMark, wantField: "mark"},
		{name: "above range", ng: grade.NewGrade{StudentID: "S1", SubjectCode: "MATH", Mark: 101}, wantKind: core.ErrInvalidMark, wantField: "mark"},
		{name: "NaN", ng: grade.NewGrade{StudentID: "S1", SubjectCode: "MATH", Mark: math.NaN()}, wantKind: core.ErrInvalidMark, wantField: "mark"},
		{name: "Inf", ng: grade.NewGrade{StudentID: "S1", SubjectCode: "MATH", Mark: math.Inf(-1)}, wantKind: core.ErrInvalidMark, wantField: "mark"},
		{
			name: "mark checked before references", ng: grade.NewGrade{StudentID: "S9", SubjectCode: "ART", Mark: 200},
			wantKind: core.ErrInvalidMark, wantField: "mark",
		},
		{
			name: "unknown student", ng: grade.NewGrade{StudentID: "S9", SubjectCode: "ART", Mark: 50},
			wantKind: core.ErrReference, wantField: "student_id",
		},
		{
			name: "unknown subject", ng: grade.NewGrade{StudentID: "S1", SubjectCode: "ART", Mark: 50},
			wantKind: core.ErrReference, wantField: "subject_code",
		},
		{name: "lower bound", ng: grade.NewGrade{StudentID: "S1", SubjectCode: "MATH", Mark: 0}},
		{name: "upper bound", ng: grade.NewGrade{StudentID: " S1 ", SubjectCode: "SCI ", Mark: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Record(tt.ng)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantKind), err.Error())
				var vErr *core.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Contains(t, vErr.FieldMap(), tt.wantField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, core.CleanString(tt.ng.StudentID), got.StudentID)
			assert.Equal(t, core.CleanString(tt.ng.SubjectCode), got.SubjectCode)
			assert.Equal(t, tt.ng.Mark, got.Mark)
			assert.False(t, got.RecordedAt.IsZero())
		})
	}

	marks, err := svc.ForStudent("S1")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"MATH": 0, "SCI": 100}, marks)
}

func TestService_Record_upsert(t *testing.T) {
	svc := setup(t)

	for _, mark := range []float64{80, 95} {
		_, err := svc.Record(grade.NewGrade{StudentID: "S1", SubjectCode: "MATH", Mark: mark})
		require.NoError(t, err)
	}

	grades, err := svc.QueryStudentGrades("S1")
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, 95.0, grades[0].Mark)
}

func TestService_ForStudent(t *testing.T) {
	svc := setup(t)

	marks, err := svc.ForStudent("S2")
	require.NoError(t, err)
	assert.NotNil(t, marks)
	assert.Empty(t, marks)

	marks, err = svc.ForStudent("unknown")
	require.NoError(t, err)
	assert.Empty(t, marks)
}

func TestService_purge(t *testing.T) {
	svc := setup(t)
	for _, ng := range []grade.NewGrade{
		{StudentID: "S1", SubjectCode: "MATH", Mark: 80},
		{StudentID: "S2", SubjectCode: "MATH", Mark: 100},
		{StudentID: "S1", SubjectCode: "SCI", Mark: 70},
		{StudentID: "S2", SubjectCode: "SCI", Mark: 60},
	} {
		_, err := svc.Record(ng)
		require.NoError(t, err)
	}

	require.NoError(t, svc.PurgeSubject("MATH"))
	require.NoError(t, svc.PurgeSubject("MATH"))
	all, err := svc.QueryAllGrades()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "S1", all[0].StudentID)
	assert.Equal(t, "SCI", all[0].SubjectCode)
	assert.Equal(t, "S2", all[1].StudentID)

	require.NoError(t, svc.PurgeStudent("S2"))
	require.NoError(t, svc.PurgeStudent("S2"))
	all, err = svc.QueryAllGrades()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, grade.Grade{StudentID: "S1", SubjectCode: "SCI", Mark: 70, RecordedAt: all[0].RecordedAt}, all[0])
}
