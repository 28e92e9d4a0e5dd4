package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/gradebook/apps/api/echo"
	"github.com/trezcool/gradebook/core/directory"
	"github.com/trezcool/gradebook/tests"
)

func Test_studentApi_query(t *testing.T) {
	app, book, _ := setup(t)

	runHTTPTests(t, app, []httpTest{
		{name: "empty", path: "/v1/students", wantCode: http.StatusOK, wantData: marchallList(t)},
	})

	s1 := testutil.CreateStudent(t, book, "S1", "Zoe", "zoe@test.cd")
	s2 := testutil.CreateStudent(t, book, "S2", "adam", "")
	s3 := testutil.CreateStudent(t, book, "S0", "Mike", "mike@test.cd")

	runHTTPTests(t, app, []httpTest{
		{name: "insertion order", path: "/v1/students", wantCode: http.StatusOK, wantData: marchallList(t, s1, s2, s3)},
		{name: "trailing slash", path: "/v1/students/", wantCode: http.StatusOK, wantData: marchallList(t, s1, s2, s3)},
		{name: "ordering=id", path: "/v1/students?ordering=id", wantCode: http.StatusOK, wantData: marchallList(t, s3, s1, s2)},
		{name: "ordering=-id", path: "/v1/students?ordering=-id", wantCode: http.StatusOK, wantData: marchallList(t, s2, s1, s3)},
		{name: "ordering=name", path: "/v1/students?ordering=name", wantCode: http.StatusOK, wantData: marchallList(t, s2, s3, s1)},
		{
			name: "ordering=email,-id", path: "/v1/students?ordering=email,-id",
			wantCode: http.StatusOK, wantData: marchallList(t, s2, s3, s1),
		},
		{name: "unknown field", path: "/v1/students?ordering=lol", wantCode: http.StatusOK, wantData: marchallList(t, s1, s2, s3)},
	})
}

func Test_studentApi_create(t *testing.T) {
	app, book, _ := setup(t)
	existing := testutil.CreateStudent(t, book, "S1", "Alice", "alice@test.cd")

	tests := []struct {
		name     string
		body     []byte
		wantCode int
		wantErr  interface{}
	}{
		{name: "malformed json", body: []byte(`{"id":`), wantCode: http.StatusBadRequest},
		{
			name: "blank fields", body: []byte(`{"id": "  ", "name": ""}`), wantCode: http.StatusBadRequest,
			wantErr: map[string]string{"id": "this field is required", "name": "this field is required"},
		},
		{
			name: "duplicate id", body: []byte(`{"id": "S1", "name": "Bob"}`), wantCode: http.StatusConflict,
			wantErr: map[string]string{"id": directory.ErrStudentExists.Error()},
		},
		{name: "valid", body: []byte(`{"id": " S2 ", "name": " Bob ", "email": "bob@test.cd"}`), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/students", tt.body)
			app.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != nil {
				ok, err := jsonBytesEqual(rec.Body.Bytes(), marchallObj(t, tt.wantErr))
				require.NoError(t, err)
				assert.True(t, ok, rec.Body.String())
			}
		})
	}

	// the duplicate did not overwrite the existing record
	got, err := book.GetStudent("S1")
	require.NoError(t, err)
	assert.Equal(t, existing, got)

	created, err := book.GetStudent("S2")
	require.NoError(t, err)
	assert.Equal(t, "Bob", created.Name)
	assert.Equal(t, "bob@test.cd", created.Email)
}

func Test_studentApi_retrieve(t *testing.T) {
	app, book, _ := setup(t)
	student := testutil.CreateStudent(t, book, "S1", "Alice", "alice@test.cd")

	runHTTPTests(t, app, []httpTest{
		{name: "found", path: "/v1/students/S1", wantCode: http.StatusOK, wantData: marchallObj(t, student)},
		{
			name: "not found", path: "/v1/students/S9",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
	})
}

func Test_studentApi_update(t *testing.T) {
	app, book, _ := setup(t)
	testutil.CreateStudent(t, book, "S1", "Alice", "alice@test.cd")

	runHTTPTests(t, app, []httpTest{
		{
			name: "not found", method: http.MethodPut, path: "/v1/students/S9", body: []byte(`{"name": "Bob"}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{
			name: "blank name", method: http.MethodPut, path: "/v1/students/S1", body: []byte(`{"name": " "}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
	})

	req, rec := newRequest(http.MethodPut, "/v1/students/S1", []byte(`{"id": "S7", "name": "Alicia", "email": ""}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated, err := book.GetStudent("S1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Empty(t, updated.Email)
	ok, err := jsonBytesEqual(rec.Body.Bytes(), marchallObj(t, updated))
	require.NoError(t, err)
	assert.True(t, ok)

	// ids are immutable
	_, err = book.GetStudent("S7")
	assert.Error(t, err)
}

func Test_studentApi_destroy(t *testing.T) {
	app, book, _ := setup(t)
	testutil.CreateStudent(t, book, "S1", "Alice", "")
	testutil.CreateSubject(t, book, "MATH", "Mathematics")
	testutil.RecordGrade(t, book, "S1", "MATH", 80)

	runHTTPTests(t, app, []httpTest{
		{name: "existing", method: http.MethodDelete, path: "/v1/students/S1", wantCode: http.StatusNoContent},
		{name: "absent", method: http.MethodDelete, path: "/v1/students/S1", wantCode: http.StatusNoContent},
	})

	_, err := book.GetStudent("S1")
	assert.Error(t, err)
	marks, err := book.GradesForStudent("S1")
	require.NoError(t, err)
	assert.Empty(t, marks)
}

func Test_studentApi_gradesAndGPA(t *testing.T) {
	app, book, _ := setup(t)
	testutil.CreateStudent(t, book, "S1", "Alice", "")
	testutil.CreateStudent(t, book, "S2", "Bob", "")
	testutil.CreateSubject(t, book, "MATH", "Mathematics")
	testutil.CreateSubject(t, book, "SCI", "Science")
	testutil.RecordGrade(t, book, "S1", "MATH", 80)
	testutil.RecordGrade(t, book, "S1", "SCI", 70)

	avg := 75.0
	runHTTPTests(t, app, []httpTest{
		{
			name: "grades", path: "/v1/students/S1/grades",
			wantCode: http.StatusOK, wantData: marchallObj(t, map[string]float64{"MATH": 80, "SCI": 70}),
		},
		{name: "no grades", path: "/v1/students/S2/grades", wantCode: http.StatusOK, wantData: marchallObj(t, map[string]float64{})},
		{
			name: "grades of unknown student", path: "/v1/students/S9/grades",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{
			name: "gpa", path: "/v1/students/S1/gpa",
			wantCode: http.StatusOK, wantData: marchallObj(t, GPAResponse{StudentID: "S1", Average: &avg}),
		},
		{
			name: "gpa without grades", path: "/v1/students/S2/gpa",
			wantCode: http.StatusOK, wantData: []byte(`{"student_id": "S2", "average": null}`),
		},
		{
			name: "gpa of unknown student", path: "/v1/students/S9/gpa",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
	})
}

func Test_studentApi_report(t *testing.T) {
	app, book, mailSvc := setup(t)
	testutil.CreateStudent(t, book, "S1", "Alice", "alice@test.cd")
	testutil.CreateStudent(t, book, "S2", "Bob", "")
	testutil.CreateSubject(t, book, "MATH", "Mathematics")
	testutil.RecordGrade(t, book, "S1", "MATH", 80)

	report, err := book.StudentReport("S1")
	require.NoError(t, err)

	runHTTPTests(t, app, []httpTest{
		{name: "get", path: "/v1/students/S1/report", wantCode: http.StatusOK, wantData: marchallObj(t, report)},
		{
			name: "send", method: http.MethodPost, path: "/v1/students/S1/report",
			wantCode: http.StatusAccepted, wantData: marchallObj(t, SuccessResponse{Success: "Grade report sent to alice@test.cd."}),
		},
		{
			name: "send without email", method: http.MethodPost, path: "/v1/students/S2/report",
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": "the student has no email address"}),
		},
		{
			name: "unknown student", path: "/v1/students/S9/report",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
	})

	sent := mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "alice@test.cd", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "Mathematics")
	assert.Contains(t, sent[0].TextContent, "GPA: 80.00")
}
