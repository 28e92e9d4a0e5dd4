package testutil

import (
	"net/mail"
	"testing"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/directory"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/gradebook"
	emailsvc "github.com/trezcool/gradebook/services/email"
	inmemdb "github.com/trezcool/gradebook/storage/database/inmem"
)

// NewConfig returns a test configuration that does not depend on the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:              "TEST",
		Build:            "test",
		AppName:          "Gradebook",
		TestMode:         true,
		DefaultFromEmail: mail.Address{Name: "Gradebook", Address: "noreply@test.cd"},
		Server:           core.ServerConfig{Address: ":0", Host: "localhost", DisableReqLogs: true},
	}
}

// NewBook returns an empty Book over a fresh in-memory database, along with its mock mailer.
func NewBook(t *testing.T) (*gradebook.Book, *emailsvc.ConsoleService) {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	mailSvc := emailsvc.NewConsoleServiceMock(NewConfig())
	book := gradebook.New(
		inmemdb.NewDirectoryRepository(db),
		inmemdb.NewGradeRepository(db),
		mailSvc,
		core.NewValidator(),
	)
	return book, mailSvc
}

func CreateStudent(t *testing.T, book *gradebook.Book, id, name, email string) directory.Student {
	t.Helper()
	student, err := book.AddStudent(directory.NewStudent{ID: id, Name: name, Email: email})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return student
}

func CreateSubject(t *testing.T, book *gradebook.Book, code, name string) directory.Subject {
	t.Helper()
	subject, err := book.AddSubject(directory.NewSubject{Code: code, Name: name})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return subject
}

func RecordGrade(t *testing.T, book *gradebook.Book, studentID, subjectCode string, mark float64) grade.Grade {
	t.Helper()
	g, err := book.RecordGrade(grade.NewGrade{StudentID: studentID, SubjectCode: subjectCode, Mark: mark})
	if err != nil {
		t.Fatalf("RecordGrade() failed: %v", err)
	}
	return g
}
