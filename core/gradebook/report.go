package gradebook

import (
	"fmt"
	"io"
	"net/mail"
	texttmpl "text/template"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/directory"
)

var reportTmpl = texttmpl.Must(texttmpl.New("grade_report").Option("missingkey=error").Parse(
	`Hello {{.Student.Name}},

Here are your current grades:
{{range .Grades}}
  {{printf "%-10s" .SubjectCode}} {{printf "%-30s" .SubjectName}} {{printf "%6.2f" .Mark}}
{{- else}}
  no grades recorded yet
{{- end}}

GPA: {{.GPA}}
`))

type (
	ReportLine struct {
		SubjectCode string  `json:"subject_code"`
		SubjectName string  `json:"subject_name"`
		Mark        float64 `json:"mark"`
	}

	Report struct {
		Student directory.Student `json:"student"`
		Grades  []ReportLine      `json:"grades"`
		Average *float64          `json:"average"` // nil when no grades are recorded
	}
)

// GPA formats the average with two decimals, or "N/A" when there is no grade.
func (r Report) GPA() string {
	if r.Average == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *r.Average)
}

// Render writes the report as plain text, the way it is emailed.
func (r Report) Render(w io.Writer) error {
	return errors.Wrap(reportTmpl.Execute(w, r), "executing report template")
}

// StudentReport gathers the student's grades ordered by subject code along with their average.
func (b *Book) StudentReport(studentID string) (Report, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.studentReport(studentID)
}

func (b *Book) studentReport(studentID string) (Report, error) {
	student, err := b.dir.GetStudent(studentID)
	if err != nil {
		return Report{}, err
	}

	grades, err := b.ledger.QueryStudentGrades(student.ID)
	if err != nil {
		return Report{}, errors.Wrap(err, "querying student grades")
	}
	report := Report{Student: student, Grades: make([]ReportLine, 0, len(grades))}
	for _, g := range grades {
		line := ReportLine{SubjectCode: g.SubjectCode, Mark: g.Mark}
		if subject, err := b.dir.GetSubject(g.SubjectCode); err == nil {
			line.SubjectName = subject.Name
		}
		report.Grades = append(report.Grades, line)
	}

	avg, err := b.stats.AverageForStudent(student.ID)
	switch {
	case err == nil:
		report.Average = &avg
	case !errors.Is(err, core.ErrNoData):
		return Report{}, errors.Wrap(err, "computing student average")
	}
	return report, nil
}

// SendReport emails the student their report. The student must have an email address.
func (b *Book) SendReport(studentID string) error {
	b.mu.RLock()
	report, err := b.studentReport(studentID)
	b.mu.RUnlock()
	if err != nil {
		return err
	}

	if report.Student.Email == "" {
		return core.NewValidationError(core.ErrInvalidInput, core.FieldError{Field: "email", Error: "the student has no email address"})
	}

	b.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: report.Student.Name, Address: report.Student.Email}},
		Subject:      "Grade report",
		Template:     reportTmpl,
		TemplateData: report,
	})
	return nil
}
