package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/analytics"
	"github.com/trezcool/gradebook/core/directory"
	"github.com/trezcool/gradebook/core/grade"
)

var chartWidth = 50

// newRootCmd builds a fresh command tree, so that no flag value leaks from one line to the next.
func (sh *shell) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gradebook",
		Short:         "Manage students, subjects and grades",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(sh.out)
	root.SetErr(sh.out)

	root.AddCommand(
		sh.newStudentCmd(),
		sh.newSubjectCmd(),
		sh.newGradeCmd(),
		sh.newGPACmd(),
		sh.newChartCmd(),
		sh.newReportCmd(),
	)
	return root
}

// Students

func (sh *shell) newStudentCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "student", Short: "Manage students"}

	var email string
	addCmd := &cobra.Command{
		Use:   "add <id> <name>",
		Short: "Add a student",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := sh.book.AddStudent(directory.NewStudent{
				ID:    args[0],
				Name:  strings.Join(args[1:], " "),
				Email: email,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Student %s added.\n", student.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&email, "email", "", "email address the grade reports are sent to")

	var newName, newEmail string
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a student's name or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := sh.book.GetStudent(args[0])
			if err != nil {
				return sh.hint(err, args[0], "")
			}
			data := directory.UpdateStudent{Name: student.Name, Email: student.Email}
			if cmd.Flags().Changed("name") {
				data.Name = newName
			}
			if cmd.Flags().Changed("email") {
				data.Email = newEmail
			}
			if student, err = sh.book.UpdateStudent(student.ID, data); err != nil {
				return err
			}
			cmd.Printf("Student %s updated.\n", student.ID)
			return nil
		},
	}
	editCmd.Flags().StringVar(&newName, "name", "", "new name")
	editCmd.Flags().StringVar(&newEmail, "email", "", "new email address; empty to remove it")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a student and their grades",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sh.book.RemoveStudent(args[0]); err != nil {
				return err
			}
			cmd.Printf("Student %s removed.\n", core.CleanString(args[0]))
			return nil
		},
	}

	var sortBy string
	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := sh.book.ListStudents(core.ParseOrderings(sortBy)...)
			if err != nil {
				return err
			}
			if len(students) == 0 {
				cmd.Println("No students.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL")
			for _, s := range students {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, s.Email)
			}
			return w.Flush()
		},
	}
	lsCmd.Flags().StringVar(&sortBy, "sort", "", "comma separated fields among id, name, email, created_at; prefix with - to reverse")

	cmd.AddCommand(addCmd, editCmd, rmCmd, lsCmd)
	return cmd
}

// Subjects

func (sh *shell) newSubjectCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "subject", Short: "Manage subjects"}

	addCmd := &cobra.Command{
		Use:   "add <code> <name>",
		Short: "Add a subject",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := sh.book.AddSubject(directory.NewSubject{
				Code: args[0],
				Name: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			cmd.Printf("Subject %s added.\n", subject.Code)
			return nil
		},
	}

	var newName string
	editCmd := &cobra.Command{
		Use:   "edit <code>",
		Short: "Rename a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := sh.book.UpdateSubject(args[0], directory.UpdateSubject{Name: newName})
			if err != nil {
				return sh.hint(err, "", args[0])
			}
			cmd.Printf("Subject %s updated.\n", subject.Code)
			return nil
		},
	}
	editCmd.Flags().StringVar(&newName, "name", "", "new name")
	_ = editCmd.MarkFlagRequired("name")

	rmCmd := &cobra.Command{
		Use:   "rm <code>",
		Short: "Remove a subject and its grades",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sh.book.RemoveSubject(args[0]); err != nil {
				return err
			}
			cmd.Printf("Subject %s removed.\n", core.CleanString(args[0]))
			return nil
		},
	}

	var sortBy string
	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := sh.book.ListSubjects(core.ParseOrderings(sortBy)...)
			if err != nil {
				return err
			}
			if len(subjects) == 0 {
				cmd.Println("No subjects.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "CODE\tNAME")
			for _, s := range subjects {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", s.Code, s.Name)
			}
			return w.Flush()
		},
	}
	lsCmd.Flags().StringVar(&sortBy, "sort", "", "comma separated fields among code, name, created_at; prefix with - to reverse")

	cmd.AddCommand(addCmd, editCmd, rmCmd, lsCmd)
	return cmd
}

// Grades

func (sh *shell) newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "grade", Short: "Record and show grades"}

	setCmd := &cobra.Command{
		Use:   "set <student> <subject> <mark>",
		Short: "Record a mark (0-100), replacing any previous one",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mark, err := grade.ParseMark(args[2])
			if err != nil {
				return err
			}
			g, err := sh.book.RecordGrade(grade.NewGrade{StudentID: args[0], SubjectCode: args[1], Mark: mark})
			if err != nil {
				return sh.hint(err, args[0], args[1])
			}
			cmd.Printf("Grade recorded: %g for %s in %s.\n", g.Mark, g.StudentID, g.SubjectCode)
			return nil
		},
	}

	// negative marks are arguments, not shorthand flags
	setCmd.Flags().SetInterspersed(false)

	showCmd := &cobra.Command{
		Use:   "show <student>",
		Short: "Show a student's marks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := sh.book.GetStudent(args[0])
			if err != nil {
				return sh.hint(err, args[0], "")
			}
			marks, err := sh.book.GradesForStudent(student.ID)
			if err != nil {
				return err
			}
			if len(marks) == 0 {
				cmd.Println("No grades recorded.")
				return nil
			}

			codes := make([]string, 0, len(marks))
			for code := range marks {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "SUBJECT\tMARK")
			for _, code := range codes {
				_, _ = fmt.Fprintf(w, "%s\t%.2f\n", code, marks[code])
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(setCmd, showCmd)
	return cmd
}

// Analytics

func (sh *shell) newGPACmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gpa <student>",
		Short: "Show a student's average mark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := sh.book.GetStudent(args[0])
			if err != nil {
				return sh.hint(err, args[0], "")
			}
			avg, err := sh.book.AverageForStudent(student.ID)
			switch {
			case err == nil:
				cmd.Printf("GPA: %.2f\n", avg)
			case errors.Is(err, core.ErrNoData):
				cmd.Println("GPA: N/A")
			default:
				return err
			}
			return nil
		},
	}
}

func (sh *shell) newChartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Draw the average mark of every subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bars, err := sh.book.ChartBars()
			if err != nil {
				return err
			}
			return analytics.RenderBarChart(cmd.OutOrStdout(), bars, chartWidth)
		},
	}
}

func (sh *shell) newReportCmd() *cobra.Command {
	var send bool
	cmd := &cobra.Command{
		Use:   "report <student>",
		Short: "Print a student's grade report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := sh.book.StudentReport(args[0])
			if err != nil {
				return sh.hint(err, args[0], "")
			}
			if !send {
				return report.Render(cmd.OutOrStdout())
			}
			if err = sh.book.SendReport(report.Student.ID); err != nil {
				return err
			}
			cmd.Printf("Grade report sent to %s.\n", report.Student.Email)
			return nil
		},
	}
	cmd.Flags().BoolVar(&send, "send", false, "email the report to the student instead of printing it")
	return cmd
}
