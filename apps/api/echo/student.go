package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/directory"
	"github.com/trezcool/gradebook/core/gradebook"
)

type studentApi struct {
	book *gradebook.Book
}

func registerStudentAPI(g *echo.Group, book *gradebook.Book) {
	api := studentApi{book: book}
	obj := studentMiddleware(book)

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	sg.GET("/:id", api.retrieve, obj)
	sg.PUT("/:id", api.update, obj)
	sg.DELETE("/:id", api.destroy)
	sg.GET("/:id/grades", api.grades, obj)
	sg.GET("/:id/gpa", api.gpa, obj)
	sg.GET("/:id/report", api.report, obj)
	sg.POST("/:id/report", api.sendReport, obj)
}

func ctxStudent(ctx echo.Context) (directory.Student, error) {
	student, ok := ctx.Get(contextObjectKey).(directory.Student)
	if !ok {
		return directory.Student{}, errors.Wrap(errObjNotFoundInCtx, "retrieving student from context")
	}
	return student, nil
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	students, err := api.book.ListStudents(ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data directory.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	student, err := api.book.AddStudent(data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, student)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	student, err := ctxStudent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, student)
}

func (api *studentApi) update(ctx echo.Context) error {
	student, err := ctxStudent(ctx)
	if err != nil {
		return err
	}

	var data directory.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	student, err = api.book.UpdateStudent(student.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, student)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.book.RemoveStudent(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "removing student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) grades(ctx echo.Context) error {
	student, err := ctxStudent(ctx)
	if err != nil {
		return err
	}

	marks, err := api.book.GradesForStudent(student.ID)
	if err != nil {
		return errors.Wrap(err, "querying student grades")
	}
	return ctx.JSON(http.StatusOK, marks)
}

func (api *studentApi) gpa(ctx echo.Context) error {
	student, err := ctxStudent(ctx)
	if err != nil {
		return err
	}

	res := GPAResponse{StudentID: student.ID}
	avg, err := api.book.AverageForStudent(student.ID)
	switch {
	case err == nil:
		res.Average = &avg
	case !errors.Is(err, core.ErrNoData):
		return errors.Wrap(err, "computing student average")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *studentApi) report(ctx echo.Context) error {
	student, err := ctxStudent(ctx)
	if err != nil {
		return err
	}

	report, err := api.book.StudentReport(student.ID)
	if err != nil {
		return errors.Wrap(err, "building student report")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *studentApi) sendReport(ctx echo.Context) error {
	student, err := ctxStudent(ctx)
	if err != nil {
		return err
	}

	if err = api.book.SendReport(student.ID); err != nil {
		return errors.Wrap(err, "sending student report")
	}
	return ctx.JSON(http.StatusAccepted, SuccessResponse{Success: "Grade report sent to " + student.Email + "."})
}
