package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/fundalabs/funda/core/assignment"
	"github.com/fundalabs/funda/core/identity"
	"github.com/fundalabs/funda/core/student"
)

type assignmentApi struct {
	svc         *assignment.Service
	studentSvc  *student.Service
	identitySvc *identity.Service
	generator   assignment.Generator
}

func registerAssignmentAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *assignment.Service,
	studentSvc *student.Service,
	identitySvc *identity.Service,
	generator assignment.Generator,
) {
	api := assignmentApi{
		svc:         svc,
		studentSvc:  studentSvc,
		identitySvc: identitySvc,
		generator:   generator,
	}

	ag := g.Group("/assignments", jwt)

	// teacher endpoints
	ag.POST("/generate", api.generate, teacherMiddleware())
	ag.POST("", api.create, teacherMiddleware())
	ag.GET("", api.query, teacherMiddleware())

	// student endpoints
	ag.GET("/mine", api.mine, studentMiddleware())
	ag.POST("/:id/submit", api.submit, studentMiddleware())
}

// Handlers

// generate produces content for preview. One credit is spent per successful
// generation; a generation failure consumes nothing and creates nothing.
func (api *assignmentApi) generate(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data assignment.GenerateRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateRequest")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	// gate before burning an upstream call
	out, err := api.identitySvc.OutOfCredits(id)
	if err != nil {
		return errors.Wrap(err, "checking credits")
	}
	if out {
		return identity.ErrOutOfCredits
	}

	content, err := api.generator.Generate(ctx.Request().Context(), data)
	if err != nil {
		return err
	}

	if err = api.identitySvc.Consume(id); err != nil {
		return err
	}
	credits, err := api.identitySvc.Credits(id)
	if err != nil {
		return errors.Wrap(err, "reading credits")
	}

	return ctx.JSON(http.StatusOK, GenerateResponse{
		OutputType: data.OutputType,
		Content:    content,
		Credits:    credits,
	})
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	a, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	assignments, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *assignmentApi) mine(ctx echo.Context) error {
	s, err := api.contextStudent(ctx)
	if err != nil {
		return err
	}

	views, err := api.svc.ForStudent(s.ID)
	if err != nil {
		return errors.Wrap(err, "projecting assignments")
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	s, err := api.contextStudent(ctx)
	if err != nil {
		return err
	}

	assignmentID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}

	var data SubmitRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitRequest")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	sub, err := api.svc.Submit(assignmentID, s.ID, data.Answers)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

// contextStudent resolves the logged-in student's roster entry.
func (api *assignmentApi) contextStudent(ctx echo.Context) (student.Student, error) {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return student.Student{}, err
	}
	s, err := api.studentSvc.GetByName(id.Name)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "resolving context student")
	}
	return s, nil
}
