package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/fundalabs/funda/core/comms"
	"github.com/fundalabs/funda/core/student"
)

type commsApi struct {
	svc        *comms.Service
	studentSvc *student.Service
}

func registerCommsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *comms.Service, studentSvc *student.Service) {
	api := commsApi{svc: svc, studentSvc: studentSvc}

	cg := g.Group("/comms", jwt)

	// teacher endpoints
	cg.POST("", api.send, teacherMiddleware())
	cg.GET("", api.query, teacherMiddleware())

	// student endpoints
	cg.GET("/inbox", api.inbox, studentMiddleware())
}

// Handlers

func (api *commsApi) send(ctx echo.Context) error {
	var data comms.NewCommunication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCommunication")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	c, err := api.svc.Send(data)
	if err != nil {
		return errors.Wrap(err, "sending communication")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *commsApi) query(ctx echo.Context) error {
	msgs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying communications")
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *commsApi) inbox(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	s, err := api.studentSvc.GetByName(id.Name)
	if err != nil {
		return errors.Wrap(err, "resolving context student")
	}

	msgs, err := api.svc.Inbox(s.ID)
	if err != nil {
		return errors.Wrap(err, "reading inbox")
	}
	return ctx.JSON(http.StatusOK, msgs)
}
