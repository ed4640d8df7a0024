package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/fundalabs/funda/core/identity"
)

type authApi struct {
	svc *identity.Service
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *identity.Service) {
	api := authApi{svc: svc}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)

	// authed endpoints
	sg := ag.Group("", jwt)
	sg.GET("/credits", api.credits)
	sg.POST("/upgrade", api.upgrade)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	id, err := api.svc.Login(data.Name, data.Role)
	if err != nil {
		return err
	}
	token, err := GenerateToken(getIdentityClaims(id))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	credits, err := api.svc.Credits(id)
	if err != nil {
		return errors.Wrap(err, "reading credits")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Identity: id, Credits: credits})
}

func (api *authApi) credits(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	credits, err := api.svc.Credits(id)
	if err != nil {
		return errors.Wrap(err, "reading credits")
	}
	out, err := api.svc.OutOfCredits(id)
	if err != nil {
		return errors.Wrap(err, "checking credits")
	}

	return ctx.JSON(http.StatusOK, CreditsResponse{Credits: credits, OutOfCredits: out})
}

func (api *authApi) upgrade(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	id, err = api.svc.UpgradeToPro(id)
	if err != nil {
		return errors.Wrap(err, "upgrading to pro")
	}

	// re-issue the token so the pro flag sticks to the session
	token, err := GenerateToken(getIdentityClaims(id))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Identity: id})
}
