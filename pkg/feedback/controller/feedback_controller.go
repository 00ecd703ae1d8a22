package controller

import "github.com/labstack/echo/v4"

type FeedbackController interface {
	Register(g *echo.Group)
	AddComment(c echo.Context) error
	ListComments(c echo.Context) error
	AddReaction(c echo.Context) error
}
