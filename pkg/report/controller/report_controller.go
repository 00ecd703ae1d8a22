package controller

import "github.com/labstack/echo/v4"

type ReportController interface {
	Register(g *echo.Group)
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
	UploadImage(c echo.Context) error
	ListImages(c echo.Context) error
	DeleteImage(c echo.Context) error
}
