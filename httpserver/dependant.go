package httpserver

import (
	"net/http"
	"strconv"

	"movieclub/dependant"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterDependantRoutes(admin ...echo.MiddlewareFunc) {
	s.Router.POST("/employees/add-dependant", s.handleAddDependant, admin...)
	s.Router.GET("/employees/dependants/:loginId", s.handleListDependants)
	s.Router.PUT("/employees/update-dependant", s.handleUpdateDependant, admin...)
	s.Router.DELETE("/employees/delete-dependant/:dependantId", s.handleDeleteDependant, admin...)
}

// handleAddDependant godoc
// @Summary Add dependant
// @Tags dependants
// @Accept json
// @Produce json
// @Param payload body AddDependantRequest true "Dependant"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /employees/add-dependant [post]
func (s *Server) handleAddDependant(c echo.Context) error {
	var req AddDependantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	d, err := req.ToDependant()
	if err != nil {
		return err
	}

	id, err := s.DependantService.AddDependant(c.Request().Context(), req.LoginID, d)
	if err != nil {
		return err
	}
	return writeMessage(c, http.StatusOK, "Dependant added successfully", map[string]int64{"dependantId": id})
}

// handleListDependants godoc
// @Summary List dependants of an employee
// @Tags dependants
// @Produce json
// @Param loginId path string true "Employee login ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /employees/dependants/{loginId} [get]
func (s *Server) handleListDependants(c echo.Context) error {
	dependants, err := s.DependantService.ListDependants(c.Request().Context(), c.Param("loginId"))
	if err != nil {
		return err
	}

	data := make([]DependantResponse, 0, len(dependants))
	for _, d := range dependants {
		data = append(data, toDependantResponse(d))
	}
	return writeList(c, http.StatusOK, data)
}

// handleUpdateDependant godoc
// @Summary Update dependant
// @Tags dependants
// @Accept json
// @Produce json
// @Param payload body UpdateDependantRequest true "Dependant"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /employees/update-dependant [put]
func (s *Server) handleUpdateDependant(c echo.Context) error {
	var req UpdateDependantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	d, err := req.ToDependant()
	if err != nil {
		return err
	}

	if err := s.DependantService.UpdateDependant(c.Request().Context(), d); err != nil {
		return err
	}
	return writeMessage(c, http.StatusOK, "Dependant updated successfully", nil)
}

// handleDeleteDependant godoc
// @Summary Delete dependant
// @Tags dependants
// @Produce json
// @Param dependantId path int true "Dependant ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /employees/delete-dependant/{dependantId} [delete]
func (s *Server) handleDeleteDependant(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("dependantId"), 10, 64)
	if err != nil || id <= 0 {
		return dependant.ErrInvalidID
	}

	if err := s.DependantService.DeleteDependant(c.Request().Context(), id); err != nil {
		return err
	}
	return writeMessage(c, http.StatusOK, "Dependant deleted successfully", nil)
}
