package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterUserRoutes(admin ...echo.MiddlewareFunc) {
	s.Router.POST("/add-admin", s.handleAddAdmin, admin...)
	s.Router.POST("/employees/add", s.handleAddEmployee, admin...)
	s.Router.PUT("/employees/update", s.handleUpdateEmployee, admin...)
}

// handleAddAdmin godoc
// @Summary Add admin
// @Tags users
// @Accept json
// @Produce json
// @Param payload body AddAdminRequest true "Admin"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /add-admin [post]
func (s *Server) handleAddAdmin(c echo.Context) error {
	var req AddAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := s.UserService.AddAdmin(c.Request().Context(), req.ToUser())
	if err != nil {
		return err
	}
	return writeMessage(c, http.StatusOK, "Admin added successfully", map[string]int64{"id": id})
}

// handleAddEmployee godoc
// @Summary Add employee
// @Description Status defaults to active
// @Tags users
// @Accept json
// @Produce json
// @Param payload body AddEmployeeRequest true "Employee"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /employees/add [post]
func (s *Server) handleAddEmployee(c echo.Context) error {
	var req AddEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := s.UserService.AddEmployee(c.Request().Context(), req.ToUser())
	if err != nil {
		return err
	}
	return writeMessage(c, http.StatusOK, "Employee added successfully", map[string]int64{"id": id})
}

// handleUpdateEmployee godoc
// @Summary Update employee
// @Description Overwrite name, email, phone and status of the employee with loginId
// @Tags users
// @Accept json
// @Produce json
// @Param payload body UpdateEmployeeRequest true "Employee profile"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /employees/update [put]
func (s *Server) handleUpdateEmployee(c echo.Context) error {
	var req UpdateEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.UserService.UpdateEmployee(c.Request().Context(), req.LoginID, req.ToProfile()); err != nil {
		return err
	}
	return writeMessage(c, http.StatusOK, "Employee updated successfully", nil)
}
