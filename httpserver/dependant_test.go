package httpserver_test

import (
	"net/http"
	"testing"
	"time"

	"movieclub/dependant"
	"movieclub/httpserver"
	"movieclub/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddDependant(t *testing.T) {
	req := httpserver.AddDependantRequest{
		LoginID:  "emp-042",
		Name:     "Riya",
		Relation: "child",
		DOB:      "2015-06-01",
		Gender:   "female",
	}
	expected := dependant.Dependant{
		Name:        "Riya",
		Relation:    dependant.RelationChild,
		DateOfBirth: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		Gender:      dependant.GenderFemale,
	}

	t.Run("returns dependant id", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		svc.On("AddDependant", mock.Anything, "emp-042", expected).Return(int64(5), nil).Once()

		rec := serveJSON(server, http.MethodPost, "/employees/add-dependant", req)

		assertEnvelope(t, rec, http.StatusOK, "Dependant added successfully")
		var result map[string]int64
		decodeResult(t, rec, &result)
		assert.Equal(t, int64(5), result["dependantId"])
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		svc.On("AddDependant", mock.Anything, "emp-042", expected).Return(int64(0), user.ErrUserNotFound).Once()

		rec := serveJSON(server, http.MethodPost, "/employees/add-dependant", req)

		assertEnvelope(t, rec, http.StatusNotFound, "Employee not found")
	})

	t.Run("bad date of birth", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		bad := req
		bad.DOB = "01/06/2015"

		rec := serveJSON(server, http.MethodPost, "/employees/add-dependant", bad)

		assertEnvelope(t, rec, http.StatusBadRequest, "dependant: date of birth must be YYYY-MM-DD or RFC 3339 and not in the future")
		svc.AssertNotCalled(t, "AddDependant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown relation", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		bad := req
		bad.Relation = "cousin"

		rec := serveJSON(server, http.MethodPost, "/employees/add-dependant", bad)

		assertEnvelope(t, rec, http.StatusBadRequest, "")
	})
}

func TestListDependants(t *testing.T) {
	t.Run("lists dependants", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		svc.On("ListDependants", mock.Anything, "emp-042").Return([]dependant.Dependant{{
			ID:          5,
			Name:        "Riya",
			Relation:    dependant.RelationChild,
			DateOfBirth: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
			Gender:      dependant.GenderFemale,
		}}, nil).Once()

		rec := serveJSON(server, http.MethodGet, "/employees/dependants/emp-042", nil)

		assertEnvelope(t, rec, http.StatusOK, "OK")
		var got []httpserver.DependantResponse
		decodeList(t, rec, &got)
		assert.Equal(t, []httpserver.DependantResponse{
			{ID: 5, Name: "Riya", Relation: "child", DOB: "2015-06-01", Gender: "female"},
		}, got)
	})

	t.Run("no dependants", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		svc.On("ListDependants", mock.Anything, "emp-042").Return([]dependant.Dependant{}, nil).Once()

		rec := serveJSON(server, http.MethodGet, "/employees/dependants/emp-042", nil)

		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		svc.On("ListDependants", mock.Anything, "ghost").Return([]dependant.Dependant(nil), user.ErrUserNotFound).Once()

		rec := serveJSON(server, http.MethodGet, "/employees/dependants/ghost", nil)

		assertEnvelope(t, rec, http.StatusNotFound, "Employee not found")
	})
}

func TestUpdateDependant(t *testing.T) {
	req := httpserver.UpdateDependantRequest{
		DependantID: 5,
		Name:        "Riya Rao",
		Relation:    "child",
		DOB:         "2015-06-01T00:00:00.000Z",
		Gender:      "female",
	}

	t.Run("updates", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		svc.On("UpdateDependant", mock.Anything, dependant.Dependant{
			ID:          5,
			Name:        "Riya Rao",
			Relation:    dependant.RelationChild,
			DateOfBirth: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
			Gender:      dependant.GenderFemale,
		}).Return(nil).Once()

		rec := serveJSON(server, http.MethodPut, "/employees/update-dependant", req)

		assertEnvelope(t, rec, http.StatusOK, "Dependant updated successfully")
		svc.AssertExpectations(t)
	})

	t.Run("unknown dependant", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		svc.On("UpdateDependant", mock.Anything, mock.Anything).Return(dependant.ErrDependantNotFound).Once()

		rec := serveJSON(server, http.MethodPut, "/employees/update-dependant", req)

		assertEnvelope(t, rec, http.StatusNotFound, "Dependant not found")
	})

	t.Run("dependant id required", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		bad := req
		bad.DependantID = 0

		rec := serveJSON(server, http.MethodPut, "/employees/update-dependant", bad)

		assertEnvelope(t, rec, http.StatusBadRequest, "")
	})
}

func TestDeleteDependant(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		svc.On("DeleteDependant", mock.Anything, int64(5)).Return(nil).Once()

		rec := serveJSON(server, http.MethodDelete, "/employees/delete-dependant/5", nil)

		assertEnvelope(t, rec, http.StatusOK, "Dependant deleted successfully")
	})

	t.Run("unknown dependant", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc
		svc.On("DeleteDependant", mock.Anything, int64(6)).Return(dependant.ErrDependantNotFound).Once()

		rec := serveJSON(server, http.MethodDelete, "/employees/delete-dependant/6", nil)

		assertEnvelope(t, rec, http.StatusNotFound, "Dependant not found")
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(MockDependantService)
		server := httpserver.Default(testConfig())
		server.DependantService = svc

		rec := serveJSON(server, http.MethodDelete, "/employees/delete-dependant/abc", nil)

		assertEnvelope(t, rec, http.StatusBadRequest, "")
		svc.AssertNotCalled(t, "DeleteDependant", mock.Anything, mock.Anything)
	})
}
