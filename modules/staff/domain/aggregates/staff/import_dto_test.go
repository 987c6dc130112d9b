package staff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImportRequest_Ok_Valid(t *testing.T) {
	req := &ImportRequest{
		SourceSystem: " rs-v1 ",
		NewHire: &NewHireDTO{
			FirstName: " Jane ",
			LastName:  " Smith ",
		},
	}

	errs, ok := req.Ok()
	require.True(t, ok, "got validation errors: %v", errs)
	require.Equal(t, "rs-v1", req.SourceSystem)
	require.Equal(t, "Jane", req.NewHire.FirstName)
	require.Equal(t, "Smith", req.NewHire.LastName)
}

func TestImportRequest_Ok_MissingFields(t *testing.T) {
	req := &ImportRequest{
		SourceSystem: "   ",
		NewHire:      &NewHireDTO{FirstName: "Jane"},
	}

	errs, ok := req.Ok()
	require.False(t, ok)
	require.Contains(t, errs, "source_system")
	require.Contains(t, errs, "last_name")
}

func TestImportRequest_Normalize_Defaults(t *testing.T) {
	req := &ImportRequest{
		SourceSystem: "rs-v1",
		NewHire: &NewHireDTO{
			FirstName:  "Jane",
			LastName:   "Smith",
			RoleInUnit: "  ",
		},
	}
	req.Normalize()
	require.Equal(t, DefaultUnitRole, req.NewHire.RoleInUnit)
	require.False(t, req.NewHire.IsPrimaryUnit)
}

func TestImportRequest_HasReference(t *testing.T) {
	req := &ImportRequest{
		SourceSystem: "rs-v1",
		NewHire:      &NewHireDTO{FirstName: "Jane", LastName: "Smith", EmployeeReference: "  "},
	}
	req.Normalize()
	require.False(t, req.HasReference())

	req.NewHire.EmployeeReference = "EMP001"
	require.True(t, req.HasReference())
}

func TestImportRequest_DecodeWire(t *testing.T) {
	raw := []byte(`{
		"source_system": "rs-v1",
		"new_hire": {
			"first_name": "Jane",
			"last_name": "Smith",
			"employee_reference": "EMP001",
			"organisational_unit": "Care Team A",
			"role_in_unit": "member",
			"is_primary_unit": true
		}
	}`)

	var req ImportRequest
	require.NoError(t, json.Unmarshal(raw, &req))
	_, ok := req.Ok()
	require.True(t, ok)
	require.Equal(t, "Care Team A", req.NewHire.OrganisationalUnit)
	require.True(t, req.NewHire.IsPrimaryUnit)
	require.Nil(t, req.NewHire.OrganisationalUnitID)
}

func TestImportRequest_Values(t *testing.T) {
	req := &ImportRequest{
		SourceSystem: "rs-v1",
		NewHire: &NewHireDTO{
			FirstName:   "Jane",
			LastName:    "Smith",
			Email:       "jane@example.org",
			DateOfBirth: "1990-04-01",
		},
	}
	req.Normalize()

	v := req.Values()
	require.Equal(t, "Jane", v.FirstName)
	require.Equal(t, "jane@example.org", v.Email)
	require.Equal(t, "1990-04-01", v.DateOfBirth)
	require.Equal(t, "", v.Phone)
}
