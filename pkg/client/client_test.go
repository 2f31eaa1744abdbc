package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apivet/apivet/pkg/mock"
	"github.com/apivet/apivet/pkg/operation"
	"github.com/apivet/apivet/pkg/schema"
	"github.com/apivet/apivet/pkg/transport"
)

// newCompanyFixture wires a client with the listCompanies operation and its
// schema over a fresh mock transport.
func newCompanyFixture(t *testing.T) (*Client, *mock.Transport) {
	t.Helper()

	ops := operation.NewRegistry()
	require.NoError(t, ops.Register(&operation.Operation{
		Name:         "listCompanies",
		Method:       http.MethodGet,
		PathTemplate: "/companies",
	}))

	schemas := schema.NewRegistry()
	require.NoError(t, schemas.Register("listCompanies", schema.Array(&schema.Field{
		Type: schema.TypeObject,
		Properties: map[string]*schema.Field{
			"id":        {Type: schema.TypeString, Required: true, Format: "uuid"},
			"tradeName": {Type: schema.TypeString, Required: true},
			"employees": {Type: schema.TypeInteger, Required: true, Min: schema.Float(0)},
		},
	})))

	mt := mock.Listen()
	t.Cleanup(mt.Close)

	return New(mt, ops, schemas), mt
}

func companies(employeesSecond int) []map[string]interface{} {
	return []map[string]interface{}{
		{
			"id":        "0c6fde71-9e34-4b1e-8a9f-24d8ec5a2f10",
			"tradeName": "ACME Freight",
			"employees": 10,
		},
		{
			"id":        "b8e6a2d4-51c7-4f7e-9a0b-7f3d2c91e5a8",
			"tradeName": "Globex Shipping",
			"employees": employeesSecond,
		},
	}
}

func TestCall_ReturnsConformantBodyUnmodified(t *testing.T) {
	c, mt := newCompanyFixture(t)
	mt.Register(http.MethodGet, "/companies", mock.JSON(200, companies(30)))

	result, err := c.Call(context.Background(), "listCompanies", nil)
	require.NoError(t, err)

	assert.Equal(t, "listCompanies", result.Operation)
	assert.Equal(t, 200, result.StatusCode)

	records, ok := result.Value.([]interface{})
	require.True(t, ok)
	require.Len(t, records, 2)

	first := records[0].(map[string]interface{})
	assert.Equal(t, "0c6fde71-9e34-4b1e-8a9f-24d8ec5a2f10", first["id"])
	assert.Equal(t, "ACME Freight", first["tradeName"])
	assert.Equal(t, float64(10), first["employees"])

	second := records[1].(map[string]interface{})
	assert.Equal(t, float64(30), second["employees"])
}

func TestCall_NegativeEmployeesViolatesSchema(t *testing.T) {
	c, mt := newCompanyFixture(t)
	mt.Register(http.MethodGet, "/companies", mock.JSON(200, companies(-1)))

	_, err := c.Call(context.Background(), "listCompanies", nil)

	var failure *schema.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "listCompanies", failure.Operation)
	require.Len(t, failure.Violations, 1)
	v := failure.Violations[0]
	assert.Contains(t, v.Field, "employees")
	assert.Equal(t, schema.CodeMin, v.Code)
	assert.Equal(t, ">= 0", v.Expected)
}

func TestCall_MissingRequiredFieldNamesIt(t *testing.T) {
	c, mt := newCompanyFixture(t)
	mt.Register(http.MethodGet, "/companies", mock.JSON(200, []map[string]interface{}{
		{"id": "0c6fde71-9e34-4b1e-8a9f-24d8ec5a2f10", "employees": 10},
	}))

	_, err := c.Call(context.Background(), "listCompanies", nil)

	var failure *schema.Failure
	require.ErrorAs(t, err, &failure)
	require.Len(t, failure.Violations, 1)
	assert.Contains(t, failure.Violations[0].Field, "tradeName")
	assert.Equal(t, schema.CodeRequired, failure.Violations[0].Code)
}

func TestCall_UndeclaredFieldsPassThrough(t *testing.T) {
	c, mt := newCompanyFixture(t)

	body := companies(30)
	body[0]["legacySoapEnvelope"] = "<xml/>"
	body[1]["internalRank"] = 7
	mt.Register(http.MethodGet, "/companies", mock.JSON(200, body))

	result, err := c.Call(context.Background(), "listCompanies", nil)
	require.NoError(t, err)

	first := result.Value.([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "<xml/>", first["legacySoapEnvelope"])
}

func TestCall_UnknownOperation(t *testing.T) {
	c, _ := newCompanyFixture(t)

	_, err := c.Call(context.Background(), "listOwners", nil)

	var unknown *UnknownOperationError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "listOwners", unknown.Name)
}

func TestCall_MalformedBody(t *testing.T) {
	c, mt := newCompanyFixture(t)
	mt.Register(http.MethodGet, "/companies", mock.Bytes(200, "text/html", []byte("<html>Bad Gateway</html>")))

	_, err := c.Call(context.Background(), "listCompanies", nil)

	var malformed *MalformedBodyError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "listCompanies", malformed.Operation)
}

func TestCall_TransportErrorPropagates(t *testing.T) {
	c, mt := newCompanyFixture(t)
	mt.Register(http.MethodGet, "/companies", mock.Status(200))
	mt.Close()

	_, err := c.Call(context.Background(), "listCompanies", nil)

	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, mock.ErrClosed)
}

func TestCall_UnhandledRequestNeverHitsNetwork(t *testing.T) {
	c, _ := newCompanyFixture(t)
	// No handler registered at all.

	_, err := c.Call(context.Background(), "listCompanies", nil)

	var unhandled *mock.UnhandledRequestError
	require.ErrorAs(t, err, &unhandled)
	assert.Equal(t, "/companies", unhandled.Path)
}

func TestCall_MissingParamFailsBeforeTransport(t *testing.T) {
	ops := operation.NewRegistry()
	require.NoError(t, ops.Register(&operation.Operation{
		Name:         "getCompany",
		Method:       http.MethodGet,
		PathTemplate: "/companies/{id}",
	}))
	schemas := schema.NewRegistry()
	require.NoError(t, schemas.Register("getCompany", schema.Object(nil)))

	mt := mock.Listen()
	defer mt.Close()
	c := New(mt, ops, schemas)

	_, err := c.Call(context.Background(), "getCompany", nil)

	var perr *operation.ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "id", perr.Param)
}

func TestCallWithBody_PostRoundTrip(t *testing.T) {
	ops := operation.NewRegistry()
	require.NoError(t, ops.Register(&operation.Operation{
		Name:         "createCompany",
		Method:       http.MethodPost,
		PathTemplate: "/companies",
	}))
	schemas := schema.NewRegistry()
	require.NoError(t, schemas.Register("createCompany", schema.Object(map[string]*schema.Field{
		"id": {Type: schema.TypeString, Required: true},
	})))

	mt := mock.Listen()
	defer mt.Close()

	err := mt.RegisterMatcher(mock.Matcher{
		Method:       http.MethodPost,
		Path:         "/companies",
		BodyJSONPath: map[string]interface{}{"$.tradeName": "ACME"},
	}, mock.JSON(201, map[string]string{"id": "c-801"}))
	require.NoError(t, err)

	c := New(mt, ops, schemas)
	result, err := c.CallWithBody(context.Background(), "createCompany", nil, []byte(`{"tradeName": "ACME"}`))
	require.NoError(t, err)
	assert.Equal(t, 201, result.StatusCode)
	assert.Equal(t, "c-801", result.Value.(map[string]interface{})["id"])
}
