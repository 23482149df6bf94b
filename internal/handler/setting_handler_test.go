package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gigwise/eventops/internal/dto"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSettingRepo struct {
	getFn    func(ctx context.Context, key string, out any) (bool, error)
	setFn    func(ctx context.Context, key string, value any) error
	deleteFn func(ctx context.Context, key string) error
}

func (m *mockSettingRepo) Get(ctx context.Context, key string, out any) (bool, error) {
	return m.getFn(ctx, key, out)
}
func (m *mockSettingRepo) Set(ctx context.Context, key string, value any) error {
	return m.setFn(ctx, key, value)
}
func (m *mockSettingRepo) Delete(ctx context.Context, key string) error {
	return m.deleteFn(ctx, key)
}

var _ repository.SettingRepository = (*mockSettingRepo)(nil)

func TestGetSetting_Found(t *testing.T) {
	settings := &mockSettingRepo{
		getFn: func(ctx context.Context, key string, out any) (bool, error) {
			require.Equal(t, "company_name", key)
			*(out.(*json.RawMessage)) = json.RawMessage(`"Dynamik Discos"`)
			return true, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings/company_name", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("key")
	c.SetParamValues("company_name")

	h := NewSettingHandler(settings)
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SettingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "company_name", resp.Key)
	assert.JSONEq(t, `"Dynamik Discos"`, string(resp.Value))
}

func TestGetSetting_MissingKeyIs404(t *testing.T) {
	settings := &mockSettingRepo{
		getFn: func(ctx context.Context, key string, out any) (bool, error) {
			return false, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings/unset", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("key")
	c.SetParamValues("unset")

	h := NewSettingHandler(settings)
	err := h.Get(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestPutSetting_StoresValue(t *testing.T) {
	var storedKey string
	var storedValue any
	settings := &mockSettingRepo{
		setFn: func(ctx context.Context, key string, value any) error {
			storedKey = key
			storedValue = value
			return nil
		},
	}

	e := echo.New()
	body := `{"value":{"enabled":true,"days":14}}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/reminder_policy", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("key")
	c.SetParamValues("reminder_policy")

	h := NewSettingHandler(settings)
	require.NoError(t, h.Put(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reminder_policy", storedKey)
	raw, ok := storedValue.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"enabled":true,"days":14}`, string(raw))
}

func TestPutSetting_MissingValue(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/company_name", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("key")
	c.SetParamValues("company_name")

	h := NewSettingHandler(nil)
	err := h.Put(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
