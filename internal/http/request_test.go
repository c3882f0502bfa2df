package router

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/forumpay?act=getRate&currency=BTC", nil)

	params := NewParams(r)

	value, err := params.GetRequired("act")
	require.NoError(t, err)
	assert.Equal(t, "getRate", value)

	assert.Equal(t, "BTC", params.Get("currency", ""))
	assert.Equal(t, "fallback", params.Get("missing", "fallback"))
}

func TestParamsMissingRequired(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/forumpay", nil)

	_, err := NewParams(r).GetRequired("orderId")
	require.Error(t, err)

	var missing *MissingParamError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "orderId", missing.Param)
	assert.Equal(t, "missing required parameter orderId", err.Error())
}

func TestParamsJSONBodyOverridesQuery(t *testing.T) {
	body := strings.NewReader(`{"orderId":"from-body","amount":12.5,"cancelled":true}`)
	r := httptest.NewRequest("POST", "/api/forumpay?orderId=from-query&currency=BTC", body)
	r.Header.Set("Content-Type", "application/json")

	params := NewParams(r)

	assert.Equal(t, "from-body", params.Get("orderId", ""))
	assert.Equal(t, "BTC", params.Get("currency", ""))
	assert.Equal(t, "12.5", params.Get("amount", ""))
	assert.Equal(t, "true", params.Get("cancelled", ""))
}

func TestParamsJSONBodyWithCharsetParameter(t *testing.T) {
	body := strings.NewReader(`{"payment_id":"P1","reference_no":"o1"}`)
	r := httptest.NewRequest("POST", "/api/forumpay/webhook", body)
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	params := NewParams(r)

	assert.Equal(t, "P1", params.Get("payment_id", ""))
	assert.Equal(t, "o1", params.Get("reference_no", ""))
}

func TestParamsMalformedJSONBodyIgnored(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/forumpay?orderId=o1", strings.NewReader("{broken"))
	r.Header.Set("Content-Type", "application/json")

	params := NewParams(r)

	assert.Equal(t, "o1", params.Get("orderId", ""))
}

func TestParamsFromForm(t *testing.T) {
	form := url.Values{"payment_id": {"P1"}, "reference_no": {"o1"}}
	r := httptest.NewRequest("POST", "/api/forumpay/webhook", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	params := NewParams(r)

	assert.Equal(t, "P1", params.Get("payment_id", ""))
	assert.Equal(t, "o1", params.Get("reference_no", ""))
}

func TestParamsEscapeOnRead(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/forumpay?description="+url.QueryEscape(`<script>"x"</script>`), nil)

	params := NewParams(r)

	assert.Equal(t, "&lt;script&gt;&#34;x&#34;&lt;/script&gt;", params.Get("description", ""))
}
