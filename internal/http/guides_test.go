package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleListGuides(t *testing.T) {
	server := setupTestServer(t)

	rec := serve(server, http.MethodGet, "/api/v1/guides")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []GuideResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []GuideResponse{
		{Name: "ISSUE_DETAILS", ID: 1, Guide: "issue_details", Active: true},
		{Name: "ISSUE_STREAM", ID: 3, Guide: "issue_stream", Active: true},
		{Name: "DISCOVER_SIDEBAR", ID: 4, Guide: "discover_sidebar", Active: true},
	}, resp)
}

func TestHandleActiveGuides(t *testing.T) {
	server := setupTestServer(t)

	rec := serve(server, http.MethodGet, "/api/v1/guides/active")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"name":"ISSUE_DETAILS","id":1,"guide":"issue_details","active":true},
		{"name":"ISSUE_STREAM","id":3,"guide":"issue_stream","active":true},
		{"name":"DISCOVER_SIDEBAR","id":4,"guide":"discover_sidebar","active":true}
	]`, rec.Body.String())
}

func TestHandleGetGuide(t *testing.T) {
	t.Run("resolves a defined guide", func(t *testing.T) {
		server := setupTestServer(t)

		rec := serve(server, http.MethodGet, "/api/v1/guides/3")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp GuideResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, GuideResponse{Name: "ISSUE_STREAM", ID: 3, Guide: "issue_stream", Active: true}, resp)
	})

	for _, id := range []string{"2", "0", "-1", "999"} {
		t.Run("unknown identifier "+id, func(t *testing.T) {
			server := setupTestServer(t)

			rec := serve(server, http.MethodGet, "/api/v1/guides/"+id)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "unknown guide identifier: "+id, resp["message"])
		})
	}

	t.Run("non-integer identifier", func(t *testing.T) {
		server := setupTestServer(t)

		rec := serve(server, http.MethodGet, "/api/v1/guides/issue_details")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleAssistant(t *testing.T) {
	server := setupTestServer(t)

	rec := serve(server, http.MethodGet, "/api/v1/assistant")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"guide":"issue_details","id":1},
		{"guide":"issue_stream","id":3},
		{"guide":"discover_sidebar","id":4}
	]`, rec.Body.String())
}
