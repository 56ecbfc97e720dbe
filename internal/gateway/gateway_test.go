package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorlane/advisor-admin/internal/collection"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token", 5*time.Second)
}

func TestFetch_BareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/admin/firm-deals", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","firmName":"A"},{"id":"2","firmName":"B"}]`))
	})

	records, err := client.Fetch(context.Background(), collection.MustSpec(collection.FirmDeals))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID())
}

func TestFetch_EnvelopeUnwrap(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1","title":"Hello"}],"total":1}`))
	})

	records, err := client.Fetch(context.Background(), collection.MustSpec(collection.BlogPosts))
	require.NoError(t, err)
	require.Len(t, records, 1)
	title, _ := records[0].Str("title")
	assert.Equal(t, "Hello", title)
}

func TestFetch_EnvelopeMissingKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"articles":[]}`))
	})

	_, err := client.Fetch(context.Background(), collection.MustSpec(collection.BlogPosts))
	require.Error(t, err)
	assert.Equal(t, KindServer, KindOf(err))
}

func TestFetch_NullBodyIsEmptyNotNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	records, err := client.Fetch(context.Background(), collection.MustSpec(collection.FirmDeals))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFetch_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{{{not json`))
	})

	_, err := client.Fetch(context.Background(), collection.MustSpec(collection.FirmDeals))
	require.Error(t, err)
	assert.Equal(t, KindServer, KindOf(err))
}

func TestFetch_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindAuth},
		{http.StatusNotFound, KindNotFound},
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusNotImplemented, KindNotImplemented},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.Fetch(context.Background(), collection.MustSpec(collection.FirmDeals))
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			var gwErr *Error
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, tt.status, gwErr.Status)
		})
	}
}

func TestFetch_ErrorEnvelopeMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})

	_, err := client.Fetch(context.Background(), collection.MustSpec(collection.FirmDeals))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
	assert.True(t, IsKind(err, KindAuth))
}

func TestFetch_NetworkError(t *testing.T) {
	// Point at a closed server so the dial fails
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := New(srv.URL, "", time.Second)

	_, err := client.Fetch(context.Background(), collection.MustSpec(collection.FirmDeals))
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestMutate_Create(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/firm-deals", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var fields map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "Acme Wealth", fields["firmName"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"42","firmName":"Acme Wealth"}`))
	})

	record, err := client.Mutate(context.Background(),
		collection.MustSpec(collection.FirmDeals),
		collection.NewCreate(map[string]any{"firmName": "Acme Wealth"}))
	require.NoError(t, err)
	assert.Equal(t, "42", record.ID())
}

func TestMutate_Update(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/firm-deals/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"42","stage":"Closed"}`))
	})

	record, err := client.Mutate(context.Background(),
		collection.MustSpec(collection.FirmDeals),
		collection.NewUpdate("42", map[string]any{"stage": "Closed"}))
	require.NoError(t, err)
	stage, _ := record.Str("stage")
	assert.Equal(t, "Closed", stage)
}

func TestMutate_DeleteEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/admin/firm-deals/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	record, err := client.Mutate(context.Background(),
		collection.MustSpec(collection.FirmDeals), collection.NewDelete("7"))
	require.NoError(t, err)
	assert.Equal(t, "7", record.ID())
}

func TestMutate_UnsupportedOpFailsFast(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Mutate(context.Background(),
		collection.MustSpec(collection.FirmParameters), collection.NewDelete("1"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotImplemented))
	assert.False(t, called, "unsupported ops must not hit the network")
}

func TestMutate_InvalidMutation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid mutations must not hit the network")
	})

	_, err := client.Mutate(context.Background(),
		collection.MustSpec(collection.FirmDeals),
		collection.NewUpdate("", map[string]any{"stage": "Closed"}))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestKindOf_DefaultsToServer(t *testing.T) {
	assert.Equal(t, KindServer, KindOf(assert.AnError))
}
