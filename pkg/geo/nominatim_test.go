package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-screening-backend/pkg/geo"
)

func TestNominatimSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("Should query with Nominatim parameters and parse hits", func(t *testing.T) {
		var gotQuery url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"display_name": "Berlin, Deutschland", "address": {"city": "Berlin", "country": "Germany", "country_code": "de"}},
				{"display_name": "Kleinstadt, Deutschland", "address": {"town": "Kleinstadt", "country": "Germany", "country_code": "de"}}
			]`))
		}))
		defer srv.Close()

		client := geo.NewNominatimClient(srv.URL, 2*time.Second)
		places, err := client.Search(ctx, "Berlin", "DE", 2)
		assert.NoError(t, err)
		assert.Len(t, places, 2)
		assert.Equal(t, geo.Place{City: "Berlin", Country: "Germany", Alpha2: "DE"}, places[0])
		assert.Equal(t, "Kleinstadt", places[1].City)

		assert.Equal(t, "Berlin", gotQuery.Get("q"))
		assert.Equal(t, "jsonv2", gotQuery.Get("format"))
		assert.Equal(t, "1", gotQuery.Get("addressdetails"))
		assert.Equal(t, "en", gotQuery.Get("accept-language"))
		assert.Equal(t, "2", gotQuery.Get("limit"))
		assert.Equal(t, "de", gotQuery.Get("countrycodes"))
	})

	t.Run("Should omit countrycodes for global probes", func(t *testing.T) {
		var gotQuery url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		client := geo.NewNominatimClient(srv.URL, 2*time.Second)
		places, err := client.Search(ctx, "London", "", 5)
		assert.NoError(t, err)
		assert.Empty(t, places)
		assert.False(t, gotQuery.Has("countrycodes"))
	})

	t.Run("Should fall back to the display name when address has no city", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"display_name": "Altstadt, Berlin, Germany", "address": {"country": "Germany", "country_code": "de"}}]`))
		}))
		defer srv.Close()

		client := geo.NewNominatimClient(srv.URL, 2*time.Second)
		places, err := client.Search(ctx, "Altstadt", "DE", 1)
		assert.NoError(t, err)
		assert.Len(t, places, 1)
		assert.Equal(t, "Altstadt", places[0].City)
	})

	t.Run("Should surface non-200 responses as errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := geo.NewNominatimClient(srv.URL, 2*time.Second)
		_, err := client.Search(ctx, "Berlin", "DE", 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	})
}
