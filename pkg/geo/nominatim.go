package geo

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Place is one geocoding hit.
type Place struct {
	City    string
	Country string
	Alpha2  string
}

// Display renders the place as "City, Country".
func (p Place) Display() string {
	return p.City + ", " + p.Country
}

// Geocoder resolves a city name to candidate places. An empty
// countryCode searches globally.
type Geocoder interface {
	Search(ctx context.Context, city, countryCode string, limit int) ([]Place, error)
}

// NominatimClient implements Geocoder against a Nominatim-compatible
// endpoint.
type NominatimClient struct {
	client *resty.Client
}

func NewNominatimClient(baseURL string, timeout time.Duration) *NominatimClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "talentscout-screening/1.0")
	return &NominatimClient{client: client}
}

func (n *NominatimClient) Search(ctx context.Context, city, countryCode string, limit int) ([]Place, error) {
	req := n.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":               city,
			"format":          "jsonv2",
			"addressdetails":  "1",
			"accept-language": "en",
			"limit":           strconv.Itoa(limit),
		})
	if countryCode != "" {
		req.SetQueryParam("countrycodes", strings.ToLower(countryCode))
	}

	resp, err := req.Get("/search")
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode())
	}

	var places []Place
	gjson.Parse(resp.String()).ForEach(func(_, item gjson.Result) bool {
		addr := item.Get("address")
		place := Place{
			City:    firstNonEmpty(addr.Get("city").String(), addr.Get("town").String(), addr.Get("village").String()),
			Country: addr.Get("country").String(),
			Alpha2:  strings.ToUpper(addr.Get("country_code").String()),
		}
		if place.City == "" {
			// Fall back to the leading segment of the display name.
			display := item.Get("display_name").String()
			if idx := strings.Index(display, ","); idx > 0 {
				place.City = strings.TrimSpace(display[:idx])
			}
		}
		places = append(places, place)
		return true
	})
	return places, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
