package discovery

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func overpassResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestOverpassSearch(t *testing.T) {
	client := NewOverpassClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost {
			t.Errorf("method = %s", req.Method)
		}
		if req.Header.Get("Content-Type") != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", req.Header.Get("Content-Type"))
		}
		if req.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent")
		}

		raw, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		decoded, err := url.QueryUnescape(strings.TrimPrefix(string(raw), "data="))
		if err != nil {
			t.Fatalf("unescaping body: %v", err)
		}
		if !strings.Contains(decoded, "[out:json]") {
			t.Errorf("missing output directive in %q", decoded)
		}
		if !strings.Contains(decoded, `node(around:5000,-23.550000,-46.630000)["amenity"="restaurant"];`) {
			t.Errorf("missing node filter in %q", decoded)
		}
		if !strings.Contains(decoded, `["shop"="bakery"]`) {
			t.Errorf("missing second filter in %q", decoded)
		}

		return overpassResponse(`{"elements":[
			{"id":1,"lat":-23.55,"lon":-46.63,"tags":{"name":"Padaria Silva","shop":"bakery"}},
			{"id":2,"lat":-23.551,"lon":-46.631,"tags":{"amenity":"restaurant"}}
		]}`), nil
	}), "")

	places, err := client.Search(context.Background(), -23.55, -46.63, 5000, []string{"amenity=restaurant", "shop=bakery", "malformed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
	if places[0].Name() != "Padaria Silva" {
		t.Fatalf("name = %q", places[0].Name())
	}
	if places[1].Name() != "" {
		t.Fatalf("expected unnamed place, got %q", places[1].Name())
	}
}

func TestOverpassSearchErrors(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		client := NewOverpassClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("gateway timeout")
		}), "")
		if _, err := client.Search(context.Background(), 0, 0, 1000, []string{"amenity=cafe"}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		client := NewOverpassClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusTooManyRequests, Body: io.NopCloser(strings.NewReader(""))}, nil
		}), "")
		if _, err := client.Search(context.Background(), 0, 0, 1000, []string{"amenity=cafe"}); err == nil {
			t.Fatal("expected error for status 429")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		client := NewOverpassClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return overpassResponse("{"), nil
		}), "")
		if _, err := client.Search(context.Background(), 0, 0, 1000, []string{"amenity=cafe"}); err == nil {
			t.Fatal("expected decode error")
		}
	})
}

func TestPlaceName(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want string
	}{
		{name: "name tag wins", tags: map[string]string{"name": "A", "brand:name": "B", "operator": "C"}, want: "A"},
		{name: "brand fallback", tags: map[string]string{"brand:name": "B", "operator": "C"}, want: "B"},
		{name: "operator fallback", tags: map[string]string{"operator": "C"}, want: "C"},
		{name: "whitespace only", tags: map[string]string{"name": "   "}, want: ""},
		{name: "no tags", tags: map[string]string{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Place{Tags: tt.tags}
			if got := p.Name(); got != tt.want {
				t.Fatalf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}
