package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

var testLogger = zerolog.New(os.Stderr).Level(zerolog.Disabled)

type countingGeocoder struct {
	calls int
	coord *Coord
	err   error
}

func (g *countingGeocoder) Geocode(ctx context.Context, city, province string) (*Coord, error) {
	g.calls++
	return g.coord, g.err
}

func TestResolve_ReferenceTableWinsOverStatic(t *testing.T) {
	ref := map[Key]Coord{
		NormalizeKey("Bandung", "Jawa Barat"): {-6.9, 107.6},
	}
	r := NewResolver(ref, nil, testLogger)

	c, ok := r.Resolve(context.Background(), "Bandung", "Jawa Barat")
	if !ok {
		t.Fatal("expected a hit")
	}
	if c.Lat != -6.9 || c.Lon != 107.6 {
		t.Errorf("expected reference table coordinate, got %+v", c)
	}
}

func TestResolve_StaticDictionaryWithoutNetworkCall(t *testing.T) {
	online := &countingGeocoder{coord: &Coord{1, 1}}
	r := NewResolver(nil, online, testLogger)

	c, ok := r.Resolve(context.Background(), "  BANDUNG ", "Jawa Barat")
	if !ok {
		t.Fatal("expected a hit from the static dictionary")
	}
	if c.Lat != -6.9147 || c.Lon != 107.6098 {
		t.Errorf("expected Bandung coordinates, got %+v", c)
	}
	if online.calls != 0 {
		t.Errorf("static hit must not reach the online tier, got %d calls", online.calls)
	}
}

func TestResolve_UnknownPairOfflineIsMiss(t *testing.T) {
	r := NewResolver(nil, nil, testLogger)
	if _, ok := r.Resolve(context.Background(), "Atlantis", "Nowhere"); ok {
		t.Error("expected a miss for an unknown pair with online geocoding disabled")
	}
}

func TestResolve_OnlineFallbackAndMemoization(t *testing.T) {
	online := &countingGeocoder{coord: &Coord{Lat: -1.5, Lon: 120.0}}
	r := NewResolver(nil, online, testLogger)

	c, ok := r.Resolve(context.Background(), "Poso", "Sulawesi Tengah")
	if !ok || c.Lat != -1.5 {
		t.Fatalf("expected online result, got %+v ok=%v", c, ok)
	}

	// Second resolve of the same normalized pair must be served from cache.
	r.Resolve(context.Background(), " poso ", "SULAWESI TENGAH")
	if online.calls != 1 {
		t.Errorf("expected 1 online call, got %d", online.calls)
	}
}

func TestResolve_OnlineErrorIsMissAndMemoized(t *testing.T) {
	online := &countingGeocoder{err: context.DeadlineExceeded}
	r := NewResolver(nil, online, testLogger)

	if _, ok := r.Resolve(context.Background(), "Atlantis", "Nowhere"); ok {
		t.Error("expected a miss when the online tier errors")
	}
	r.Resolve(context.Background(), "Atlantis", "Nowhere")
	if online.calls != 1 {
		t.Errorf("misses must be memoized too, got %d calls", online.calls)
	}
}

func TestNominatimClient_FirstCandidateOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Poso, Sulawesi Tengah, Indonesia" {
			t.Errorf("unexpected query %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("unexpected limit %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]string{
			{"lat": "-1.3953", "lon": "120.7525"},
			{"lat": "99", "lon": "99"},
		})
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL)
	coord, err := c.Geocode(context.Background(), "Poso", "Sulawesi Tengah")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coord == nil || coord.Lat != -1.3953 || coord.Lon != 120.7525 {
		t.Errorf("expected first candidate, got %+v", coord)
	}
}

func TestNominatimClient_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL)
	coord, err := c.Geocode(context.Background(), "Atlantis", "Nowhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coord != nil {
		t.Errorf("expected no candidate, got %+v", coord)
	}
}

func TestNominatimClient_MalformedLatLon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"0"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL)
	if _, err := c.Geocode(context.Background(), "X", "Y"); err == nil {
		t.Error("expected parse error for malformed latitude")
	}
}
