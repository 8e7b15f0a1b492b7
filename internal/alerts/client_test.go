package alerts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPayloadShapes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		body    string
		shape   Shape
		region  int
		want    bool
		wantErr bool
	}{
		{
			name:   "states shape filters by region",
			body:   `{"states":[{"id":11,"alert":true},{"id":12,"alert":false}]}`,
			shape:  ShapeStates,
			region: 12,
			want:   false,
		},
		{
			name:   "states shape region active",
			body:   `{"states":[{"id":12,"alert":true}]}`,
			shape:  ShapeStates,
			region: 12,
			want:   true,
		},
		{
			name:    "states shape region missing",
			body:    `{"states":[{"id":3,"alert":true}]}`,
			shape:   ShapeStates,
			region:  12,
			wantErr: true,
		},
		{
			name:  "single shape",
			body:  `{"alert":true}`,
			shape: ShapeSingle,
			want:  true,
		},
		{
			name:    "single shape missing field",
			body:    `{"other":1}`,
			shape:   ShapeSingle,
			wantErr: true,
		},
		{
			name:   "sniff prefers states",
			body:   `{"states":[{"id":12,"alert":true}],"alert":false}`,
			shape:  ShapeSniff,
			region: 12,
			want:   true,
		},
		{
			name:  "sniff falls back to single",
			body:  `{"alert":true}`,
			shape: ShapeSniff,
			want:  true,
		},
		{
			name:    "sniff unrecognized payload",
			body:    `{"foo":"bar"}`,
			shape:   ShapeSniff,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"states":`,
			shape:   ShapeStates,
			region:  12,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := feedServer(t, http.StatusOK, tt.body)
			c := NewClient(ClientConfig{URL: srv.URL, RegionID: tt.region, Shape: tt.shape, Timeout: 2 * time.Second})

			got, err := c.Fetch(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Fetch() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Fetch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchSoftFailures(t *testing.T) {
	t.Parallel()

	t.Run("non-200 status", func(t *testing.T) {
		t.Parallel()
		srv := feedServer(t, http.StatusBadGateway, `{"alert":true}`)
		c := NewClient(ClientConfig{URL: srv.URL, Timeout: 2 * time.Second})
		if _, err := c.Fetch(context.Background()); err == nil {
			t.Fatal("expected error for non-200 response")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		srv := feedServer(t, http.StatusOK, "  \n")
		c := NewClient(ClientConfig{URL: srv.URL, Timeout: 2 * time.Second})
		if _, err := c.Fetch(context.Background()); err == nil {
			t.Fatal("expected error for empty body")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		srv := feedServer(t, http.StatusOK, `{"alert":true}`)
		c := NewClient(ClientConfig{URL: srv.URL, Timeout: 2 * time.Second})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := c.Fetch(ctx); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}
