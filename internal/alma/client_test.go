package alma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient points a client at a local test server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "secret-key"})
}

func TestClient_AuthHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))

	if _, err := client.GetPOLine(context.Background(), "123"); err != nil {
		t.Fatalf("GetPOLine failed: %v", err)
	}

	if gotAuth != "apikey secret-key" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "apikey secret-key")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept header = %q, want application/json", gotAccept)
	}
}

func TestClient_BasePath(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))

	if _, err := client.GetPOLine(context.Background(), "123"); err != nil {
		t.Fatalf("GetPOLine failed: %v", err)
	}
	if gotPath != "/almaws/v1/acq/po-lines/123" {
		t.Errorf("request path = %q, want /almaws/v1/acq/po-lines/123", gotPath)
	}
}

func TestCanAccess(t *testing.T) {
	t.Run("200 means accessible", func(t *testing.T) {
		var gotLimit string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			w.Write([]byte(`{}`))
		}))

		if !client.CanAccess(context.Background(), PathSets) {
			t.Error("CanAccess returned false for a 200 response")
		}
		if gotLimit != "1" {
			t.Errorf("probe limit = %q, want 1", gotLimit)
		}
	})

	t.Run("non-200 means inaccessible", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
		}))

		if client.CanAccess(context.Background(), PathPOLines) {
			t.Error("CanAccess returned true for a 401 response")
		}
	})
}

func TestAPIError(t *testing.T) {
	err := &APIError{Status: 400, Path: PathPOLines + "/1", Body: `{"errorList":{}}`}
	msg := err.Error()
	if msg == "" {
		t.Fatal("empty error message")
	}
	// Long bodies get truncated so per-record output stays readable.
	long := &APIError{Status: 500, Path: "/x", Body: string(make([]byte, 500))}
	if len(long.Error()) > 300 {
		t.Errorf("error message not truncated: %d chars", len(long.Error()))
	}
}
