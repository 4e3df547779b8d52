package aur

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient points a client at a mock AUR server
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithOptions(server.URL, 5*time.Second)
}

func TestNewClient(t *testing.T) {
	client := NewClient()

	if client.BaseURL != DefaultBaseURL {
		t.Errorf("Expected BaseURL %s, got %s", DefaultBaseURL, client.BaseURL)
	}
	if !strings.HasPrefix(client.UserAgent, "aurupd/") {
		t.Errorf("Expected aurupd user agent, got %s", client.UserAgent)
	}
	if client.HTTPClient == nil {
		t.Error("Expected HTTPClient to be set")
	}
}

func TestNewClientWithOptions(t *testing.T) {
	client := NewClientWithOptions("http://localhost:1234/rpc/v5/", 3*time.Second)

	if client.BaseURL != "http://localhost:1234/rpc/v5" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", client.BaseURL)
	}
	if client.HTTPClient.Timeout != 3*time.Second {
		t.Errorf("Expected timeout 3s, got %v", client.HTTPClient.Timeout)
	}
}

func TestSearchBy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/alice" {
			t.Errorf("Expected path /search/alice, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("by") != "maintainer" {
			t.Errorf("Expected by=maintainer, got %s", r.URL.Query().Get("by"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected User-Agent header")
		}
		w.Write([]byte(`{"version":5,"type":"search","resultcount":2,"results":[
			{"Name":"foo","Description":"Foo tool","Version":"1.0-1","Maintainer":"alice","OutOfDate":null},
			{"Name":"bar-git","Description":null,"Version":"r10.abc-1","Maintainer":"alice","OutOfDate":1700000000}
		]}`))
	})

	results, err := client.SearchBy(context.Background(), "alice", FieldMaintainer)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Name != "foo" || results[0].Description != "Foo tool" {
		t.Errorf("Unexpected first result: %+v", results[0])
	}
	if results[0].IsOutOfDate() {
		t.Error("Expected foo not to be flagged out of date")
	}
	if results[1].Description != "" {
		t.Errorf("Expected null description to decode as empty, got %q", results[1].Description)
	}
	if !results[1].IsOutOfDate() {
		t.Error("Expected bar-git to be flagged out of date")
	}
}

func TestSearchByZeroResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":5,"type":"search","resultcount":0,"results":[]}`))
	})

	results, err := client.SearchBy(context.Background(), "nobody", FieldComaintainers)
	if err != nil {
		t.Fatalf("Zero results should not be an error, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestSearchByInvalidField(t *testing.T) {
	client := NewClient()
	_, err := client.SearchBy(context.Background(), "alice", SearchField("name-desc"))
	if !errors.Is(err, ErrInvalidField) {
		t.Errorf("Expected ErrInvalidField, got %v", err)
	}
}

func TestSearchByUserOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("by") {
		case "maintainer":
			w.Write([]byte(`{"type":"search","resultcount":1,"results":[{"Name":"P1","Description":"first"}]}`))
		case "comaintainers":
			w.Write([]byte(`{"type":"search","resultcount":1,"results":[{"Name":"P2","Description":"second"}]}`))
		default:
			t.Errorf("Unexpected by parameter %q", r.URL.Query().Get("by"))
		}
	})

	results, err := client.SearchByUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 2 || results[0].Name != "P1" || results[1].Name != "P2" {
		t.Errorf("Expected [P1 P2], got %+v", results)
	}
}

func TestSearchByUserKeepsDuplicates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"search","resultcount":1,"results":[{"Name":"shared"}]}`))
	})

	results, err := client.SearchByUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected package under both roles to appear twice, got %d", len(results))
	}
}

func TestSearchByUserOnlyComaintainer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("by") == "maintainer" {
			w.Write([]byte(`{"type":"search","resultcount":0,"results":[]}`))
			return
		}
		w.Write([]byte(`{"type":"search","resultcount":1,"results":[{"Name":"co"}]}`))
	})

	results, err := client.SearchByUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "co" {
		t.Errorf("Expected [co], got %+v", results)
	}
}

func TestGetPackage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/info/yay" {
			t.Errorf("Expected path /info/yay, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"type":"multiinfo","resultcount":1,"results":[{"Name":"yay","Description":"Yet another yogurt","Version":"12.3.5-1"}]}`))
	})

	pkg, err := client.GetPackage(context.Background(), "yay")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pkg == nil || pkg.Name != "yay" || pkg.Version != "12.3.5-1" {
		t.Errorf("Unexpected package: %+v", pkg)
	}
}

func TestGetPackageZeroResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"multiinfo","resultcount":0,"results":[]}`))
	})

	pkg, err := client.GetPackage(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("Zero results should not be an error, got %v", err)
	}
	if pkg != nil {
		t.Errorf("Expected nil package, got %+v", pkg)
	}
}

func TestQueryFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "rpc error envelope",
			status:  http.StatusOK,
			body:    `{"version":5,"type":"error","resultcount":0,"results":[],"error":"Query arg too small."}`,
			wantMsg: "Query arg too small.",
		},
		{
			name:    "server error",
			status:  http.StatusServiceUnavailable,
			body:    "maintenance",
			wantMsg: "status 503",
		},
		{
			name:    "malformed json",
			status:  http.StatusOK,
			body:    `{"resultcount":`,
			wantMsg: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.SearchBy(context.Background(), "al", FieldMaintainer)
			if !errors.Is(err, ErrSearch) {
				t.Fatalf("Expected ErrSearch, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error to contain %q, got %q", tt.wantMsg, err.Error())
			}

			_, err = client.GetPackage(context.Background(), "foo")
			if !errors.Is(err, ErrSearch) {
				t.Errorf("GetPackage: expected ErrSearch, got %v", err)
			}
		})
	}
}

func TestSearchByUserPropagatesFailure(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.SearchByUser(context.Background(), "alice")
	if !errors.Is(err, ErrSearch) {
		t.Errorf("Expected ErrSearch, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected no retry and no co-maintainer query after failure, got %d calls", calls)
	}
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClientWithOptions(server.URL, time.Second)
	server.Close()

	_, err := client.GetPackage(context.Background(), "foo")
	if !errors.Is(err, ErrSearch) {
		t.Errorf("Expected ErrSearch, got %v", err)
	}
}

func TestQueryEscaping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/search/a%20b" {
			t.Errorf("Expected escaped path /search/a%%20b, got %s", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"type":"search","resultcount":0,"results":[]}`))
	})

	if _, err := client.SearchBy(context.Background(), "a b", FieldMaintainer); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
