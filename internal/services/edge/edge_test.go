package edge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInvoke_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate-content" {
			t.Errorf("path = %q, want /generate-content", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["niche"] != "fitness" {
			t.Errorf("niche = %v", body["niche"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"run_id": "r1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	body, err := c.Invoke(context.Background(), FnGenerateContent, map[string]string{"niche": "fitness"}, "token-abc")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if string(body) != `{"run_id": "r1"}` {
		t.Errorf("body = %s", body)
	}
}

func TestInvoke_NoToken(t *testing.T) {
	c := New("http://unused.invalid")
	_, err := c.Invoke(context.Background(), FnGenerateContent, nil, "")
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("err = %v, want ErrNoToken", err)
	}
}

func TestInvoke_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Invoke(context.Background(), FnGenerateContent, nil, "t")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}

// TestInvoke_EmbeddedError covers the second failure tier: the service
// answers 200 OK but carries an error field in the body.
func TestInvoke_EmbeddedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "quota exceeded"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Invoke(context.Background(), FnKnowledgePack, nil, "t")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if want := "quota exceeded"; !strings.Contains(err.Error(), want) {
		t.Errorf("err = %v, want message containing %q", err, want)
	}
}

func TestMissingField(t *testing.T) {
	err := MissingField(FnGenerateContent, "suggested_hooks", []byte(`{}`))
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("err = %v, want ErrMissingField", err)
	}
}
