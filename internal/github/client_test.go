package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(zap.NewNop(), "test-token")
	client.APIURL = server.URL

	return client, server
}

func TestGetUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		if got := r.Header.Get("Accept"); got != acceptHeader {
			t.Fatalf("unexpected accept header: %q", got)
		}
		w.Write([]byte(`{"login":"octocat","name":"The Octocat","public_repos":8,"followers":100}`))
	})

	user, err := client.GetUser(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Login != "octocat" || user.Name != "The Octocat" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if user.PublicRepos != 8 {
		t.Fatalf("expected 8 public repos, got %d", user.PublicRepos)
	}
}

func TestGetUserNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetUser(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUserRateLimited(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.GetUser(context.Background(), "octocat")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestListRepos(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/repos" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("sort"); got != "pushed" {
			t.Fatalf("unexpected sort param: %q", got)
		}
		w.Write([]byte(`[{"name":"hello","language":"Go","stargazers_count":3},{"name":"fork","fork":true}]`))
	})

	repos, err := client.ListRepos(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repos) != 2 {
		t.Fatalf("expected 2 repos, got %d", len(repos))
	}

	if repos[0].Name != "hello" || repos[0].Language != "Go" || repos[0].Stars != 3 {
		t.Fatalf("unexpected repo: %+v", repos[0])
	}

	if !repos[1].Fork {
		t.Fatalf("expected second repo to be a fork")
	}
}

func TestGetUserBadStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetUser(context.Background(), "octocat")
	if err == nil {
		t.Fatal("expected error for bad status")
	}
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrRateLimited) {
		t.Fatalf("unexpected sentinel error: %v", err)
	}
}
