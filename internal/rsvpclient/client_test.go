package rsvpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

func ivan() rsvp.Submission {
	return rsvp.Submission{
		Name:                "Ivan",
		Phone:               "+7 999 123-45-67",
		Attendance:          rsvp.AttendanceYes,
		GuestsCount:         rsvp.GuestsTwo,
		DietaryRestrictions: rsvp.NewDietarySet(rsvp.DietaryVegetarian),
	}
}

func TestClient_Submit_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"id":1,"message":"Response saved successfully"}`))
	}))
	defer srv.Close()

	err := New(srv.URL).Submit(context.Background(), ivan())

	require.NoError(t, err)
	assert.Equal(t, "Ivan", got["name"])
	assert.Equal(t, "2", got["guestsCount"])
	assert.Equal(t, []any{"vegetarian"}, got["dietaryRestrictions"])
	assert.Equal(t, "", got["otherDietary"])
	assert.Equal(t, "", got["message"])
}

func TestClient_Submit_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"bad request", http.StatusBadRequest, `{"error":"Name, email and attendance are required"}`},
		{"ok without marker", http.StatusOK, `{"id":3}`},
		{"ok with false marker", http.StatusOK, `{"success":false}`},
		{"ok not json", http.StatusOK, `<html>gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := New(srv.URL).Submit(context.Background(), ivan())

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRejected))
		})
	}
}

func TestClient_Submit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url).Submit(context.Background(), ivan())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func TestClient_List_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		if r.Header.Get(AdminKeyHeader) != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		w.Write([]byte(`{"responses":[
			{"id":2,"name":"B","attendance":"no","created_at":"2026-05-02T10:00:00"},
			{"id":1,"name":"A","attendance":"yes","guests_count":2,"dietary_restrictions":["fish"],"created_at":"2026-05-01T10:00:00"}
		]}`))
	}))
	defer srv.Close()

	responses, err := New(srv.URL).List(context.Background(), "secret")

	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Equal(t, int64(2), responses[0].ID)
	assert.Equal(t, 2, responses[1].Guests())
}

func TestClient_List_OddTimestampStillLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responses":[
			{"id":1,"name":"A","attendance":"yes","created_at":"2026-05-01 09:30:15"}
		]}`))
	}))
	defer srv.Close()

	responses, err := New(srv.URL).List(context.Background(), "secret")

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.True(t, responses[0].CreatedAt.IsZero())
	assert.Equal(t, "2026-05-01 09:30:15", responses[0].CreatedAt.Raw)
}

func TestClient_List_EmptyListIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responses":[]}`))
	}))
	defer srv.Close()

	responses, err := New(srv.URL).List(context.Background(), "k")

	require.NoError(t, err)
	assert.Empty(t, responses)
}

func TestClient_List_Denied(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"wrong key", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"ok without list", http.StatusOK, `{"error":"nope"}`},
		{"ok null list", http.StatusOK, `{"responses":null}`},
		{"ok not json", http.StatusOK, `oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).List(context.Background(), "wrong")

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnauthorized))
			assert.False(t, errors.Is(err, ErrUnreachable))
		})
	}
}

func TestClient_List_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, WithHTTPClient(&http.Client{})).List(context.Background(), "k")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreachable))
}
