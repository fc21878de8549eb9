package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHttpRequest(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" || r.Header.Get("X-Task") != "7" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	body, err := HttpRequest(http.MethodPost, server.URL, map[string]string{"X-Task": "7"}, map[string]int{"task_id": 7})
	if err != nil {
		t.Fatalf("HttpRequest: %v", err)
	}
	if string(body) != `{"ok":true}` || received["task_id"] != float64(7) {
		t.Fatalf("body %s, received %v", body, received)
	}
}

func TestHttpRequestStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("down"))
	}))
	defer server.Close()

	body, err := HttpRequest(http.MethodGet, server.URL, nil, nil)
	if err == nil || string(body) != "down" {
		t.Fatalf("body %q, err %v", body, err)
	}
}
