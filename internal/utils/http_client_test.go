package utils

import (
	"net/http"
	"testing"
	"time"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient(time.Second)

	if client == nil || client.Client == nil {
		t.Fatal("expected non-nil *HTTPClient with embedded resty client")
	}
	if client.GetClient().Timeout != time.Second {
		t.Errorf("expected timeout 1s, got %s", client.GetClient().Timeout)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient(0)
	client2 := NewHTTPClient(0)

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}

func TestNewHTTPClientWith_UsesGivenClient(t *testing.T) {
	hc := &http.Client{}
	client := NewHTTPClientWith(hc, 0)

	if client.GetClient() != hc {
		t.Fatal("expected the wrapped *http.Client to be used")
	}
	if client.Header.Get("Accept") != "application/json" {
		t.Errorf("expected JSON accept header, got %q", client.Header.Get("Accept"))
	}
}
