package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return NewClient(url, 5*time.Second, nil)
}

func TestLoginStoresSessionAndCSRF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/session" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "ana@example.com" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials."}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-1","csrf_token":"csrf-1"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if err := c.Login(context.Background(), "ana@example.com", "hunter22"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if c.token != "tok-1" || c.csrf != "csrf-1" {
		t.Errorf("tokens not stored: token=%q csrf=%q", c.token, c.csrf)
	}
}

func TestLoginRejectedCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials."}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).Login(context.Background(), "x@example.com", "nope")
	var rej *RejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rej.RejectionMessage() != "Invalid credentials." {
		t.Errorf("unexpected message: %q", rej.RejectionMessage())
	}
}

func TestVerifyDocumentPasswordSendsCSRFHeader(t *testing.T) {
	var gotCSRF, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCSRF = r.Header.Get("X-CSRF-TOKEN")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	c.csrf = "csrf-99"
	if err := c.VerifyDocumentPassword(context.Background(), "/api/documents/7/verify", "s3cret"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if gotCSRF != "csrf-99" {
		t.Errorf("csrf header not attached, got %q", gotCSRF)
	}
	if !strings.Contains(gotBody, `"password":"s3cret"`) {
		t.Errorf("password not in payload: %s", gotBody)
	}
}

func TestVerifyDocumentPasswordRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Incorrect password. Please try again."}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).VerifyDocumentPassword(context.Background(), "/v", "wrong")
	var rej *RejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rej.Status != http.StatusUnprocessableEntity {
		t.Errorf("unexpected status: %d", rej.Status)
	}
	if rej.RejectionMessage() != "Incorrect password. Please try again." {
		t.Errorf("unexpected message: %q", rej.RejectionMessage())
	}
}

func TestVerifyDocumentPasswordTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	err := newTestClient(server.URL).VerifyDocumentPassword(context.Background(), "/v", "pw")
	if err == nil {
		t.Fatal("expected transport error")
	}
	var rej *RejectedError
	if errors.As(err, &rej) {
		t.Fatalf("transport failure must not be a RejectedError: %v", err)
	}
}

func TestListDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"documents":[
			{"id":"1","name":"insurance.pdf","requires_password":true,
			 "verify_url":"/api/documents/1/verify","download_url":"/api/documents/1/download"},
			{"id":"2","name":"warranty.pdf","requires_password":false,
			 "download_url":"/api/documents/2/download"}
		]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	c.token = "tok-1"
	docs, err := c.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if !docs[0].RequiresPassword || docs[1].RequiresPassword {
		t.Error("requires_password flags not decoded correctly")
	}
}

func TestDownloadDocumentUsesContentDisposition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="tax-2025.pdf"`)
		_, _ = w.Write([]byte("pdf-bytes"))
	}))
	defer server.Close()

	dest := t.TempDir()
	path, err := newTestClient(server.URL).DownloadDocument(context.Background(), "/api/documents/1/download", dest)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if filepath.Base(path) != "tax-2025.pdf" {
		t.Errorf("filename not taken from Content-Disposition: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != "pdf-bytes" {
		t.Errorf("unexpected file content: %q", data)
	}
}

func TestDownloadDocumentFallsBackToURLName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer server.Close()

	path, err := newTestClient(server.URL).DownloadDocument(context.Background(), "/files/deed.pdf", t.TempDir())
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if filepath.Base(path) != "deed.pdf" {
		t.Errorf("expected url-derived name, got %s", path)
	}
}

func TestDeleteDocument(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := newTestClient(server.URL).DeleteDocument(context.Background(), "42"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if method != http.MethodDelete || path != "/api/documents/42" {
		t.Errorf("unexpected request: %s %s", method, path)
	}
}

func TestResolveKeepsAbsoluteURLs(t *testing.T) {
	c := newTestClient("https://hearth.example.com")
	abs := "https://cdn.example.com/files/a.pdf"
	if got := c.resolve(abs); got != abs {
		t.Errorf("absolute url rewritten: %s", got)
	}
	if got := c.resolve("/api/documents"); got != "https://hearth.example.com/api/documents" {
		t.Errorf("relative url not resolved: %s", got)
	}
}
