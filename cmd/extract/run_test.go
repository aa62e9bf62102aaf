package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invoice.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRunPrintsTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"invoices":[{"serialNumber":"INV-7","customerName":"Ada"}]}}`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	xlsx := filepath.Join(t.TempDir(), "out.xlsx")
	err := run(context.Background(), &out, writeInput(t), &options{endpoint: srv.URL, xlsx: xlsx})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	s := out.String()
	for _, want := range []string{"Invoices (1)", "INV-7", "No products data available", "No customers data available"} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected %q in output:\n%s", want, s)
		}
	}
	if info, err := os.Stat(xlsx); err != nil || info.Size() == 0 {
		t.Fatalf("expected workbook to be written: %v", err)
	}
}

func TestRunSingleTab(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"customers":[{"customerName":"Ada","phoneNumber":"555"}]}}`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	if err := run(context.Background(), &out, writeInput(t), &options{endpoint: srv.URL, tab: "customers"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if s := out.String(); !strings.Contains(s, "Customers (1)") || strings.Contains(s, "invoices") {
		t.Fatalf("unexpected output:\n%s", s)
	}
}

func TestRunFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := run(context.Background(), io.Discard, writeInput(t), &options{endpoint: srv.URL})
	if err == nil || err.Error() != "File upload failed" {
		t.Fatalf("expected generic failure, got %v", err)
	}
}

func TestRunRejectsUnknownTab(t *testing.T) {
	if err := run(context.Background(), io.Discard, "unused", &options{tab: "orders"}); err == nil {
		t.Fatal("expected error for unknown tab")
	}
}
