package cmd

import (
	"testing"

	"github.com/hearthhq/hearth/internal/api"
)

func TestPickDocumentByName(t *testing.T) {
	docs := []api.Document{
		{ID: "1", Name: "Tax scan 2025"},
		{ID: "2", Name: "Insurance policy"},
	}

	doc, err := pickDocument(docs, []string{"insurance policy"})
	if err != nil {
		t.Fatalf("pickDocument: %v", err)
	}
	if doc.ID != "2" {
		t.Errorf("picked %q, want the insurance policy", doc.Name)
	}
}

func TestPickDocumentUnknownName(t *testing.T) {
	docs := []api.Document{{ID: "1", Name: "Tax scan 2025"}}

	if _, err := pickDocument(docs, []string{"passport"}); err == nil {
		t.Error("expected an error for an unknown document name")
	}
}
