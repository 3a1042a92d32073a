package exportcmd_test

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/commands/exportcmd"
	"github.com/goliatone/go-sitebuilder/internal/website"
)

func TestExportSiteCommandValidate(t *testing.T) {
	if err := (exportcmd.ExportSiteCommand{}).Validate(); err == nil {
		t.Fatal("nil website id must fail validation")
	}
	if err := (exportcmd.ExportSiteCommand{WebsiteID: uuid.New()}).Validate(); err != nil {
		t.Fatalf("valid command rejected: %v", err)
	}
}

func TestExportSiteHandlerBuildsArchive(t *testing.T) {
	manager := website.NewManager(website.NewMemoryRepository())
	record, err := manager.Create(context.Background(), website.CreateWebsiteRequest{
		BusinessName: "Acme Plumbing",
		SeedPages:    true,
	})
	if err != nil {
		t.Fatalf("create website: %v", err)
	}

	var envelope exportcmd.ResultEnvelope
	handler := exportcmd.NewExportSiteHandler(manager, nil, nil)
	err = handler.Execute(context.Background(), exportcmd.ExportSiteCommand{
		WebsiteID: record.ID,
		ResultCallback: func(result exportcmd.ResultEnvelope) {
			envelope = result
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(envelope.Archive) == 0 {
		t.Fatal("callback must receive the archive")
	}
	if _, err := zip.NewReader(bytes.NewReader(envelope.Archive), int64(len(envelope.Archive))); err != nil {
		t.Fatalf("callback payload is not a zip: %v", err)
	}
	if envelope.Metadata["operation"] != "export_site" {
		t.Fatalf("unexpected metadata %v", envelope.Metadata)
	}
}

func TestExportSiteHandlerUnknownWebsite(t *testing.T) {
	manager := website.NewManager(website.NewMemoryRepository())
	handler := exportcmd.NewExportSiteHandler(manager, nil, nil)
	err := handler.Execute(context.Background(), exportcmd.ExportSiteCommand{WebsiteID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for unknown website")
	}
}

func TestExportSiteHandlerRejectsInvalidMessage(t *testing.T) {
	manager := website.NewManager(website.NewMemoryRepository())
	handler := exportcmd.NewExportSiteHandler(manager, nil, nil)
	if err := handler.Execute(context.Background(), exportcmd.ExportSiteCommand{}); err == nil {
		t.Fatal("invalid message must fail before execution")
	}
}
