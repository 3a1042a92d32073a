package exportcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-sitebuilder/internal/commands"
	"github.com/goliatone/go-sitebuilder/internal/export"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/website"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// ErrManagerRequired rejects handlers constructed without a website manager.
var ErrManagerRequired = errors.New("exportcmd: website manager is required")

// ExportSiteHandler loads the aggregate and builds its export archive.
type ExportSiteHandler struct {
	inner *commands.Handler[ExportSiteCommand]
}

// NewExportSiteHandler wires the handler to the manager and packager.
func NewExportSiteHandler(manager website.Manager, packager *export.Packager, logger interfaces.Logger, opts ...commands.HandlerOption[ExportSiteCommand]) *ExportSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}
	if packager == nil {
		packager = export.NewPackager()
	}

	exec := func(ctx context.Context, msg ExportSiteCommand) error {
		if manager == nil {
			return ErrManagerRequired
		}
		record, err := manager.Get(ctx, msg.WebsiteID)
		if err != nil {
			return err
		}
		archive, err := packager.BuildArchive(record)
		if err != nil {
			return err
		}
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Archive: archive,
			Metadata: map[string]any{
				"operation":  "export_site",
				"website_id": msg.WebsiteID,
				"bytes":      len(archive),
			},
		})
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportSiteCommand]{
		commands.WithLogger[ExportSiteCommand](baseLogger),
		commands.WithOperation[ExportSiteCommand]("export.build"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportSiteCommand].
func (h *ExportSiteHandler) Execute(ctx context.Context, msg ExportSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(callback ResultCallback, envelope ResultEnvelope) {
	if callback == nil {
		return
	}
	callback(envelope)
}
