package exportcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const exportSiteMessageType = "sitebuilder.export.build"

// ResultCallback receives the archive produced by an export. The callback is
// optional and invoked synchronously from the handler.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of an export command.
type ResultEnvelope struct {
	Archive  []byte
	Metadata map[string]any
}

// ExportSiteCommand builds the static archive for one website.
type ExportSiteCommand struct {
	WebsiteID      uuid.UUID      `json:"website_id"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (ExportSiteCommand) Type() string { return exportSiteMessageType }

// Validate ensures the target website is identified.
func (m ExportSiteCommand) Validate() error {
	errs := validation.Errors{}
	if m.WebsiteID == uuid.Nil {
		errs["website_id"] = validation.NewError("sitebuilder.export.website_id_required", "website_id must be a valid identifier")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
