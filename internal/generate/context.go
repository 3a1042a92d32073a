package generate

import (
	"strings"

	"github.com/goliatone/go-sitebuilder/internal/website"
)

// BusinessContext is the slice of website data the prompt builder needs.
// Keeping it a plain record instead of passing the aggregate keeps the
// generator decoupled from persistence types.
type BusinessContext struct {
	BusinessName string
	Industry     string
	Phone        string
	Email        string
	City         string
	State        string
	Services     []string
	Locations    []string
}

// ContextFromWebsite projects the aggregate into a BusinessContext.
func ContextFromWebsite(record *website.Website) BusinessContext {
	if record == nil {
		return BusinessContext{}
	}
	ctx := BusinessContext{
		BusinessName: record.BusinessName,
		Industry:     record.Industry,
		Phone:        record.Phone,
		Email:        record.Email,
	}
	city, state := splitCityState(record.Address)
	ctx.City = city
	ctx.State = state
	for _, svc := range record.Services {
		ctx.Services = append(ctx.Services, svc.Name)
	}
	for _, loc := range record.Locations {
		ctx.Locations = append(ctx.Locations, loc.Name)
	}
	return ctx
}

// splitCityState pulls the trailing "City, ST" pair out of a free-form
// address. Best effort; either side may come back empty.
func splitCityState(address string) (string, string) {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return "", ""
	}
	state := strings.TrimSpace(parts[len(parts)-1])
	city := strings.TrimSpace(parts[len(parts)-2])
	if fields := strings.Fields(state); len(fields) > 0 {
		state = fields[0]
	}
	return city, state
}
