package mapdata

import (
	"context"
	"fmt"

	"github.com/jalrakshak/jalrakshak-go/internal/session"
)

const regionQueryTemplate = "What is the groundwater status in %s?"

// Asker is the conversation entry point the bridge feeds into.
type Asker interface {
	Ask(ctx context.Context, query string) (session.Message, error)
}

// Bridge turns a selected map region into a synthesized query routed through
// the normal ask path, so map-originated and typed queries are
// indistinguishable once in history.
type Bridge struct {
	asker Asker
}

// NewBridge creates a bridge feeding the given asker.
func NewBridge(asker Asker) *Bridge {
	return &Bridge{asker: asker}
}

// RegionSelected submits the synthesized query for the clicked region and
// returns the resulting agent message.
func (b *Bridge) RegionSelected(ctx context.Context, region string) (session.Message, error) {
	return b.asker.Ask(ctx, fmt.Sprintf(regionQueryTemplate, region))
}
