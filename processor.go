package swagger

import (
	"path"
	"strings"
)

// Processor applies one enrichment pass to a loaded resource listing.
// Passes run in order after parsing and before Resource construction.
type Processor interface {
	Apply(doc *ResourceListing) error
}

// DefaultProcessors returns the passes the client itself contributes:
// websocket marking and resource-name derivation.
func DefaultProcessors() []Processor {
	return []Processor{WebsocketProcessor{}, ClientProcessor{}}
}

// WebsocketProcessor marks operations whose upgrade field requests a
// websocket as websocket-only.
type WebsocketProcessor struct{}

func (WebsocketProcessor) Apply(doc *ResourceListing) error {
	for _, entry := range doc.APIs {
		if entry.Declaration == nil {
			continue
		}
		for _, pe := range entry.Declaration.APIs {
			for _, op := range pe.Operations {
				if op.Upgrade == "websocket" {
					op.IsWebsocket = true
				}
			}
		}
	}
	return nil
}

// ClientProcessor derives each listing entry's Name from the filename stem
// of its declaration path, extension stripped: "/foo/Bar.json" names the
// resource "Bar".
type ClientProcessor struct{}

func (ClientProcessor) Apply(doc *ResourceListing) error {
	for _, entry := range doc.APIs {
		entry.Name = nameFromPath(entry.Path)
	}
	return nil
}

func nameFromPath(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
