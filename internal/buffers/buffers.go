// Package buffers orchestrates locator resolution against live editor
// buffers: fetch one snapshot, resolve, act.
package buffers

import (
	"context"

	"github.com/tliron/commonlog"

	"github.com/dannyob/mcp-servers/internal/org"
	"github.com/dannyob/mcp-servers/internal/textloc"
)

// Provider supplies buffer text and applies edits. The external editor owns
// and serializes buffer state; implementations issue read and write
// requests against it and hold no lock across calls.
type Provider interface {
	// Read returns a fresh snapshot of the buffer's text.
	Read(ctx context.Context, buffer string) (string, error)
	// Apply splices a single edit into the buffer. Edit offsets are byte
	// offsets into the snapshot the edit was planned against.
	Apply(ctx context.Context, buffer string, edit textloc.Edit) error
}

// Service implements the buffer operations. It is stateless between calls:
// every operation re-fetches a snapshot and resolves its locators against
// that snapshot alone, so there is nothing to go stale. A caller chaining
// two operations is exposed to concurrent external edits between them; at
// interactive call volumes that trade-off buys a much simpler core.
type Service struct {
	provider Provider
	log      commonlog.Logger
}

func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
		log:      commonlog.GetLogger("buffers"),
	}
}

// GetRegion returns the text between start and end. Read-only.
func (s *Service) GetRegion(ctx context.Context, buffer string, start, end textloc.Locator) (string, error) {
	text, err := s.provider.Read(ctx, buffer)
	if err != nil {
		return "", err
	}
	region, err := textloc.Extract(text, start, end)
	if err != nil {
		return "", err
	}
	s.log.Debugf("get region %s..%s of %q: %d bytes", start, end, buffer, len(region))
	return region, nil
}

// InsertAt splices text at the point addressed by loc. The edit is planned
// in full before anything is written: a resolution failure leaves the
// buffer untouched.
func (s *Service) InsertAt(ctx context.Context, buffer string, loc textloc.Locator, text string, after bool) error {
	snapshot, err := s.provider.Read(ctx, buffer)
	if err != nil {
		return err
	}
	edit, err := textloc.PlanInsert(snapshot, loc, text, after)
	if err != nil {
		return err
	}
	s.log.Infof("insert %d bytes at %d in %q", len(text), edit.Offset, buffer)
	return s.provider.Apply(ctx, buffer, edit)
}

// ReplaceRegion replaces the single occurrence of old within the region
// bounded by start and end with new. Both locators resolve against the same
// snapshot the occurrence check runs on, and the mutation is one splice:
// no error path leaves the buffer half-edited.
func (s *Service) ReplaceRegion(ctx context.Context, buffer string, start, end textloc.Locator, old, new string) error {
	snapshot, err := s.provider.Read(ctx, buffer)
	if err != nil {
		return err
	}
	edit, err := textloc.PlanReplace(snapshot, start, end, old, new)
	if err != nil {
		return err
	}
	s.log.Infof("replace %d bytes at %d in %q", edit.DeleteLen, edit.Offset, buffer)
	return s.provider.Apply(ctx, buffer, edit)
}

// Properties returns the org metadata attached to the named heading.
func (s *Service) Properties(ctx context.Context, buffer, heading string) (map[string]string, error) {
	text, err := s.provider.Read(ctx, buffer)
	if err != nil {
		return nil, err
	}
	return org.Properties(text, heading)
}
