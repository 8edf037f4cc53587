package feed

import (
	"context"

	"scpod/model"
)

// Assembler annotates a fetched track list with resolved timestamps, one
// item per track, preserving input order.
type Assembler struct {
	resolver *Resolver
}

func NewAssembler(resolver *Resolver) *Assembler {
	return &Assembler{resolver: resolver}
}

// Assemble resolves each track independently; there is no cross-track
// coupling, so re-running with the same inputs and an unchanged store
// yields the same output.
func (a *Assembler) Assemble(ctx context.Context, fc model.FeedContext, tracks []model.Track) []model.Item {
	items := make([]model.Item, 0, len(tracks))
	for _, track := range tracks {
		items = append(items, model.Item{
			Track:              track,
			EffectiveTimestamp: a.resolver.Resolve(ctx, fc, track),
		})
	}
	return items
}
