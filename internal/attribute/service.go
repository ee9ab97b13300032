package attribute

import (
	"context"
	"strings"

	"quanan/internal/apperr"
	"quanan/internal/identifier"
)

// Normalizer resolves free-form attribute names to identity-stable rows.
// Unseen names are created lazily; seen names are pure reads.
type Normalizer struct {
	repo Repository
}

func NewNormalizer(repo Repository) *Normalizer {
	return &Normalizer{repo: repo}
}

// --------------------------------------------------
// Tags & types (get-or-create by name)
// --------------------------------------------------
func (n *Normalizer) ResolveNames(
	ctx context.Context,
	names []string,
	kind Kind,
) ([]NamedAttribute, error) {

	resolved := make([]NamedAttribute, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		// The id is allocated up front; the upsert discards it when the
		// name already exists, so a few probe calls are wasted on reuse.
		id, err := identifier.Allocate(
			ctx,
			kind.Prefix(),
			identifier.ProberFunc(n.repo.AttributeIDExists),
		)
		if err != nil {
			return nil, err
		}

		row, err := n.repo.UpsertAttribute(ctx, &NamedAttribute{
			ID:   id,
			Kind: kind,
			Name: name,
		})
		if err != nil {
			return nil, apperr.Internal(err)
		}

		resolved = append(resolved, *row)
	}

	if len(resolved) != len(names) {
		return nil, apperr.BadRequest("one or more %s could not be resolved", kind.Label())
	}

	return resolved, nil
}

// --------------------------------------------------
// Additives (get-or-create by title, stored price wins)
// --------------------------------------------------
func (n *Normalizer) ResolveAdditives(
	ctx context.Context,
	inputs []AdditiveInput,
) ([]Additive, error) {

	resolved := make([]Additive, 0, len(inputs))

	for _, input := range inputs {
		title := strings.TrimSpace(input.Title)
		if title == "" {
			continue
		}

		existing, err := n.repo.FindAdditiveByTitle(ctx, title)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if existing != nil {
			// First writer wins: the resubmitted price is ignored.
			resolved = append(resolved, *existing)
			continue
		}

		id, err := identifier.Allocate(
			ctx,
			identifier.PrefixAdditive,
			identifier.ProberFunc(n.repo.AdditiveIDExists),
		)
		if err != nil {
			return nil, err
		}

		created := &Additive{ID: id, Title: title, Price: input.Price}
		if err := n.repo.CreateAdditive(ctx, created); err != nil {
			if apperr.IsUniqueViolation(err) {
				// Lost the create race on title; adopt the winner's row.
				winner, lookupErr := n.repo.FindAdditiveByTitle(ctx, title)
				if lookupErr != nil {
					return nil, apperr.Internal(lookupErr)
				}
				if winner != nil {
					resolved = append(resolved, *winner)
					continue
				}
			}
			return nil, apperr.Internal(err)
		}

		resolved = append(resolved, *created)
	}

	if len(resolved) != len(inputs) {
		return nil, apperr.BadRequest("one or more additives could not be resolved")
	}

	return resolved, nil
}
