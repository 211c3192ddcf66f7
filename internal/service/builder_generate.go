package service

import (
	"context"
	"fmt"
	"strings"

	"pageforge/internal/domain"
)

// ─── AI text generation ─────────────────────────────────────

// GenerateText runs the generator on the prompt held by an action property's
// source field and writes the result into its target field. The lock is not
// held while the generator runs; the result re-enters through the normal
// update path, so a component deleted meanwhile is reported, not resurrected.
// On failure the prompt and any earlier result are left untouched.
func (b *Builder) GenerateText(ctx context.Context, id, action string) (domain.BuilderState, error) {
	var (
		prompt, target string
		gen            TextGenerator
		key            = id + "/" + action
	)
	state, err := b.apply("generate_text", func(tx *txn) error {
		i := b.indexLocked(id)
		if i < 0 {
			return tx.fail("AI Generation Failed", fmt.Errorf("generate for %s: %w", id, ErrComponentNotFound))
		}
		cur := b.components[i]
		def, ok := b.registry.Lookup(cur.Type)
		if !ok {
			return tx.fail("AI Generation Failed", fmt.Errorf("generate for %s: %w", id, ErrUnknownComponentType))
		}
		p, ok := def.Property(action)
		if !ok || p.Type != domain.PropertyTypeAction {
			return tx.fail("AI Generation Failed", fmt.Errorf("%w: %s.%s", ErrNotActionProperty, def.Type, action))
		}
		prompt, _ = cur.Props[p.PromptSourceField].(string)
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			return tx.fail("AI Generation Failed", ErrEmptyPrompt)
		}
		if b.generator == nil {
			return tx.fail("AI Generation Failed", ErrNoGenerator)
		}
		if err := b.generating.Acquire(key); err != nil {
			return tx.fail("AI Generation Failed", err)
		}
		gen, target = b.generator, p.ActionTargetField
		return nil
	})
	if err != nil {
		return state, err
	}
	defer b.generating.Release(key)

	b.log.Debug().Str("component_id", id).Str("action", action).Msg("generating text")
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		b.log.Error().Err(err).Str("component_id", id).Msg("text generation failed")
		return b.apply("generate_text", func(tx *txn) error {
			return tx.fail("AI Generation Failed", fmt.Errorf("generate for %s: %w", id, err))
		})
	}

	return b.apply("generate_text", func(tx *txn) error {
		if err := b.updatePropsLocked(tx, id, domain.Props{target: strings.TrimSpace(text)}); err != nil {
			return err
		}
		tx.notify("AI Text Generated", "Generated text has been inserted.")
		return nil
	})
}

// WaitGenerations refuses further generations and blocks until the in-flight
// ones finish or ctx ends. Call it once, on shutdown.
func (b *Builder) WaitGenerations(ctx context.Context) {
	b.generating.Drain(ctx)
}
