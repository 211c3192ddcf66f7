package service

import (
	"fmt"

	"pageforge/internal/coerce"
	"pageforge/internal/domain"
)

// ─── Async file reads (last write wins) ─────────────────────

func fileKey(id, prop string) string { return id + "/" + prop }

// BeginFileRead registers a pending file read for a file property and returns
// its token. A later BeginFileRead for the same field supersedes this one.
func (b *Builder) BeginFileRead(id, prop string) (uint64, error) {
	var token uint64
	_, err := b.apply("begin_file_read", func(tx *txn) error {
		i := b.indexLocked(id)
		if i < 0 {
			return tx.fail("Upload Failed", fmt.Errorf("read file for %s: %w", id, ErrComponentNotFound))
		}
		def, ok := b.registry.Lookup(b.components[i].Type)
		if !ok {
			return tx.fail("Upload Failed", fmt.Errorf("read file for %s: %w", id, ErrUnknownComponentType))
		}
		p, ok := def.Property(prop)
		if !ok || p.Type != domain.PropertyTypeFile {
			return tx.fail("Upload Failed", fmt.Errorf("%w: %s.%s", ErrNotFileProperty, def.Type, prop))
		}
		b.fileSeq++
		token = b.fileSeq
		b.fileReads[fileKey(id, prop)] = token
		return nil
	})
	return token, err
}

// CompleteFileRead applies the data-URI produced by the read identified by
// token. A superseded read returns ErrStaleFileRead and changes nothing.
func (b *Builder) CompleteFileRead(token uint64, id, prop, dataURI string) (domain.BuilderState, error) {
	return b.apply("complete_file_read", func(tx *txn) error {
		key := fileKey(id, prop)
		if b.fileReads[key] != token {
			b.log.Debug().Str("component_id", id).Uint64("token", token).Msg("stale file read dropped")
			return ErrStaleFileRead
		}
		delete(b.fileReads, key)

		i := b.indexLocked(id)
		if i < 0 {
			return tx.fail("Upload Failed", fmt.Errorf("apply file to %s: %w", id, ErrComponentNotFound))
		}
		cur := b.components[i]
		def, ok := b.registry.Lookup(cur.Type)
		if !ok {
			return tx.fail("Upload Failed", fmt.Errorf("apply file to %s: %w", id, ErrUnknownComponentType))
		}
		return b.updatePropsLocked(tx, id, coerce.Form(def, map[string]any{prop: dataURI}, cur.Props))
	})
}

// FailFileRead reports a failed read. Only the latest read for a field is
// reported; superseded failures are dropped silently.
func (b *Builder) FailFileRead(token uint64, id, prop string, cause error) (domain.BuilderState, error) {
	return b.apply("fail_file_read", func(tx *txn) error {
		key := fileKey(id, prop)
		if b.fileReads[key] != token {
			return ErrStaleFileRead
		}
		delete(b.fileReads, key)
		return tx.fail("Upload Failed", fmt.Errorf("read file for %s: %w", id, cause))
	})
}
