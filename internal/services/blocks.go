package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/domain/blocks"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
)

// BlockUpdate replaces a block's data and, when set, its personalization.
type BlockUpdate struct {
	Data            json.RawMessage         `json:"data"`
	Personalization *blocks.Personalization `json:"personalization,omitempty"`
}

func (s *contentService) blockList(ctx context.Context, id uuid.UUID) (*types.ContentRecord, *blocks.List, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	var bs []blocks.Block
	if rec.HasBlocks() {
		bs, err = blocks.ParseList(rec.ContentBlocks)
		if err != nil {
			s.log.Warn("stored blocks partially undecodable", "content_id", id.String(), "error", err)
		}
	}
	return rec, blocks.NewList(bs), nil
}

// saveBlocks persists the list; last write wins.
func (s *contentService) saveBlocks(ctx context.Context, rec *types.ContentRecord, l *blocks.List) error {
	encoded, err := encodeBlocks(l.Blocks())
	if err != nil {
		return err
	}
	if err := s.contentRepo.UpdateFields(dbctx.Of(ctx), rec.ID, map[string]interface{}{
		"content_blocks": encoded,
		"updated_at":     s.now().UTC(),
	}); err != nil {
		return err
	}
	rec.ContentBlocks = encoded
	s.pages.InvalidateAll(ctx)
	return nil
}

func (s *contentService) ListBlocks(ctx context.Context, id uuid.UUID) ([]blocks.Block, error) {
	_, l, err := s.blockList(ctx, id)
	if err != nil {
		return nil, err
	}
	return l.Blocks(), nil
}

func (s *contentService) AddBlock(ctx context.Context, id uuid.UUID, t blocks.Type) (blocks.Block, error) {
	if !t.Known() {
		return blocks.Block{}, fmt.Errorf("%w: %w", perrors.ErrInvalidArgument, blocks.ErrUnknownType)
	}
	rec, l, err := s.blockList(ctx, id)
	if err != nil {
		return blocks.Block{}, err
	}
	b, err := l.Add(t)
	if err != nil {
		return blocks.Block{}, err
	}
	if err := s.saveBlocks(ctx, rec, l); err != nil {
		return blocks.Block{}, err
	}
	return b, nil
}

func (s *contentService) UpdateBlock(ctx context.Context, id uuid.UUID, blockID string, in BlockUpdate) (blocks.Block, error) {
	rec, l, err := s.blockList(ctx, id)
	if err != nil {
		return blocks.Block{}, err
	}
	cur, ok := l.Get(blockID)
	if !ok {
		return blocks.Block{}, fmt.Errorf("%w: %w", perrors.ErrNotFound, blocks.ErrBlockNotFound)
	}
	if len(in.Data) > 0 {
		data, err := blocks.DecodeData(cur.Type, in.Data)
		if err != nil {
			return blocks.Block{}, fmt.Errorf("%w: %v", perrors.ErrInvalidArgument, err)
		}
		if err := l.Update(blockID, data); err != nil {
			return blocks.Block{}, fmt.Errorf("%w: %v", perrors.ErrInvalidArgument, err)
		}
	}
	if in.Personalization != nil {
		if err := l.SetPersonalization(blockID, in.Personalization); err != nil {
			return blocks.Block{}, err
		}
	}
	if err := s.saveBlocks(ctx, rec, l); err != nil {
		return blocks.Block{}, err
	}
	updated, _ := l.Get(blockID)
	return updated, nil
}

func (s *contentService) DeleteBlock(ctx context.Context, id uuid.UUID, blockID string) error {
	rec, l, err := s.blockList(ctx, id)
	if err != nil {
		return err
	}
	if err := l.Delete(blockID); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrNotFound, err)
	}
	return s.saveBlocks(ctx, rec, l)
}

func (s *contentService) MoveBlock(ctx context.Context, id uuid.UUID, blockID string, direction string) ([]blocks.Block, error) {
	rec, l, err := s.blockList(ctx, id)
	if err != nil {
		return nil, err
	}
	i := l.IndexOf(blockID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %w", perrors.ErrNotFound, blocks.ErrBlockNotFound)
	}
	switch direction {
	case "up":
		err = l.MoveUp(i)
	case "down":
		err = l.MoveDown(i)
	default:
		return nil, fmt.Errorf("%w: direction must be up or down", perrors.ErrInvalidArgument)
	}
	if err != nil {
		return nil, err
	}
	if err := s.saveBlocks(ctx, rec, l); err != nil {
		return nil, err
	}
	return l.Blocks(), nil
}
