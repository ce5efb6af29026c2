// Package sceneapi exposes stored scenes over HTTP: CRUD plus import and
// export in the scene file format.
package sceneapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/thurbridi/rudolph/internal/store"
	"github.com/thurbridi/rudolph/internal/typeid"
	"github.com/thurbridi/rudolph/internal/wavefront"
)

var (
	ErrNotFound   = errors.New("scene not found")
	ErrForbidden  = errors.New("forbidden")
	ErrNoSnapshot = errors.New("scene has no snapshot")
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// SceneInfo is the API view of a stored scene.
type SceneInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerID     string `json:"ownerId"`
	Version     int32  `json:"version"`
	ObjectCount int    `json:"objectCount"`
	HasWindow   bool   `json:"hasWindow"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*SceneInfo, error) {
	rec := store.SceneRecord{
		ID:      typeid.NewSceneID(),
		Name:    name,
		OwnerID: ownerID,
	}
	if err := s.store.CreateScene(ctx, rec); err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}

	stored, err := s.store.GetScene(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("read back scene: %w", err)
	}
	return recordToInfo(stored)
}

func (s *Service) Get(ctx context.Context, sceneID, userID string) (*SceneInfo, error) {
	rec, err := s.owned(ctx, sceneID, userID)
	if err != nil {
		return nil, err
	}
	return recordToInfo(rec)
}

func (s *Service) List(ctx context.Context, userID string) ([]SceneInfo, error) {
	recs, err := s.store.ListScenesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}

	infos := make([]SceneInfo, 0, len(recs))
	for i := range recs {
		info, err := recordToInfo(&recs[i])
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

func (s *Service) Delete(ctx context.Context, sceneID, userID string) error {
	if _, err := s.owned(ctx, sceneID, userID); err != nil {
		return err
	}
	if err := s.store.DeleteScene(ctx, sceneID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete scene: %w", err)
	}
	return nil
}

// Import replaces a scene's document with file contents, validating them
// through the codec first so a malformed file never lands in the store.
func (s *Service) Import(ctx context.Context, sceneID, userID, contents string) (*SceneInfo, error) {
	if _, err := s.owned(ctx, sceneID, userID); err != nil {
		return nil, err
	}

	decoded, err := wavefront.Decode(contents)
	if err != nil {
		return nil, err
	}

	// Store the canonical encoding, not the raw upload.
	if err := s.store.UpdateSceneDocument(ctx, sceneID, wavefront.Encode(decoded)); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	rec, err := s.store.GetScene(ctx, sceneID)
	if err != nil {
		return nil, fmt.Errorf("read back scene: %w", err)
	}
	return recordToInfo(rec)
}

// Restore rolls the scene document back to its latest saved snapshot,
// discarding edits made since the editor hub last persisted the room.
func (s *Service) Restore(ctx context.Context, sceneID, userID string) (*SceneInfo, error) {
	if _, err := s.owned(ctx, sceneID, userID); err != nil {
		return nil, err
	}

	document, _, err := s.store.GetLatestSnapshot(ctx, sceneID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	if err := s.store.UpdateSceneDocument(ctx, sceneID, document); err != nil {
		return nil, fmt.Errorf("restore document: %w", err)
	}

	rec, err := s.store.GetScene(ctx, sceneID)
	if err != nil {
		return nil, fmt.Errorf("read back scene: %w", err)
	}
	return recordToInfo(rec)
}

// Export returns the scene's document in the scene file format.
func (s *Service) Export(ctx context.Context, sceneID, userID string) (string, error) {
	rec, err := s.owned(ctx, sceneID, userID)
	if err != nil {
		return "", err
	}
	return rec.Document, nil
}

func (s *Service) owned(ctx context.Context, sceneID, userID string) (*store.SceneRecord, error) {
	rec, err := s.store.GetScene(ctx, sceneID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get scene: %w", err)
	}
	if rec.OwnerID != userID {
		return nil, ErrForbidden
	}
	return rec, nil
}

func recordToInfo(rec *store.SceneRecord) (*SceneInfo, error) {
	decoded, err := wavefront.Decode(rec.Document)
	if err != nil {
		return nil, fmt.Errorf("stored document is corrupt: %w", err)
	}

	return &SceneInfo{
		ID:          rec.ID,
		Name:        rec.Name,
		OwnerID:     rec.OwnerID,
		Version:     rec.Version,
		ObjectCount: len(decoded.Objects),
		HasWindow:   decoded.Window != nil,
		CreatedAt:   rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   rec.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}
