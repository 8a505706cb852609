package service

import (
	"context"
	"path"

	"certificates-backend/internal/domains/certificate"
	"certificates-backend/internal/infrastructure/storage"

	"github.com/rs/zerolog/log"
)

// CleanupService removes background images no certificate references
// anymore, the garbage edits and deletions leave behind in blob storage.
type CleanupService struct {
	certRepo certificate.Repository
	blobs    storage.BlobStore
}

func NewCleanupService(certRepo certificate.Repository, blobs storage.BlobStore) *CleanupService {
	return &CleanupService{certRepo: certRepo, blobs: blobs}
}

// ReconcileBackgrounds deletes every stored background whose file name no
// certificate references, and returns how many were removed. References are
// compared by base name: stored references may carry path prefixes from
// earlier storage layouts, the file name is the stable part.
//
// The listing and the deletes are not transactional with imports; imports
// upload the background before inserting rows, so the worst case for a
// concurrent run is keeping an orphan until the next pass.
func (s *CleanupService) ReconcileBackgrounds(ctx context.Context) (int, error) {
	refs, err := s.certRepo.ListBackgroundRefs(ctx)
	if err != nil {
		return 0, err
	}
	used := make(map[string]bool, len(refs))
	for _, ref := range refs {
		used[path.Base(ref)] = true
	}

	present, err := s.blobs.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, stored := range present {
		if used[path.Base(stored)] {
			continue
		}
		if err := s.blobs.Delete(ctx, stored); err != nil {
			log.Error().Err(err).Str("object", stored).Msg("failed to delete orphaned background")
			continue
		}
		deleted++
	}

	log.Info().
		Int("present", len(present)).
		Int("referenced", len(used)).
		Int("deleted", deleted).
		Msg("background reconciliation finished")

	return deleted, nil
}
