package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileBackgrounds(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes only unreferenced objects", func(t *testing.T) {
		certRepo := &mockCertificateRepo{
			listBackgroundRefsFunc: func(ctx context.Context) ([]string, error) {
				// Duplicates and legacy path prefixes both occur in the data.
				return []string{"a.png", "a.png", "certificados/b.png"}, nil
			},
		}
		var deleted []string
		blobs := &mockBlobStore{
			listAllFunc: func(ctx context.Context) ([]string, error) {
				return []string{"a.png", "b.png", "orphan-1.png", "old/orphan-2.png"}, nil
			},
			deleteFunc: func(ctx context.Context, storedPath string) error {
				deleted = append(deleted, storedPath)
				return nil
			},
		}
		svc := NewCleanupService(certRepo, blobs)

		count, err := svc.ReconcileBackgrounds(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, []string{"orphan-1.png", "old/orphan-2.png"}, deleted)
	})

	t.Run("a failed delete is skipped, not fatal", func(t *testing.T) {
		blobs := &mockBlobStore{
			listAllFunc: func(ctx context.Context) ([]string, error) {
				return []string{"orphan-1.png", "orphan-2.png"}, nil
			},
			deleteFunc: func(ctx context.Context, storedPath string) error {
				if storedPath == "orphan-1.png" {
					return assert.AnError
				}
				return nil
			},
		}
		svc := NewCleanupService(&mockCertificateRepo{}, blobs)

		count, err := svc.ReconcileBackgrounds(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("listing failures abort the pass", func(t *testing.T) {
		certRepo := &mockCertificateRepo{
			listBackgroundRefsFunc: func(ctx context.Context) ([]string, error) {
				return nil, assert.AnError
			},
		}
		svc := NewCleanupService(certRepo, &mockBlobStore{})

		_, err := svc.ReconcileBackgrounds(ctx)
		assert.Error(t, err)

		blobs := &mockBlobStore{
			listAllFunc: func(ctx context.Context) ([]string, error) { return nil, assert.AnError },
			deleteFunc: func(ctx context.Context, storedPath string) error {
				t.Fatal("nothing may be deleted when the listing failed")
				return nil
			},
		}
		svc = NewCleanupService(&mockCertificateRepo{}, blobs)

		_, err = svc.ReconcileBackgrounds(ctx)
		assert.Error(t, err)
	})
}
