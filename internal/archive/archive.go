// Package archive keeps a JSON snapshot of every itinerary entry in an
// S3-compatible bucket (MinIO, AWS S3). Snapshots are written when an entry
// is created and removed when it is deleted.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pkordes/tripplanner/internal/config"
	"github.com/pkordes/tripplanner/internal/domain"
)

// objectStore is the subset of *minio.Client the archive uses.
type objectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
}

// Archive stores itinerary snapshots in a bucket.
type Archive struct {
	store  objectStore
	bucket string
}

// New connects to the object store described by cfg.
func New(cfg config.Archive) (*Archive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("archive.New: create client: %w", err)
	}
	return newArchive(client, cfg.Bucket), nil
}

func newArchive(store objectStore, bucket string) *Archive {
	return &Archive{store: store, bucket: bucket}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.store.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("archive.Archive.EnsureBucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.store.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("archive.Archive.EnsureBucket: make %q: %w", a.bucket, err)
	}
	return nil
}

// ObjectKey returns the key an entry's snapshot is stored under.
func ObjectKey(id uuid.UUID) string {
	return fmt.Sprintf("itineraries/%s.json", id)
}

// ItineraryCreated writes the entry's snapshot, replacing any previous one.
func (a *Archive) ItineraryCreated(ctx context.Context, e domain.ItineraryEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("archive.Archive.ItineraryCreated: marshal: %w", err)
	}
	_, err = a.store.PutObject(ctx, a.bucket, ObjectKey(e.ID),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("archive.Archive.ItineraryCreated: put: %w", err)
	}
	return nil
}

// ItineraryDeleted removes the entry's snapshot. Removing a missing snapshot
// is not an error.
func (a *Archive) ItineraryDeleted(ctx context.Context, id uuid.UUID) error {
	if err := a.store.RemoveObject(ctx, a.bucket, ObjectKey(id), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("archive.Archive.ItineraryDeleted: %w", err)
	}
	return nil
}
