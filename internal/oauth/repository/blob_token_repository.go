// Package repository implements token record persistence on a blob store.
package repository

import (
	"context"
	"encoding/json"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	oauthDomain "github.com/lovelifenow/admin-api/internal/oauth/domain"
)

// BlobTokenRepository stores the single OAuth token record as one JSON object
// in a gocloud blob bucket. Every save replaces the whole record.
type BlobTokenRepository struct {
	bucket *blob.Bucket
}

// NewBlobTokenRepository creates a repository backed by the given bucket.
func NewBlobTokenRepository(bucket *blob.Bucket) *BlobTokenRepository {
	return &BlobTokenRepository{bucket: bucket}
}

// Get loads the persisted token record. Returns ErrNotAuthorized when no
// record has ever been written.
func (r *BlobTokenRepository) Get(ctx context.Context) (*oauthDomain.TokenRecord, error) {
	data, err := r.bucket.ReadAll(ctx, oauthDomain.BlobKey)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, oauthDomain.ErrNotAuthorized
		}
		return nil, apperrors.Wrap(err, "failed to read token record")
	}

	var record oauthDomain.TokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode token record")
	}

	return &record, nil
}

// Save replaces the persisted token record.
func (r *BlobTokenRepository) Save(ctx context.Context, record *oauthDomain.TokenRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode token record")
	}

	if err := r.bucket.WriteAll(ctx, oauthDomain.BlobKey, data, nil); err != nil {
		return apperrors.Wrap(err, "failed to write token record")
	}

	return nil
}
