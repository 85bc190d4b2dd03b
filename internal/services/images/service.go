package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bakeshop/internal/logger"
)

// BlobFailure is an image storage problem reported to the client with its
// own message instead of the generic database error.
type BlobFailure struct {
	Msg string
}

func (e *BlobFailure) Error() string {
	return e.Msg
}

// DocumentStore is the slice of the document store the image routes use.
type DocumentStore interface {
	Find(ctx context.Context, collection string, filter map[string]interface{}, exclude ...string) ([]json.RawMessage, error)
	FindByID(ctx context.Context, collection, id string) (json.RawMessage, error)
	SetField(ctx context.Context, collection, id, field string, value interface{}) error
	UnsetField(ctx context.Context, collection, id, field string) error
}

// BlobStore covers the S3 operations behind image upload and deletion.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	Exists(ctx context.Context, key string) error
	Delete(ctx context.Context, key string) error
}

// extensions maps sniffed content types onto stored key extensions.
var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Service attaches images to content documents and removes them again.
type Service struct {
	store  DocumentStore
	blobs  BlobStore
	logger *logger.Logger
	now    func() time.Time
}

func NewService(store DocumentStore, blobs BlobStore, log *logger.Logger) *Service {
	return &Service{store: store, blobs: blobs, logger: log, now: time.Now}
}

// Upload sniffs the file's content type, stores it under the collection's
// prefix and records the key on the document, then returns the refreshed
// listing.
func (s *Service) Upload(ctx context.Context, collection, id string, data []byte) ([]json.RawMessage, error) {
	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return nil, &BlobFailure{Msg: "There was an issue uploading the file"}
	}

	key := fmt.Sprintf("%s/%d.%s", collection, s.now().UnixMilli(), ext)
	if err := s.blobs.Upload(ctx, key, contentType, data); err != nil {
		s.logger.Error("image_upload_failed", "Failed to upload image", "", err, map[string]interface{}{
			"collection": collection,
			"key":        key,
		})
		return nil, &BlobFailure{Msg: "There was an issue uploading the file"}
	}

	if err := s.store.SetField(ctx, collection, id, "imageKey", key); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, collection, nil)
}

// Delete removes a document's image from storage and clears the key, then
// returns the refreshed listing. The object is verified before deletion so
// a dangling key surfaces as "File not found".
func (s *Service) Delete(ctx context.Context, collection, id string) ([]json.RawMessage, error) {
	raw, err := s.store.FindByID(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	item := map[string]interface{}{}
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}

	key, ok := item["imageKey"].(string)
	if !ok || key == "" {
		return nil, &BlobFailure{Msg: "Item doesn't contain Image"}
	}
	if err := s.blobs.Exists(ctx, key); err != nil {
		return nil, &BlobFailure{Msg: "File not found"}
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		return nil, &BlobFailure{Msg: "There was an issue deleting the file"}
	}

	if err := s.store.UnsetField(ctx, collection, id, "imageKey"); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, collection, nil)
}
