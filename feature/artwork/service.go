package artwork

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"duelbot/core/mdm"
	"duelbot/core/storage"
	"duelbot/feature/catalog"
)

// Service mirrors card artwork into object storage. The first request for
// a card resolves its art URL from the catalog payload, downloads the image
// once and stores it; later requests are served from the bucket.
type Service struct {
	storage storage.Client
	bucket  string
	catalog *catalog.Service
	client  mdm.Client
	logger  *zap.Logger
}

// NewService creates a new artwork service.
func NewService(store storage.Client, bucket string, cat *catalog.Service, client mdm.Client, logger *zap.Logger) *Service {
	return &Service{
		storage: store,
		bucket:  bucket,
		catalog: cat,
		client:  client,
		logger:  logger,
	}
}

// EnsureBucket creates the artwork bucket when it does not exist yet.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.storage.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check artwork bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.storage.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create artwork bucket: %w", err)
	}
	s.logger.Info("Created artwork bucket", zap.String("bucket", s.bucket))
	return nil
}

// Get returns the artwork for a card, mirroring it on first access. The
// card name is resolved through the catalog, so queries tolerate the same
// fuzziness as card lookups.
func (s *Service) Get(ctx context.Context, cardName string) ([]byte, string, error) {
	card, ok := s.catalog.Get(ctx, cardName)
	if !ok {
		if resolved := s.catalog.BestMatch(ctx, cardName); resolved != "" {
			card, ok = s.catalog.Get(ctx, resolved)
		}
		if !ok {
			return nil, "", fmt.Errorf("unknown card %q", cardName)
		}
	}

	objectName := ObjectName(card.Name)
	if data, err := s.fromStorage(ctx, objectName); err == nil {
		return data, card.Name, nil
	}

	data, err := s.mirror(ctx, card, objectName)
	if err != nil {
		return nil, "", err
	}
	return data, card.Name, nil
}

// Exists reports whether artwork for a card is already mirrored.
func (s *Service) Exists(ctx context.Context, cardName string) bool {
	obj, err := s.storage.GetObject(ctx, s.bucket, ObjectName(cardName), minio.GetObjectOptions{})
	if err != nil {
		return false
	}
	defer obj.Close()
	buf := make([]byte, 1)
	_, err = obj.Read(buf)
	return err == nil || err == io.EOF
}

// MirroredCount returns how many artwork objects the bucket holds.
func (s *Service) MirroredCount(ctx context.Context) int {
	count := 0
	for info := range s.storage.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			s.logger.Warn("Artwork listing truncated", zap.Error(info.Err))
			break
		}
		count++
	}
	return count
}

// Remove drops the mirrored artwork for a card, forcing a re-download on
// the next request.
func (s *Service) Remove(ctx context.Context, cardName string) error {
	return s.storage.RemoveObject(ctx, s.bucket, ObjectName(cardName), minio.RemoveObjectOptions{})
}

func (s *Service) fromStorage(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := s.storage.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty object %s", objectName)
	}
	return data, nil
}

func (s *Service) mirror(ctx context.Context, card catalog.Card, objectName string) ([]byte, error) {
	artURL, err := s.artURL(card)
	if err != nil {
		return nil, err
	}

	data, err := s.client.GetBytes(ctx, artURL)
	if err != nil {
		return nil, fmt.Errorf("download artwork for %q: %w", card.Name, err)
	}

	_, err = s.storage.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/webp"})
	if err != nil {
		// Serving the image still works; only the mirror missed.
		s.logger.Warn("Artwork upload failed",
			zap.String("card", card.Name),
			zap.Error(err))
	}
	return data, nil
}

func (s *Service) artURL(card catalog.Card) (string, error) {
	attrs, err := card.Attributes()
	if err != nil {
		return "", fmt.Errorf("decode card payload for %q: %w", card.Name, err)
	}
	urls := attrs.ArtworkURLs()
	if len(urls) == 0 {
		return "", fmt.Errorf("card %q has no artwork", card.Name)
	}
	return urls[0], nil
}

var objectNameRe = regexp.MustCompile(`[^a-z0-9]+`)

// ObjectName maps a card name onto a stable storage key.
func ObjectName(cardName string) string {
	key := objectNameRe.ReplaceAllString(strings.ToLower(cardName), "-")
	return strings.Trim(key, "-") + ".webp"
}
