package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/appointment-booking/internal/config"
	"github.com/BruksfildServices01/appointment-booking/internal/httperr"
)

const (
	MaxUploadBytes = 5 << 20
	maxWidth       = 1024
	webpQuality    = 80
)

// Folders group objects by what they illustrate.
const (
	FolderLogos     = "logos"
	FolderServices  = "services"
	FolderEmployees = "employees"
)

type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Images transcodes uploads to WebP and stores them in an S3 bucket.
type Images struct {
	client    putter
	bucket    string
	publicURL string
}

// NewImages returns nil when no bucket is configured.
func NewImages(cfg *config.Config) *Images {
	if !cfg.StorageEnabled() {
		return nil
	}

	opts := s3.Options{
		Region: cfg.S3Region,
	}
	if cfg.S3AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		)
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	publicURL := strings.TrimRight(cfg.S3PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &Images{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: publicURL,
	}
}

// Upload decodes a JPEG, PNG or WebP image, shrinks it to at most 1024px
// wide, re-encodes it as WebP and returns its public URL.
func (s *Images) Upload(ctx context.Context, folder string, r io.Reader) (string, error) {
	if s == nil {
		return "", httperr.ErrBusiness("storage_disabled")
	}

	src, _, err := image.Decode(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return "", httperr.ErrValidation("invalid_image")
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resize(src, maxWidth), &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := objectKey(folder)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(buf.Bytes()),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", httperr.Upstream("put object", err)
	}

	return s.publicURL + "/" + key, nil
}

func objectKey(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "misc"
	}
	return folder + "/" + uuid.NewString() + ".webp"
}

func resize(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() <= width {
		return src
	}

	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
