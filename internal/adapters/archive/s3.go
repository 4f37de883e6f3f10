package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stencilkit/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

// S3Store keeps archives in an S3-compatible object store, one object per
// archive name. Credentials come from the environment, never from config.
type S3Store struct {
	client *minio.Client
	bucket string
}

// NewS3Store connects to the configured endpoint. The bucket must already
// exist; stencil does not manage bucket lifecycle.
func NewS3Store(cfg domain.S3Settings, accessKey, secretKey string) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, zerr.New("s3 endpoint is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, zerr.New("s3 bucket is required")
	}
	if accessKey == "" || secretKey == "" {
		return nil, zerr.New("s3 access key and secret key are required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create s3 client")
	}
	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Pack archives the given directory and uploads the result under name.
func (s *S3Store) Pack(ctx context.Context, dir, name string) error {
	paths, err := collectFiles(dir)
	if err != nil {
		return zerr.With(
			zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error()),
			"directory", dir,
		)
	}

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addFile(tw, dir, p); err != nil {
			return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
		}
	}
	if err := tw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
	}
	if err := gw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error())
	}

	_, err = s.client.PutObject(ctx, s.bucket, name, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/gzip",
	})
	if err != nil {
		return zerr.With(
			zerr.Wrap(err, domain.ErrArchiveCreateFailed.Error()),
			"archive", name,
		)
	}
	return nil
}

// Fetch retrieves the bytes of the named archive.
func (s *S3Store) Fetch(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, domain.Tag(domain.ErrArchiveNotFound, "archive", name)
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return data, nil
}
