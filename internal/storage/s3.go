package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3 struct {
	Client        *s3.Client
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3{
		Client:        s3.NewFromConfig(awsCfg),
		Bucket:        cfg.Bucket,
		Prefix:        strings.Trim(cfg.Prefix, "/"),
		PublicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// objectKey places key under the configured prefix.
func (s *S3) objectKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + key
}

func (s *S3) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	key := in.Key
	if key == "" {
		key = uuid.NewString() + strings.ToLower(filepath.Ext(in.Filename))
	}
	key, err := cleanKey(key)
	if err != nil {
		return PutResult{}, err
	}

	obj := s.objectKey(key)
	input := &s3.PutObjectInput{
		Bucket: &s.Bucket,
		Key:    &obj,
		Body:   r,
	}
	if in.ContentType != "" {
		input.ContentType = &in.ContentType
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return PutResult{}, fmt.Errorf("put s3://%s/%s: %w", s.Bucket, obj, err)
	}
	return PutResult{Key: key, URL: s.URL(key)}, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	obj := s.objectKey(key)
	_, err = s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.Bucket,
		Key:    &obj,
	})
	return err
}

func (s *S3) URL(key string) string { return joinURL(s.PublicBaseURL, s.objectKey(key)) }

func (s *S3) String() string { return fmt.Sprintf("s3(%s/%s)", s.Bucket, s.Prefix) }
