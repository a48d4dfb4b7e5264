package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"cofre/internal/common"
	"cofre/internal/server/config"
)

// Seams for testing the AWS SDK calls without a live backend.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	listObjectsV2 = func(c *s3.Client, ctx context.Context, in *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
		return c.ListObjectsV2(ctx, in)
	}
)

// S3Store implements ObjectStore against any S3-compatible backend
// (MinIO in the deployments that use it), with presigned GET URLs standing
// in for the signing endpoint. Selected with STORAGE_DRIVER=s3.
type S3Store struct {
	cfg *config.Config
}

func NewS3Store(cfg *config.Config) *S3Store {
	return &S3Store{cfg: cfg}
}

func (s *S3Store) client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.S3RootUser,
			s.cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// SignURL issues a presigned GET for the referenced object with the
// configured expiry window.
func (s *S3Store) SignURL(ctx context.Context, ref string) (string, error) {
	name := bareName(ref)
	if name == "" {
		return "", common.ErrEmptyRef
	}

	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(name),
	}, s3.WithPresignExpires(s.cfg.SignedURLTTL))
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrSigningFailed, err)
	}

	return req.URL, nil
}

// Upload stores the raw bytes under name with the given content type.
func (s *S3Store) Upload(ctx context.Context, name string, contentType string, body io.Reader) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(name),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := putObject(client, ctx, in); err != nil {
		return fmt.Errorf("%w: %w", common.ErrUploadFailed, err)
	}
	return nil
}

// List returns the objects in the attachment bucket.
func (s *S3Store) List(ctx context.Context) ([]Object, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := listObjectsV2(client, ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrListFailed, err)
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, c := range out.Contents {
		objects = append(objects, Object{Name: aws.ToString(c.Key)})
	}
	return objects, nil
}
