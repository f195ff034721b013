package oracle

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures the remote corpus object. Works against any
// S3-compatible store (MinIO in development).
type S3Options struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Key          string
	Region       string
	BaseEndpoint string
}

// s3GetObjectAPI is a seam for testing S3Source without a live endpoint.
type s3GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source fetches the corpus from an object store at startup.
type S3Source struct {
	opts   S3Options
	client s3GetObjectAPI
}

// NewS3Source builds a source for the configured corpus object. The client
// is created lazily on first Open, so constructing a source with incomplete
// options is harmless as long as a later source can serve the corpus.
func NewS3Source(opts S3Options) *S3Source {
	return &S3Source{opts: opts}
}

func (s *S3Source) Name() string { return "s3://" + s.opts.Bucket + "/" + s.opts.Key }

func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.client == nil {
		cfg, err := config.LoadDefaultConfig(ctx,
			config.WithRegion(s.opts.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				s.opts.RootUser,
				s.opts.RootPassword,
				"",
			)))
		if err != nil {
			return nil, err
		}
		s.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			if s.opts.BaseEndpoint != "" {
				o.BaseEndpoint = aws.String(s.opts.BaseEndpoint)
			}
			o.UsePathStyle = true
		})
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(s.opts.Key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
