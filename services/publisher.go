package services

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/dimafomin/chef-site-backend/errs"
	"github.com/dimafomin/chef-site-backend/metrics"
)

const uploadConcurrency = 4

// ObjectPutter is the part of the S3 client the publisher needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads exported artifacts to an S3 bucket.
type Publisher struct {
	exporter *Exporter
	client   ObjectPutter
	bucket   string
	prefix   string
	metrics  *metrics.Recorder
	logger   zerolog.Logger
}

func NewPublisher(exporter *Exporter, client ObjectPutter, bucket, prefix string, m *metrics.Recorder) *Publisher {
	return &Publisher{
		exporter: exporter,
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		metrics:  m,
		logger:   log.With().Str("component", "publisher").Str("bucket", bucket).Logger(),
	}
}

// NewS3Client builds an S3 client from the default AWS credential chain.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errs.NewConfigSourceError("aws", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Publish exports the site and uploads every artifact.
func (p *Publisher) Publish(ctx context.Context) error {
	artifacts, err := p.exporter.Build(ctx)
	if err != nil {
		p.metrics.IncPublish(false)
		return errs.NewPublishError("export", err)
	}
	if err := p.Upload(ctx, artifacts); err != nil {
		p.metrics.IncPublish(false)
		return err
	}
	p.metrics.IncPublish(true)
	p.logger.Info().Int("files", len(artifacts)).Msg("site published")
	return nil
}

// Upload puts artifacts into the bucket, a few at a time. The first failure
// cancels the remaining uploads.
func (p *Publisher) Upload(ctx context.Context, artifacts []Artifact) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for _, a := range artifacts {
		g.Go(func() error {
			key := path.Join(p.prefix, a.Path)
			_, err := p.client.PutObject(gctx, &s3.PutObjectInput{
				Bucket:      aws.String(p.bucket),
				Key:         aws.String(key),
				Body:        bytes.NewReader(a.Body),
				ContentType: aws.String(a.ContentType),
			})
			if err != nil {
				return errs.NewPublishError("s3://"+p.bucket+"/"+key, err)
			}
			p.logger.Debug().Str("key", key).Msg("uploaded")
			return nil
		})
	}
	return g.Wait()
}
