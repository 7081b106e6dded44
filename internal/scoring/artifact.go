package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
)

const s3Scheme = "s3://"

// Artifact is the persisted model file produced by the training job.
type Artifact struct {
	Version string              `json:"version"`
	Models  map[string]Logistic `json:"models"`
}

var artifactLabels = []string{"win", "spread", "total"}

// ParseArtifact decodes and checks that every label has a usable model.
func ParseArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	var errs []error
	for _, label := range artifactLabels {
		m, ok := a.Models[label]
		if !ok {
			errs = append(errs, fmt.Errorf("missing %q model", label))
			continue
		}
		if len(m.Coef) != 2 {
			errs = append(errs, fmt.Errorf("%q model: want 2 coefficients, got %d", label, len(m.Coef)))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *Artifact) Scorer(features FeatureFunc) *Scorer {
	return New(a.Models["win"], a.Models["spread"], a.Models["total"], features)
}

// ReadArtifact reads a local file or an s3://bucket/key object.
func ReadArtifact(ctx context.Context, location string, s3cfg config.S3Config) ([]byte, error) {
	if location == "" {
		return nil, errors.New("model artifact location is empty")
	}
	if !strings.HasPrefix(location, s3Scheme) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read model artifact: %w", err)
		}
		return data, nil
	}

	bucket, key, err := splitS3(location)
	if err != nil {
		return nil, err
	}
	client, err := newS3Client(ctx, s3cfg)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", location, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return data, nil
}

func splitS3(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %q (want s3://bucket/key)", location)
	}
	return bucket, key, nil
}

func newS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	// Без ключей используется стандартная цепочка AWS (env, profile, IAM role).
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	return s3.NewFromConfig(awsCfg, s3Opts...), nil
}
