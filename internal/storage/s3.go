// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides an S3-compatible object storage backend that
// keeps each persisted value as one JSON object. It wraps the AWS SDK v2
// and is configured for path-style access (required by CEPH/Hetzner/MinIO).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"recipebox/internal/persist"
)

// Client stores values as objects in a single bucket.
type Client struct {
	s3     *s3.Client
	bucket string
	prefix string
}

// New creates an S3 storage client with static credentials and path-style
// addressing. Object keys are "<prefix><key>.json".
func New(endpoint, region, accessKey, secretKey, bucket, prefix string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, errors.New("s3: endpoint, credentials and bucket are required")
	}
	if region == "" {
		region = "us-east-1"
	}

	// Strip trailing slash from endpoint for consistent URL building.
	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
		// S3-compatible stores reject the SDK's default trailing checksums.
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})

	return &Client{s3: s3Client, bucket: bucket, prefix: prefix}, nil
}

// ObjectKey returns the object key that holds key.
func (c *Client) ObjectKey(key string) string {
	return c.prefix + key + ".json"
}

// Bucket returns the name of the bucket.
func (c *Client) Bucket() string {
	return c.bucket
}

// Get downloads the object for key. A missing object yields
// persist.ErrNotFound.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	objectKey := c.ObjectKey(key)
	output, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, persist.ErrNotFound
		}
		return nil, fmt.Errorf("s3 download %s/%s: %w", c.bucket, objectKey, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read body %s/%s: %w", c.bucket, objectKey, err)
	}
	return data, nil
}

// Put uploads value as the object for key, replacing any previous version.
func (c *Client) Put(ctx context.Context, key string, value []byte) error {
	objectKey := c.ObjectKey(key)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(value),
		ContentLength: aws.Int64(int64(len(value))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, objectKey, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
