package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	appConfig "github.com/shoppy-store/shoppy-api/config"
	"github.com/shoppy-store/shoppy-api/utils"
)

// S3ImageStore implements ImageStore on an S3 bucket, keyed "<dir>/<filename>".
// Selected with IMAGE_STORAGE=s3; the same "_copy" collision cascade applies,
// with HeadObject as the existence check.
type S3ImageStore struct {
	client *s3.Client
	bucket string
}

// NewS3ImageStore builds an S3-backed image store from the app configuration
func NewS3ImageStore() (*S3ImageStore, error) {
	cfg := appConfig.GetConfig()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3ImageStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AWSS3Bucket,
	}, nil
}

// Save uploads the bytes under dir, renaming with the "_copy" cascade until
// the key is free
func (s *S3ImageStore) Save(dir, filename string, r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	for {
		exists, err := s.Exists(dir, filename)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		filename = utils.CopyName(filename)
	}

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(dir + "/" + filename),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(utils.ContentTypeFor(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return filename, nil
}

// Delete removes the object; S3 delete is idempotent so a missing key is fine
func (s *S3ImageStore) Delete(dir, filename string) error {
	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(dir + "/" + filename),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// Exists checks the key with HeadObject
func (s *S3ImageStore) Exists(dir, filename string) (bool, error) {
	_, err := s.client.HeadObject(context.TODO(), &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(dir + "/" + filename),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check S3 object: %w", err)
	}
	return true, nil
}
