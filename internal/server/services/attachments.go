package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	sc "github.com/dmitrijs2005/jobkeeper/internal/server/config"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultContentType = "application/octet-stream"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// AttachmentService hands out presigned S3 URLs for job photos and
// documents. Object keys are scoped per user:
//
//	users/<userID>/jobs/<jobID>/<uuid>-<fileName>
type AttachmentService struct {
	config *sc.Config
}

func NewAttachmentService(config *sc.Config) *AttachmentService {
	return &AttachmentService{config: config}
}

func userPrefix(userID string) string {
	return "users/" + userID + "/"
}

// cleanFileName keeps only the last path element and replaces characters
// that are awkward in object keys.
func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20 || r == '?' || r == '#' || r == '%':
			return -1
		}
		return r
	}, name)
}

func storageKey(userID, jobID, fileName string) string {
	return fmt.Sprintf("%sjobs/%s/%s-%s", userPrefix(userID), strings.ReplaceAll(jobID, "/", "_"), uuid.New(), fileName)
}

func (s *AttachmentService) expiry() time.Duration {
	if s.config.PresignExpiry > 0 {
		return s.config.PresignExpiry
	}
	return 15 * time.Minute
}

func (s *AttachmentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// UploadURL returns a fresh object key and a presigned PUT URL for it. The
// upload must use the same content type; empty means application/octet-stream.
func (s *AttachmentService) UploadURL(ctx context.Context, userID, jobID, fileName, contentType string) (string, string, error) {
	jobID, err := normalizeJobID(jobID)
	if err != nil {
		return "", "", err
	}
	fileName = cleanFileName(fileName)
	if fileName == "" {
		return "", "", shared.ErrorFileNameMissing
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := storageKey(userID, jobID, fileName)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(s.expiry()))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// DownloadURL presigns a GET for key. Keys outside the caller's prefix are
// refused with common.ErrorUnauthorized.
func (s *AttachmentService) DownloadURL(ctx context.Context, userID, key string) (string, error) {
	if key == "" || !strings.HasPrefix(key, userPrefix(userID)) || strings.Contains(key, "..") {
		return "", common.ErrorUnauthorized
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.expiry()))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
