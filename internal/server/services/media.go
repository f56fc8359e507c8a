package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/reminisce-care/reminisce/internal/common"
	sc "github.com/reminisce-care/reminisce/internal/server/config"
	"github.com/reminisce-care/reminisce/internal/server/enrichment"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(client *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return client.PutObject(ctx, in)
	}
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// MediaService stores uploaded photos and synthesized audio in the object
// store and hands out public URLs for them.
type MediaService struct {
	config *sc.Config
	speech enrichment.SpeechSynthesizer
}

func NewMediaService(config *sc.Config, speech enrichment.SpeechSynthesizer) *MediaService {
	return &MediaService{config: config, speech: speech}
}

func (s *MediaService) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func storageKey(prefix, ext string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%v.%s", prefix, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (s *MediaService) publicURL(key string) string {
	return strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key
}

// UploadImage stores a data-URL encoded photo and returns its public URL.
// An already-hosted http(s) URL is passed through untouched.
func (s *MediaService) UploadImage(ctx context.Context, imageData string) (string, error) {

	if strings.HasPrefix(imageData, "http://") || strings.HasPrefix(imageData, "https://") {
		return imageData, nil
	}

	mime, payload, ok := strings.Cut(strings.TrimPrefix(imageData, "data:"), ";base64,")
	if !ok || !strings.HasPrefix(imageData, "data:") {
		return "", common.ErrorValidation
	}

	ext, ok := imageExtensions[mime]
	if !ok {
		return "", common.ErrorValidation
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", common.ErrorValidation
	}

	key := storageKey("images", ext)
	if err := s.upload(ctx, key, mime, data); err != nil {
		return "", common.ErrorInternal
	}

	return s.publicURL(key), nil
}

// Synthesize converts text to speech, stores the audio and returns its
// public URL. Unlike image enrichment there is no fallback: synthesis
// failures surface to the caller.
func (s *MediaService) Synthesize(ctx context.Context, text string) (string, error) {

	if strings.TrimSpace(text) == "" {
		return "", common.ErrorValidation
	}

	audio, err := s.speech.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}

	key := storageKey("audio", "mp3")
	if err := s.upload(ctx, key, "audio/mpeg", audio); err != nil {
		return "", common.ErrorInternal
	}

	return s.publicURL(key), nil
}

func (s *MediaService) upload(ctx context.Context, key, contentType string, data []byte) error {

	client, err := s.getClient()
	if err != nil {
		return err
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}
