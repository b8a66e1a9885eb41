package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	cfg "github.com/maheshrc27/pixelgram/configs"
	"github.com/maheshrc27/pixelgram/internal/apperr"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
)

var allowedMediaTypes = map[string]string{
	"jpg":  MediaKindImage,
	"jpeg": MediaKindImage,
	"png":  MediaKindImage,
	"mp4":  MediaKindVideo,
	"mov":  MediaKindVideo,
}

type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (url string, kind string, err error)
}

type mediaService struct {
	config cfg.Config
}

func NewMediaService(cfg cfg.Config) MediaService {
	return &mediaService{config: cfg}
}

func (r *mediaService) client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	}), nil
}

// Upload sniffs the file content, rejects anything but jpg/jpeg/png/mp4/mov,
// stores it under a nanoid key and returns the public URL plus whether the
// file is an image or a video.
func (r *mediaService) Upload(ctx context.Context, file *multipart.FileHeader) (string, string, error) {
	fileContent, err := file.Open()
	if err != nil {
		slog.Info(err.Error())
		return "", "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		slog.Info(err.Error())
		return "", "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", "", apperr.Validation("file", "unsupported file type")
	}
	kind, ok := allowedMediaTypes[fileType.Extension]
	if !ok {
		return "", "", apperr.Validation("file", fmt.Sprintf("file type %s is not allowed", fileType.Extension))
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", "", err
	}

	client, err := r.client(ctx)
	if err != nil {
		return "", "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(fileType.MIME.Value),
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return "", "", err
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(r.config.R2.PublicURL, "/"), key)
	return url, kind, nil
}
