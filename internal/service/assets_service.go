package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	cfg "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/repository"
	"github.com/socialops/content-api/pkg/svcerr"
)

type AssetsService interface {
	Upload(ctx context.Context, userID, companyID string, file *multipart.FileHeader) (*models.MediaAsset, error)
}

type assetsService struct {
	config cfg.Config
	co     repository.CompanyRepository
	ma     repository.MediaAssetRepository
}

func NewAssetsService(config cfg.Config, co repository.CompanyRepository, ma repository.MediaAssetRepository) AssetsService {
	return &assetsService{config: config, co: co, ma: ma}
}

func (s *assetsService) r2Client() (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.config.R2.AccessKey, s.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s.config.R2.AccountID))
	}), nil
}

// Upload sniffs and stores one media file in R2 and records the asset so
// publish payloads can reference its public URL.
func (s *assetsService) Upload(ctx context.Context, userID, companyID string, file *multipart.FileHeader) (*models.MediaAsset, error) {
	company, err := s.co.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, svcerr.NotFound("company not found")
	}
	if !company.HasMember(userID) {
		return nil, svcerr.Forbidden("not a member of this company")
	}

	allowedTypes := map[string]struct{}{
		"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
	}

	fileContent, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return nil, svcerr.BadRequest("unsupported file type")
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return nil, svcerr.BadRequest(fmt.Sprintf("file type %s is not allowed", fileType.Extension))
	}

	key, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	if err := s.uploadToR2(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return nil, err
	}

	asset := &models.MediaAsset{
		CompanyID: companyID,
		FileName:  key,
		FileType:  fileType.MIME.Value,
		FileSize:  int64(len(fileBytes)),
		FileURL:   fmt.Sprintf("%s/%s", s.config.R2.PublicURL, key),
	}

	assetID, err := s.ma.Create(ctx, asset)
	if err != nil {
		return nil, err
	}
	asset.ID = assetID

	return asset, nil
}

func (s *assetsService) uploadToR2(ctx context.Context, key string, file []byte, contentType string) error {
	client, err := s.r2Client()
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
