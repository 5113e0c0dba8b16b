package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ==================== 接口定义 ====================

// StorageProvider 存储提供者接口
// path 为落库的存储路径（相对键），不含访问域名
type StorageProvider interface {
	// Save 保存文件，返回存储路径
	Save(ctx context.Context, data []byte, storedFilename string) (path string, err error)

	// Load 读取文件内容
	Load(ctx context.Context, path string) ([]byte, error)

	// Delete 删除文件
	Delete(ctx context.Context, path string) error

	// SignedURL 获取限时访问 URL（本地存储直接返回路径）
	SignedURL(ctx context.Context, path string, expires time.Duration) (string, error)
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 自定义端点（MinIO 等 S3 兼容存储）
	BasePath  string // 基础路径前缀，本地存储时为磁盘目录
}

// ==================== 工厂方法 ====================

func NewStorageProvider(cfg *StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client   *s3.Client
	bucket   string
	basePath string
}

func NewS3Storage(cfg *StorageConfig) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		basePath: cfg.BasePath,
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, data []byte, storedFilename string) (string, error) {
	key := s.buildKey(storedFilename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(detectContentType(data)),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}

	return key, nil
}

func (s *S3Storage) Load(ctx context.Context, path string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("读取S3失败: %v", err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *S3Storage) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	return err
}

func (s *S3Storage) SignedURL(ctx context.Context, path string, expires time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	presignedURL, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}

	return presignedURL.URL, nil
}

// buildKey 按日期分目录，避免单目录文件过多
func (s *S3Storage) buildKey(storedFilename string) string {
	datePath := time.Now().Format("2006/01/02")
	if s.basePath != "" {
		return fmt.Sprintf("%s/%s/%s", s.basePath, datePath, storedFilename)
	}
	return fmt.Sprintf("%s/%s", datePath, storedFilename)
}

// ==================== 本地存储 ====================

type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(cfg *StorageConfig) (*LocalStorage, error) {
	baseDir := cfg.BasePath
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %v", err)
	}

	return &LocalStorage{baseDir: baseDir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, data []byte, storedFilename string) (string, error) {
	datePath := time.Now().Format("2006/01/02")
	relPath := filepath.Join(datePath, storedFilename)

	fullPath := filepath.Join(s.baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("创建目录失败: %v", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %v", err)
	}

	return filepath.ToSlash(relPath), nil
}

func (s *LocalStorage) Load(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(s.resolve(path))
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	err := os.Remove(s.resolve(path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStorage) SignedURL(ctx context.Context, path string, expires time.Duration) (string, error) {
	// 本地存储无需签名
	return path, nil
}

// resolve 拒绝越出 baseDir 的路径
func (s *LocalStorage) resolve(path string) string {
	clean := filepath.Clean(strings.TrimPrefix(path, "/"))
	return filepath.Join(s.baseDir, clean)
}

// ==================== 工具函数 ====================

func detectContentType(data []byte) string {
	return http.DetectContentType(data)
}
