package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置，全部从环境变量读取
type Config struct {
	// 服务
	ServerPort string
	Debug      bool

	// 数据库
	DatabaseURL string

	// JWT
	JWTSecret      string
	AccessTokenTTL time.Duration
	JWTIssuer      string

	// 存储
	StorageProvider  string // "s3" | "local"
	StorageBucket    string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageEndpoint  string
	StorageCDNDomain string
	StorageBasePath  string
	LocalStorageDir  string

	// 上传限制
	UploadMaxSize    int64 // 单位: 字节
	TempFileTTLHours int   // 未挂载的临时文件保留时间
}

// Load 加载配置
// 约定: 环境变量优先，缺省值兜底，不依赖配置文件
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=forum_shop port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "forum-shop-secret-key-change-in-production")
	v.SetDefault("JWT_ISSUER", "forum-shop")
	v.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 120)
	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("STORAGE_BASE_PATH", "forum-shop")
	v.SetDefault("LOCAL_STORAGE_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_SIZE", 10*1024*1024)
	v.SetDefault("TEMP_FILE_TTL_HOURS", 24)

	return &Config{
		ServerPort:       v.GetString("SERVER_PORT"),
		Debug:            v.GetBool("DEBUG"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		AccessTokenTTL:   time.Duration(v.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute,
		StorageProvider:  v.GetString("STORAGE_PROVIDER"),
		StorageBucket:    v.GetString("STORAGE_BUCKET"),
		StorageRegion:    v.GetString("STORAGE_REGION"),
		StorageAccessKey: v.GetString("STORAGE_ACCESS_KEY"),
		StorageSecretKey: v.GetString("STORAGE_SECRET_KEY"),
		StorageEndpoint:  v.GetString("STORAGE_ENDPOINT"),
		StorageCDNDomain: v.GetString("STORAGE_CDN_DOMAIN"),
		StorageBasePath:  v.GetString("STORAGE_BASE_PATH"),
		LocalStorageDir:  v.GetString("LOCAL_STORAGE_DIR"),
		UploadMaxSize:    v.GetInt64("UPLOAD_MAX_SIZE"),
		TempFileTTLHours: v.GetInt("TEMP_FILE_TTL_HOURS"),
	}
}
