package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"forum_shop_v1_202608/internal/controller"
	"forum_shop_v1_202608/internal/middleware"
	"forum_shop_v1_202608/internal/model"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/internal/router"
	"forum_shop_v1_202608/internal/service"
	"forum_shop_v1_202608/internal/task"
	"forum_shop_v1_202608/pkg/config"
	"forum_shop_v1_202608/pkg/database"
	"forum_shop_v1_202608/pkg/logger"
)

func main() {
	// 1. 加载配置 & 日志
	cfg := config.Load()
	if _, err := logger.Init(cfg.Debug); err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer logger.L.Sync()

	// 2. JWT 配置
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
		Issuer:         cfg.JWTIssuer,
	})

	// 3. 初始化数据库
	db := initDatabase(cfg)

	// 4. 初始化依赖
	deps := initDependencies(db, cfg)

	// 5. 启动定时任务
	tempFileTask := task.NewTempFileTask(deps.Services.File)
	tempFileTask.Start()
	defer tempFileTask.Stop()

	// 6. 初始化路由
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	router.InitRoutes(r, deps.Controllers)

	// 7. 启动服务
	startServer(r, cfg.ServerPort)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User     repository.UserRepository
	Post     repository.PostRepository
	Comment  repository.CommentRepository
	Category repository.CategoryRepository
	Shop     repository.ShopRepository
	File     repository.FileRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	User     *service.UserService
	Post     *service.PostService
	Comment  *service.CommentService
	Category *service.CategoryService
	Shop     *service.ShopService
	File     *service.FileService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := database.InitDB(cfg.DatabaseURL, cfg.Debug,
		// 用户
		&model.User{},
		// 论坛
		&model.Post{}, &model.Comment{},
		// 商城
		&model.Shop{}, &model.Category{},
		// 文件
		&model.StoredFile{}, &model.PostAttachment{},
	)
	if err != nil {
		logger.L.Fatal("数据库初始化失败", zap.Error(err))
	}
	logger.L.Info("database connected")
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:     repository.NewUserRepository(db),
		Post:     repository.NewPostRepository(db),
		Comment:  repository.NewCommentRepository(db),
		Category: repository.NewCategoryRepository(db),
		Shop:     repository.NewShopRepository(db),
		File:     repository.NewFileRepository(db),
	}

	// -------- 存储 --------
	storage := initStorage(cfg)

	// -------- 业务服务 --------
	services := &Services{
		Auth:     service.NewAuthService(repos.User, cfg.Debug),
		User:     service.NewUserService(repos.User),
		Post:     service.NewPostService(repos.Post, repos.Comment),
		Comment:  service.NewCommentService(repos.Comment, repos.Post),
		Category: service.NewCategoryService(repos.Category),
		Shop:     service.NewShopService(repos.Shop),
	}
	services.File = service.NewFileService(
		repos.File, repos.Post, storage,
		cfg.UploadMaxSize,
		time.Duration(cfg.TempFileTTLHours)*time.Hour,
	)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:     controller.NewAuthController(services.Auth, services.User),
		User:     controller.NewUserController(services.User),
		Post:     controller.NewPostController(services.Post),
		Comment:  controller.NewCommentController(services.Comment),
		Category: controller.NewCategoryController(services.Category),
		Shop:     controller.NewShopController(services.Shop),
		File:     controller.NewFileController(services.File),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorage 初始化存储
func initStorage(cfg *config.Config) service.StorageProvider {
	storageCfg := &service.StorageConfig{
		Provider:  cfg.StorageProvider,
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Endpoint:  cfg.StorageEndpoint,
		BasePath:  cfg.StorageBasePath,
	}
	if cfg.StorageProvider == "local" {
		storageCfg.BasePath = cfg.LocalStorageDir
	}

	storage, err := service.NewStorageProvider(storageCfg)
	if err != nil {
		logger.L.Fatal("存储初始化失败", zap.Error(err))
	}
	return storage
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logger.L.Info("服务启动", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("正在关闭服务")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	logger.L.Info("服务已退出")
}
