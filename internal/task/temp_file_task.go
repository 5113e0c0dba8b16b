package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"forum_shop_v1_202608/internal/service"
	"forum_shop_v1_202608/pkg/logger"
)

// TempFileTask 临时文件清理任务
// 上传后超期未挂接到帖子的文件，定时回收存储对象和记录
type TempFileTask struct {
	fileSvc *service.FileService
	Cron    *cron.Cron

	// 单轮最多清理条数，避免一次积压拖垮 IO
	batchLimit int
}

func NewTempFileTask(fileSvc *service.FileService) *TempFileTask {
	return &TempFileTask{
		fileSvc:    fileSvc,
		Cron:       cron.New(cron.WithSeconds()), // 支持秒级控制
		batchLimit: 500,
	}
}

// Start 启动定时任务
func (t *TempFileTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		logger.L.Info("服务启动，正在执行首次临时文件清理")
		t.cleanupJob(ctx)
	}()

	// 定时策略: 每小时整点清理
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.cleanupJob(ctx)
	})
	if err != nil {
		logger.L.Fatal("无法启动临时文件清理任务", zap.Error(err))
	}

	t.Cron.Start()
	logger.L.Info("临时文件清理任务已启动 (每小时一次)")
}

// Stop 停止定时任务，等待在跑的一轮结束
func (t *TempFileTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
	logger.L.Info("临时文件清理任务已停止")
}

func (t *TempFileTask) cleanupJob(ctx context.Context) {
	cleaned, err := t.fileSvc.CleanupExpiredTemp(ctx, t.batchLimit)
	if err != nil {
		logger.L.Error("临时文件清理失败", zap.Error(err))
		return
	}
	logger.L.Info("本轮临时文件清理完成", zap.Int("cleaned", cleaned))
}
