package service

import "errors"

// 业务校验错误: 调用方可纠正，controller 映射为 4xx。
// 存储层错误不在这里包装，原样向上传递。
var (
	ErrNotFound         = errors.New("资源不存在")
	ErrPermissionDenied = errors.New("没有操作权限")

	// 层级结构
	ErrParentNotFound   = errors.New("父节点不存在")
	ErrParentDeleted    = errors.New("父节点已被删除，不能在其下创建")
	ErrMaxDepthExceeded = errors.New("超过最大层级深度")

	// 分类
	ErrDuplicateCode   = errors.New("分类编码已被占用")
	ErrInvalidCode     = errors.New("分类编码格式不正确 (2-50位小写字母/数字/连字符/下划线)")
	ErrHasChildren     = errors.New("存在子分类，不能删除")
	ErrHasProducts     = errors.New("分类下存在商品，不能删除")
	ErrInvalidDepth    = errors.New("分类深度超出范围")
	ErrAlreadyActive   = errors.New("已经是活跃状态")
	ErrAlreadyDeleted  = errors.New("已被删除，不能修改")

	// 评论
	ErrReplyToDeleted = errors.New("不能回复已删除的评论")

	// 帖子
	ErrPostLocked  = errors.New("帖子已锁定，不能编辑")
	ErrPostDeleted = errors.New("帖子已删除")

	// 用户/认证
	ErrDuplicateEmail    = errors.New("邮箱已被注册")
	ErrDuplicateUsername = errors.New("用户名已被占用")
	ErrInvalidCredential = errors.New("邮箱或密码错误")
	ErrUserInactive      = errors.New("账号已停用")

	// 店铺
	ErrDuplicateShopCode = errors.New("店铺编码已被占用")

	// 文件
	ErrFileTooLarge       = errors.New("文件超过大小限制")
	ErrFileTypeNotAllowed = errors.New("不支持的文件类型")
)
