package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"forum_shop_v1_202608/internal/model"
	"forum_shop_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupCommentTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func newCommentSvc(t *testing.T) (*CommentService, *gorm.DB) {
	db := setupCommentTestDB(t)
	svc := NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
	)
	return svc, db
}

func seedPost(t *testing.T, db *gorm.DB, authorID int64) *model.Post {
	post := &model.Post{
		Title:    "test post",
		Content:  "body",
		AuthorID: authorID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("帖子落库失败: %v", err)
	}
	return post
}

// ==================== 单元测试 ====================

func TestCommentService_CreateRoot(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()
	post := seedPost(t, db, 1)

	comment, err := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "first"})
	if err != nil {
		t.Fatalf("创建顶层评论失败: %v", err)
	}

	if comment.Depth != 0 {
		t.Errorf("顶层评论深度 = %d, want 0", comment.Depth)
	}
	// 顶层路径就是自身 ID，不带分隔符
	if want := strconv.FormatInt(comment.ID, 10); comment.Path != want {
		t.Errorf("顶层评论路径 = %q, want %q", comment.Path, want)
	}
	if comment.OrderNum != 1 {
		t.Errorf("order_num = %d, want 1", comment.OrderNum)
	}

	// 落库的路径必须是回填后的最终路径
	stored, err := svc.Get(ctx, comment.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if stored.Path != comment.Path {
		t.Errorf("落库路径 = %q, want %q", stored.Path, comment.Path)
	}
}

func TestCommentService_ReplyChain(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()
	post := seedPost(t, db, 1)

	root, err := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "d0"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 逐级回复到最大深度 3
	parent := root
	for depth := 1; depth <= model.CommentMaxDepth; depth++ {
		reply, err := svc.Create(ctx, post.ID, 1, CommentCreateInput{
			Content:  "reply",
			ParentID: &parent.ID,
		})
		if err != nil {
			t.Fatalf("深度 %d 回复失败: %v", depth, err)
		}
		if reply.Depth != depth {
			t.Errorf("回复深度 = %d, want %d", reply.Depth, depth)
		}
		if want := parent.Path + "/" + strconv.FormatInt(reply.ID, 10); reply.Path != want {
			t.Errorf("回复路径 = %q, want %q", reply.Path, want)
		}
		parent = reply
	}

	// 第 4 级回复被拒绝，且不落任何数据
	var before int64
	db.Model(&model.Comment{}).Count(&before)

	_, err = svc.Create(ctx, post.ID, 1, CommentCreateInput{
		Content:  "too deep",
		ParentID: &parent.ID,
	})
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("超深回复应返回 ErrMaxDepthExceeded, got %v", err)
	}

	var after int64
	db.Model(&model.Comment{}).Count(&after)
	if before != after {
		t.Errorf("被拒绝的回复不应写库: before=%d after=%d", before, after)
	}
}

func TestCommentService_PostGates(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()

	// 帖子不存在
	if _, err := svc.Create(ctx, 999, 1, CommentCreateInput{Content: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("帖子不存在应返回 ErrNotFound, got %v", err)
	}

	// 已删除的帖子
	deleted := seedPost(t, db, 1)
	db.Model(deleted).Update("is_deleted", true)
	if _, err := svc.Create(ctx, deleted.ID, 1, CommentCreateInput{Content: "x"}); !errors.Is(err, ErrPostDeleted) {
		t.Fatalf("已删帖子应返回 ErrPostDeleted, got %v", err)
	}

	// 已锁定的帖子
	locked := seedPost(t, db, 1)
	db.Model(locked).Update("is_locked", true)
	if _, err := svc.Create(ctx, locked.ID, 1, CommentCreateInput{Content: "x"}); !errors.Is(err, ErrPostLocked) {
		t.Fatalf("已锁帖子应返回 ErrPostLocked, got %v", err)
	}
}

func TestCommentService_ReplyToDeleted(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()
	post := seedPost(t, db, 1)

	root, _ := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "d0"})
	if _, err := svc.Delete(ctx, root.ID, Actor{UserID: 1}, false); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	_, err := svc.Create(ctx, post.ID, 2, CommentCreateInput{
		Content:  "reply",
		ParentID: &root.ID,
	})
	if !errors.Is(err, ErrReplyToDeleted) {
		t.Fatalf("回复已删评论应返回 ErrReplyToDeleted, got %v", err)
	}

	// 父评论不存在
	missing := int64(999)
	_, err = svc.Create(ctx, post.ID, 2, CommentCreateInput{
		Content:  "reply",
		ParentID: &missing,
	})
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("父评论不存在应返回 ErrParentNotFound, got %v", err)
	}
}

func TestCommentService_OrderNum(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()
	post := seedPost(t, db, 1)

	first, _ := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "a"})
	second, _ := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "b"})
	if first.OrderNum != 1 || second.OrderNum != 2 {
		t.Errorf("同级排序 = %d,%d, want 1,2", first.OrderNum, second.OrderNum)
	}

	// 回复的排序独立于顶层
	reply, _ := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "r", ParentID: &first.ID})
	if reply.OrderNum != 1 {
		t.Errorf("首条回复排序 = %d, want 1", reply.OrderNum)
	}
}

func TestCommentService_GuestPassword(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()
	post := seedPost(t, db, 1)

	comment, err := svc.Create(ctx, post.ID, model.GuestUserID, CommentCreateInput{
		Content:  "guest",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("游客评论失败: %v", err)
	}

	var stored model.Comment
	if err := db.First(&stored, comment.ID).Error; err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if stored.Password == "" || stored.Password == "secret" {
		t.Fatalf("密码应以哈希落库, got %q", stored.Password)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")); err != nil {
		t.Errorf("哈希校验失败: %v", err)
	}

	// 注册用户的密码字段保持为空
	member, _ := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "member", Password: "ignored"})
	if member.Password != "" {
		t.Errorf("注册用户不应落密码哈希")
	}
}

func TestCommentService_SoftDelete(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()
	post := seedPost(t, db, 1)

	root, _ := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "root"})
	reply, _ := svc.Create(ctx, post.ID, 2, CommentCreateInput{Content: "reply", ParentID: &root.ID})

	// 非作者非管理员不可删
	if _, err := svc.Delete(ctx, root.ID, Actor{UserID: 99}, false); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("越权删除应返回 ErrPermissionDenied, got %v", err)
	}

	if _, err := svc.Delete(ctx, root.ID, Actor{UserID: 1}, false); err != nil {
		t.Fatalf("软删失败: %v", err)
	}

	stored, err := svc.Get(ctx, root.ID)
	if err != nil {
		t.Fatalf("软删后查询失败: %v", err)
	}
	if !stored.IsDeleted {
		t.Errorf("软删后应带删除标记")
	}
	if stored.Content != model.DeletedCommentContent {
		t.Errorf("软删后内容 = %q, want 占位文案", stored.Content)
	}

	// 子孙保持可见，树里占位节点仍然挂着回复
	tree, err := svc.ListTree(ctx, post.ID, true)
	if err != nil {
		t.Fatalf("树查询失败: %v", err)
	}
	if len(tree) != 1 || len(tree[0].Children) != 1 {
		t.Fatalf("软删后子孙应保留在树里")
	}
	if tree[0].Children[0].ID != reply.ID {
		t.Errorf("子节点错误")
	}

	// 有效评论数不含已删
	count, _ := svc.Count(ctx, post.ID)
	if count != 1 {
		t.Errorf("有效评论数 = %d, want 1", count)
	}
}

func TestCommentService_HardDeleteCascade(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()
	post := seedPost(t, db, 1)

	root, _ := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "root"})
	reply, _ := svc.Create(ctx, post.ID, 2, CommentCreateInput{Content: "reply", ParentID: &root.ID})
	nested, _ := svc.Create(ctx, post.ID, 3, CommentCreateInput{Content: "nested", ParentID: &reply.ID})
	sibling, _ := svc.Create(ctx, post.ID, 4, CommentCreateInput{Content: "sibling"})

	// 硬删需要管理员，普通本人删除走软删
	deleted, err := svc.Delete(ctx, root.ID, Actor{UserID: 99, IsAdmin: true}, true)
	if err != nil {
		t.Fatalf("硬删失败: %v", err)
	}
	if deleted.ID != root.ID {
		t.Errorf("返回的评论错误")
	}

	var count int64
	db.Model(&model.Comment{}).Count(&count)
	if count != 1 {
		t.Fatalf("硬删后剩余 = %d, want 1 (仅兄弟节点)", count)
	}
	var remaining model.Comment
	if err := db.First(&remaining).Error; err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if remaining.ID != sibling.ID {
		t.Errorf("兄弟节点不应被级联删除")
	}
	_ = nested
}

func TestCommentService_ThreadAndReplies(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()
	post := seedPost(t, db, 1)

	root, _ := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "root"})
	reply, _ := svc.Create(ctx, post.ID, 2, CommentCreateInput{Content: "reply", ParentID: &root.ID})
	nested, _ := svc.Create(ctx, post.ID, 3, CommentCreateInput{Content: "nested", ParentID: &reply.ID})
	other, _ := svc.Create(ctx, post.ID, 4, CommentCreateInput{Content: "other"})

	// 直接子回复只有一条
	replies, err := svc.Replies(ctx, root.ID, false)
	if err != nil {
		t.Fatalf("回复查询失败: %v", err)
	}
	if len(replies) != 1 || replies[0].ID != reply.ID {
		t.Fatalf("直接回复应只有 reply")
	}

	// 中间节点的上下文: 祖先 = [root]，子树根 = reply，下挂 nested
	thread, err := svc.Thread(ctx, reply.ID)
	if err != nil {
		t.Fatalf("上下文查询失败: %v", err)
	}
	if len(thread.Ancestors) != 1 || thread.Ancestors[0].ID != root.ID {
		t.Fatalf("祖先链应为 [root]")
	}
	if thread.Comment.ID != reply.ID {
		t.Fatalf("子树根应为 reply")
	}
	if len(thread.Comment.Children) != 1 || thread.Comment.Children[0].ID != nested.ID {
		t.Fatalf("子树应包含 nested")
	}

	// 顶层评论没有祖先，兄弟树不混入
	thread, err = svc.Thread(ctx, other.ID)
	if err != nil {
		t.Fatalf("上下文查询失败: %v", err)
	}
	if len(thread.Ancestors) != 0 {
		t.Errorf("顶层评论祖先链应为空")
	}
	if len(thread.Comment.Children) != 0 {
		t.Errorf("无回复的评论子树应为空")
	}

	// 不存在的评论
	if _, err := svc.Thread(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的评论应返回 ErrNotFound, got %v", err)
	}
}

func TestCommentService_UpdateAndRestore(t *testing.T) {
	svc, db := newCommentSvc(t)
	ctx := context.Background()
	post := seedPost(t, db, 1)

	comment, _ := svc.Create(ctx, post.ID, 1, CommentCreateInput{Content: "before"})

	// 越权修改
	if _, err := svc.Update(ctx, comment.ID, "x", Actor{UserID: 99}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("越权修改应返回 ErrPermissionDenied, got %v", err)
	}

	updated, err := svc.Update(ctx, comment.ID, "after", Actor{UserID: 1})
	if err != nil {
		t.Fatalf("修改失败: %v", err)
	}
	if updated.Content != "after" {
		t.Errorf("修改后内容 = %q, want %q", updated.Content, "after")
	}

	// 活跃评论不可恢复
	if _, err := svc.Restore(ctx, comment.ID); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("恢复活跃评论应返回 ErrAlreadyActive, got %v", err)
	}

	if _, err := svc.Delete(ctx, comment.ID, Actor{UserID: 1}, false); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	// 已删评论不可修改
	if _, err := svc.Update(ctx, comment.ID, "x", Actor{UserID: 1}); !errors.Is(err, ErrAlreadyDeleted) {
		t.Fatalf("修改已删评论应返回 ErrAlreadyDeleted, got %v", err)
	}

	// 恢复后内容仍是占位文案
	restored, err := svc.Restore(ctx, comment.ID)
	if err != nil {
		t.Fatalf("恢复失败: %v", err)
	}
	if restored.IsDeleted {
		t.Errorf("恢复后不应带删除标记")
	}
	if restored.Content != model.DeletedCommentContent {
		t.Errorf("恢复后内容 = %q, want 占位文案", restored.Content)
	}
}
