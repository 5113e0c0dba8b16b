package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"forum_shop_v1_202608/internal/middleware"
	"forum_shop_v1_202608/internal/model"
	"forum_shop_v1_202608/internal/repository"
	"forum_shop_v1_202608/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 请求构造辅助 ====================

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// asUser 测试用身份注入，绕过 JWT 解析
func asUser(userID int64, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyIsAdmin, isAdmin)
		c.Next()
	}
}

func newCommentTestDB(t *testing.T) *gorm.DB {
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

func buildCommentRouter(db *gorm.DB, userID int64, isAdmin bool) *gin.Engine {
	svc := service.NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
	)
	ctl := NewCommentController(svc)

	r := gin.New()
	r.Use(asUser(userID, isAdmin))
	r.POST("/posts/:post_id/comments", ctl.CreateComment)
	r.GET("/posts/:post_id/comments", ctl.ListComments)
	r.GET("/comments/:comment_id", ctl.GetComment)
	r.PUT("/comments/:comment_id", ctl.UpdateComment)
	r.DELETE("/comments/:comment_id", ctl.DeleteComment)
	return r
}

func setupCommentRouter(t *testing.T, userID int64, isAdmin bool) (*gin.Engine, *gorm.DB) {
	db := newCommentTestDB(t)
	return buildCommentRouter(db, userID, isAdmin), db
}

func seedTestPost(t *testing.T, db *gorm.DB, mutate func(*model.Post)) *model.Post {
	post := &model.Post{Title: "post", Content: "body", AuthorID: 1}
	if mutate != nil {
		mutate(post)
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("帖子落库失败: %v", err)
	}
	return post
}

// ==================== 接口测试 ====================

func TestCreateComment_StatusMapping(t *testing.T) {
	router, db := setupCommentRouter(t, 1, false)
	post := seedTestPost(t, db, nil)
	locked := seedTestPost(t, db, func(p *model.Post) { p.IsLocked = true })

	// 正常创建
	w := performRequest(router, "POST", fmt.Sprintf("/posts/%d/comments", post.ID),
		map[string]string{"content": "hello"})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.Comment
	json.Unmarshal(w.Body.Bytes(), &created)
	assert.Equal(t, 0, created.Depth)
	assert.NotEmpty(t, created.Path)

	// 空内容被参数校验拦下
	w = performRequest(router, "POST", fmt.Sprintf("/posts/%d/comments", post.ID),
		map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 帖子不存在
	w = performRequest(router, "POST", "/posts/999/comments",
		map[string]string{"content": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 非法帖子 ID
	w = performRequest(router, "POST", "/posts/abc/comments",
		map[string]string{"content": "hello"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 锁定的帖子
	w = performRequest(router, "POST", fmt.Sprintf("/posts/%d/comments", locked.ID),
		map[string]string{"content": "hello"})
	assert.Equal(t, http.StatusLocked, w.Code)
}

func TestCreateComment_DepthLimit(t *testing.T) {
	router, db := setupCommentRouter(t, 1, false)
	post := seedTestPost(t, db, nil)

	// 顶层 + 3 层回复
	var parentID int64
	for depth := 0; depth <= model.CommentMaxDepth; depth++ {
		body := map[string]interface{}{"content": "c"}
		if depth > 0 {
			body["parent_id"] = parentID
		}
		w := performRequest(router, "POST", fmt.Sprintf("/posts/%d/comments", post.ID), body)
		assert.Equal(t, http.StatusCreated, w.Code, "depth %d", depth)

		var c model.Comment
		json.Unmarshal(w.Body.Bytes(), &c)
		parentID = c.ID
	}

	// 第 4 层回复映射为 400
	w := performRequest(router, "POST", fmt.Sprintf("/posts/%d/comments", post.ID),
		map[string]interface{}{"content": "too deep", "parent_id": parentID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListComments_TreeAndFlat(t *testing.T) {
	router, db := setupCommentRouter(t, 1, false)
	post := seedTestPost(t, db, nil)

	w := performRequest(router, "POST", fmt.Sprintf("/posts/%d/comments", post.ID),
		map[string]string{"content": "root"})
	assert.Equal(t, http.StatusCreated, w.Code)
	var root model.Comment
	json.Unmarshal(w.Body.Bytes(), &root)

	w = performRequest(router, "POST", fmt.Sprintf("/posts/%d/comments", post.ID),
		map[string]interface{}{"content": "reply", "parent_id": root.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	// 平铺: 两条
	w = performRequest(router, "GET", fmt.Sprintf("/posts/%d/comments", post.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var flat struct {
		Data  []model.Comment `json:"data"`
		Total int64           `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &flat)
	assert.Len(t, flat.Data, 2)
	assert.Equal(t, int64(2), flat.Total)

	// 树形: 顶层一条，回复挂在 children 下
	w = performRequest(router, "GET", fmt.Sprintf("/posts/%d/comments?as_tree=true", post.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var treeResp struct {
		Data []model.Comment `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &treeResp)
	assert.Len(t, treeResp.Data, 1)
	assert.Len(t, treeResp.Data[0].Children, 1)
}

func TestDeleteComment_Permission(t *testing.T) {
	router, db := setupCommentRouter(t, 1, false)
	post := seedTestPost(t, db, nil)

	w := performRequest(router, "POST", fmt.Sprintf("/posts/%d/comments", post.ID),
		map[string]string{"content": "mine"})
	var comment model.Comment
	json.Unmarshal(w.Body.Bytes(), &comment)

	// 他人操作映射为 403
	otherRouter := buildCommentRouter(db, 2, false)
	w = performRequest(otherRouter, "PUT", fmt.Sprintf("/comments/%d", comment.ID),
		map[string]string{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 本人可以修改
	w = performRequest(router, "PUT", fmt.Sprintf("/comments/%d", comment.ID),
		map[string]string{"content": "edited"})
	assert.Equal(t, http.StatusOK, w.Code)

	// 删除后修改映射为 409
	w = performRequest(router, "DELETE", fmt.Sprintf("/comments/%d", comment.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "PUT", fmt.Sprintf("/comments/%d", comment.ID),
		map[string]string{"content": "late"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 软删后详情仍可见，内容是占位文案
	w = performRequest(router, "GET", fmt.Sprintf("/comments/%d", comment.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var deleted model.Comment
	json.Unmarshal(w.Body.Bytes(), &deleted)
	assert.True(t, deleted.IsDeleted)
	assert.Equal(t, model.DeletedCommentContent, deleted.Content)
}
