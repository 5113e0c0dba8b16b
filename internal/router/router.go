package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"forum_shop_v1_202608/internal/controller"
	"forum_shop_v1_202608/internal/middleware"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth     *controller.AuthController
	User     *controller.UserController
	Post     *controller.PostController
	Comment  *controller.CommentController
	Category *controller.CategoryController
	Shop     *controller.ShopController
	File     *controller.FileController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, c *Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RequestID(), middleware.RequestLog())
	{
		// auth 认证组
		auth := api.Group("/auth")
		{
			auth.POST("/register", c.Auth.Register)
			auth.POST("/login", middleware.RateLimit(middleware.ActionTypeLogin), c.Auth.Login)
			auth.GET("/me", middleware.JWTAuth(), c.Auth.Me)
			auth.POST("/logout", middleware.JWTAuth(), c.Auth.Logout)
			auth.GET("/dev-token", c.Auth.DevToken)
		}

		// user 用户组
		users := api.Group("/users")
		{
			users.GET("", middleware.JWTAuth(), middleware.RequireAdmin(), c.User.ListUsers)
			users.GET("/:user_id", c.User.GetUser)
			users.PUT("/:user_id", middleware.JWTAuth(), c.User.UpdateUser)
			users.DELETE("/:user_id", middleware.JWTAuth(), c.User.DeactivateUser)
			users.POST("/:user_id/activate", middleware.JWTAuth(), middleware.RequireAdmin(), c.User.ActivateUser)
		}

		// post 帖子组，发帖评论允许游客
		posts := api.Group("/posts")
		{
			posts.POST("", middleware.OptionalAuth(), middleware.RateLimit(middleware.ActionTypePost), c.Post.CreatePost)
			posts.GET("", middleware.OptionalAuth(), c.Post.ListPosts)
			posts.GET("/:post_id", c.Post.GetPost)
			posts.PUT("/:post_id", middleware.OptionalAuth(), c.Post.UpdatePost)
			posts.DELETE("/:post_id", middleware.OptionalAuth(), c.Post.DeletePost)
			posts.POST("/:post_id/restore", middleware.JWTAuth(), middleware.RequireAdmin(), c.Post.RestorePost)
			posts.POST("/:post_id/like", c.Post.LikePost)
			posts.DELETE("/:post_id/like", c.Post.UnlikePost)
			posts.POST("/:post_id/pin", middleware.JWTAuth(), middleware.RequireAdmin(), c.Post.PinPost)
			posts.POST("/:post_id/lock", middleware.JWTAuth(), middleware.RequireAdmin(), c.Post.LockPost)

			// 帖子下的评论
			posts.POST("/:post_id/comments", middleware.OptionalAuth(), middleware.RateLimit(middleware.ActionTypeComment), c.Comment.CreateComment)
			posts.GET("/:post_id/comments", c.Comment.ListComments)
			posts.GET("/:post_id/comments/count", c.Comment.GetCommentCount)

			// 帖子附件
			posts.POST("/:post_id/attachments", middleware.JWTAuth(), c.File.AttachFiles)
			posts.GET("/:post_id/attachments", c.File.ListAttachments)
		}

		// comment 评论组
		comments := api.Group("/comments")
		{
			comments.GET("/:comment_id", c.Comment.GetComment)
			comments.GET("/:comment_id/replies", c.Comment.GetCommentReplies)
			comments.GET("/:comment_id/thread", c.Comment.GetCommentThread)
			comments.PUT("/:comment_id", middleware.OptionalAuth(), c.Comment.UpdateComment)
			comments.DELETE("/:comment_id", middleware.OptionalAuth(), c.Comment.DeleteComment)
			comments.POST("/:comment_id/restore", middleware.JWTAuth(), middleware.RequireAdmin(), c.Comment.RestoreComment)
		}

		// shop 店铺组
		shops := api.Group("/shops")
		{
			shops.POST("", middleware.JWTAuth(), c.Shop.CreateShop)
			shops.GET("", c.Shop.ListShops)
			shops.GET("/mine", middleware.JWTAuth(), c.Shop.ListMyShops)
			shops.GET("/code/:code", c.Shop.GetShopByCode)
			shops.GET("/:shop_no", c.Shop.GetShop)
			shops.PUT("/:shop_no", middleware.JWTAuth(), c.Shop.UpdateShop)
			shops.PATCH("/:shop_no/status", middleware.JWTAuth(), middleware.RequireAdmin(), c.Shop.UpdateShopStatus)
			shops.POST("/:shop_no/toggle-display", middleware.JWTAuth(), c.Shop.ToggleShopDisplay)
			shops.DELETE("/:shop_no", middleware.JWTAuth(), c.Shop.DeleteShop)
			shops.POST("/:shop_no/restore", middleware.JWTAuth(), middleware.RequireAdmin(), c.Shop.RestoreShop)

			// 店铺下的商品分类树
			categories := shops.Group("/:shop_no/categories")
			{
				categories.POST("", middleware.JWTAuth(), c.Category.CreateCategory)
				categories.GET("", c.Category.ListCategories)
				categories.GET("/roots", c.Category.GetCategoryRoots)
				categories.GET("/tree", c.Category.GetCategoryTree)
				categories.GET("/depth/:depth", c.Category.GetCategoriesByDepth)
				categories.GET("/code/:code", c.Category.GetCategoryByCode)
				categories.GET("/:category_no", c.Category.GetCategory)
				categories.GET("/:category_no/children", c.Category.GetCategoryChildren)
				categories.GET("/:category_no/descendants", c.Category.GetCategoryDescendants)
				categories.GET("/:category_no/breadcrumb", c.Category.GetCategoryBreadcrumb)
				categories.PUT("/:category_no", middleware.JWTAuth(), c.Category.UpdateCategory)
				categories.DELETE("/:category_no", middleware.JWTAuth(), c.Category.DeleteCategory)
				categories.POST("/:category_no/restore", middleware.JWTAuth(), c.Category.RestoreCategory)
				categories.POST("/:category_no/toggle-display", middleware.JWTAuth(), c.Category.ToggleCategoryDisplay)
				categories.PATCH("/:category_no/product-count", middleware.JWTAuth(), c.Category.UpdateCategoryProductCount)
			}
		}

		// file 文件组
		files := api.Group("/files")
		{
			files.POST("", middleware.OptionalAuth(), middleware.RateLimit(middleware.ActionTypeUpload), c.File.UploadFile)
			files.GET("/:file_id", c.File.GetFile)
			files.GET("/:file_id/download", middleware.OptionalAuth(), c.File.DownloadFile)
			files.DELETE("/:file_id", middleware.JWTAuth(), c.File.DeleteFile)
			files.POST("/cleanup", middleware.JWTAuth(), middleware.RequireAdmin(), c.File.CleanupTempFiles)
		}
	}
}
