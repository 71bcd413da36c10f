package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "personalblog/api/v1"
	"personalblog/config"
	"personalblog/dao"
	"personalblog/internal/auth"
	"personalblog/internal/cache"
	myvalidator "personalblog/internal/validator"
	"personalblog/middleware"
	"personalblog/model"
	"personalblog/service"
)

func main() {
	// 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	cfg := config.Load(configPath)
	rdb := config.NewRedisClient(cfg.Redis)

	// 初始化数据库
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		panic(err)
	}

	// 初始化 DAO 和 Service
	userDAO := dao.NewUserDAO(db)
	postDAO := dao.NewPostDAO(db)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessExpire)*time.Second)
	feed := cache.NewFeedCache(rdb, time.Minute)
	userService := service.NewUserService(userDAO, tokens, cfg.Security.BcryptCost)
	postService := service.NewPostService(postDAO, userDAO, feed)
	userAPI := v1.NewUserAPI(userService)
	postAPI := v1.NewPostAPI(postService)

	// 初始化路由
	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to Personal Blog API")
	})

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("phone", myvalidator.IsPhone); err != nil {
			panic(err)
		}
	}

	// 公共路由
	public := r.Group("/api")
	{
		public.POST("/register", userAPI.Register)
		public.POST("/login", userAPI.Login)
		public.GET("/posts", postAPI.ListPosts)
		public.GET("/posts/:id", postAPI.GetPost)
		public.GET("/posts/user/:userId", postAPI.ListUserPosts)
	}

	// 私有路由
	private := r.Group("/api")
	private.Use(middleware.AuthMiddleware(tokens))
	{
		private.POST("/posts", postAPI.CreatePost)
		private.PUT("/posts/:id", postAPI.UpdatePost)
		private.DELETE("/posts/:id", postAPI.DeletePost)
		private.POST("/posts/:id/comments", postAPI.AddComment)
	}

	// 启动服务
	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
