package http

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter 建立 gin engine 並註冊所有路由
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	r.GET("/health", h.Health)
	r.GET("/test", h.RunScenario)

	account := r.Group("/account")
	account.GET("/all", h.ListAccounts)
	account.GET("/id/:id", h.GetAccount)
	account.POST("/save", h.SaveAccount)

	transaction := r.Group("/transaction")
	transaction.GET("/all", h.ListTransactions)
	transaction.POST("/deposit", h.Deposit)
	transaction.POST("/withdraw", h.Withdraw)
	transaction.POST("/transfer", h.Transfer)

	return r
}

// RequestLogger 記錄每個請求的狀態碼與耗時
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[HTTP] %s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
