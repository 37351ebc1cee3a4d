// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz は /healthz を処理し、JSONでステータスを返します。
// HEADは本文なしの200、OPTIONSは204を返します。
func Healthz(c *gin.Context) {
	respond(c, func() { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
}

// Health は /health を処理し、プレーンテキストの "OK" を返します。
func Health(c *gin.Context) {
	respond(c, func() { c.String(http.StatusOK, "OK") })
}

func respond(c *gin.Context, body func()) {
	// ロードバランサーやプロキシにキャッシュさせない
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		body()
	}
}

// Register は public グループにヘルスチェックのルートを登録します。
func Register(r gin.IRoutes) {
	for _, p := range []struct {
		path string
		h    gin.HandlerFunc
	}{{"/health", Health}, {"/healthz", Healthz}} {
		r.GET(p.path, p.h)
		r.HEAD(p.path, p.h)
		r.OPTIONS(p.path, p.h)
	}
}
