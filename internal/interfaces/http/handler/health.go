// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitchdeck-ai-api/internal/infrastructure/llm"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	gateway *llm.Gateway
	version string
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(gateway *llm.Gateway, version string) *HealthHandler {
	return &HealthHandler{gateway: gateway, version: version}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status string `json:"status"`
	Mode   string `json:"mode,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口。所有状态都在内存中，文本网关又有
// 确定性兜底，因此服务只要起来就可接流量；这里只暴露
// 网关当前处于真实上游还是演示模式。
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	mode := "live"
	if h.gateway.DemoMode() {
		mode = "demo"
	}
	c.JSON(http.StatusOK, readinessResponse{
		Status: "ok",
		Checks: map[string]*readinessCheck{
			"text_gateway": {Status: "ok", Mode: mode},
		},
	})
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}
