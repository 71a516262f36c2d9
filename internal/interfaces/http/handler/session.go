// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pitchdeck-ai-api/internal/application/session"
	"pitchdeck-ai-api/internal/interfaces/http/dto"
)

// SessionHandler 会话处理器：承载从创建会话到成稿修订的全部操作
type SessionHandler struct {
	svc *session.Service
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(svc *session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Create 创建会话
// @Summary 创建文稿会话
// @Tags Session
// @Accept json
// @Produce json
// @Success 201 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	sess, err := h.svc.Create(c.Request.Context(), req.ToStartupContext(), req.Theme)
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Created(c, dto.NewSessionResponse(sess))
}

// Get 查询会话
// @Summary 查询文稿会话
// @Tags Session
// @Produce json
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.svc.Get(c.Request.Context(), c.Param("sid"))
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, dto.NewSessionResponse(sess))
}

// Delete 删除会话
// @Summary 删除文稿会话
// @Tags Session
// @Success 204
// @Router /v1/sessions/{sid} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("sid")); err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.NoContent(c)
}

// GenerateOutline 生成大纲
// @Summary 生成（或重新生成）大纲
// @Tags Session
// @Produce json
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/outline [post]
func (h *SessionHandler) GenerateOutline(c *gin.Context) {
	sess, err := h.svc.GenerateOutline(c.Request.Context(), c.Param("sid"))
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, dto.NewSessionResponse(sess))
}

// GenerateDeck 装配文稿
// @Summary 从大纲装配完整文稿
// @Tags Session
// @Produce json
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/deck [post]
func (h *SessionHandler) GenerateDeck(c *gin.Context) {
	sess, err := h.svc.GenerateDeck(c.Request.Context(), c.Param("sid"))
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, dto.NewSessionResponse(sess))
}

// ReviseSlide 整页修订
// @Summary 按指令修订单页
// @Tags Revision
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/slides/{id}/revise [post]
func (h *SessionHandler) ReviseSlide(c *gin.Context) {
	slideID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.BadRequest(c, "slide id must be an integer")
		return
	}

	var req dto.RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	sess, err := h.svc.ReviseSlide(c.Request.Context(), c.Param("sid"), slideID, req.Instruction)
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, dto.NewSessionResponse(sess))
}

// ReviseField 轻量修订
// @Summary 按指令改进单页标题与摘要
// @Tags Revision
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.FieldRevisionResponse]
// @Router /v1/sessions/{sid}/slides/{id}/revise-field [post]
func (h *SessionHandler) ReviseField(c *gin.Context) {
	slideID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.BadRequest(c, "slide id must be an integer")
		return
	}

	var req dto.RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	rev, err := h.svc.ReviseField(c.Request.Context(), c.Param("sid"), slideID, req.Instruction)
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, &dto.FieldRevisionResponse{Title: rev.Title, Content: rev.Content})
}

// ReviseDeckWide 全稿修订
// @Summary 按指令逐页修订全稿
// @Tags Revision
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/deck/revise [post]
func (h *SessionHandler) ReviseDeckWide(c *gin.Context) {
	var req dto.RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	sess, err := h.svc.ReviseDeckWide(c.Request.Context(), c.Param("sid"), req.Instruction)
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, dto.NewSessionResponse(sess))
}

// SetTheme 更换主题
// @Summary 更换会话主题
// @Tags Session
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.SessionResponse]
// @Router /v1/sessions/{sid}/theme [put]
func (h *SessionHandler) SetTheme(c *gin.Context) {
	var req dto.SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	sess, err := h.svc.SetTheme(c.Request.Context(), c.Param("sid"), req.Theme)
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, dto.NewSessionResponse(sess))
}
