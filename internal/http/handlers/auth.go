package handlers

import (
	"github.com/yanhua-ledger/internal/http/response"
	"github.com/yanhua-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	result, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// Me 当前用户信息
func (h *Handler) Me(c *gin.Context) {
	claims := authClaims(c)
	if claims == nil {
		response.Unauthorized(c, service.ErrInvalidToken.Error())
		return
	}
	response.Success(c, gin.H{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// CreateUser 创建账号（仅老板）
func (h *Handler) CreateUser(c *gin.Context) {
	if !isOwner(c) {
		respondServiceError(c, service.ErrForbidden)
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	user, err := h.AuthService.CreateUser(req.Username, req.Password, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// ListUsers 用户列表（仅老板）
func (h *Handler) ListUsers(c *gin.Context) {
	if !isOwner(c) {
		respondServiceError(c, service.ErrForbidden)
		return
	}
	users, err := h.AuthService.ListUsers()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, users)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 修改口令
func (h *Handler) ChangePassword(c *gin.Context) {
	claims := authClaims(c)
	if claims == nil {
		response.Unauthorized(c, service.ErrInvalidToken.Error())
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}
	if err := h.AuthService.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "密码已更新", nil)
}
