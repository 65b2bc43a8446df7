package api

import (
	"errors"
	"net/http"
	"strings"

	"finance-analysis/config"
	"finance-analysis/database"
	"finance-analysis/logger"
	"finance-analysis/middleware"
	"finance-analysis/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"notblank,max=50" example:"analyst"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"password123"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"notblank" example:"analyst"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建调用方账号并直接签发 token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} AuthResponse "注册成功"
// @Failure 400 {object} ErrorBody "请求参数错误"
// @Failure 409 {object} ErrorBody "用户名已存在"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}
	username := strings.TrimSpace(req.Username)

	// 检查用户名是否已存在
	var existing models.User
	err := database.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		Error(c, http.StatusConflict, "Username is already registered")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Log.WithError(err).Error("查询用户失败")
		InternalError(c, SafeErrorMessage(err, "Database error"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "Failed to hash password")
		return
	}

	user := models.User{Username: username, Password: string(hashed)}
	if err := database.DB.Create(&user).Error; err != nil {
		logger.Log.WithError(err).Error("创建用户失败")
		InternalError(c, SafeErrorMessage(err, "Database error"))
		return
	}
	logger.Log.WithField("username", username).Info("新用户注册")

	h.issue(c, user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验用户名密码并签发 token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} AuthResponse "登录成功"
// @Failure 400 {object} ErrorBody "请求参数错误"
// @Failure 401 {object} ErrorBody "用户名或密码错误"
// @Failure 429 {object} ErrorBody "登录过于频繁"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindError(c, err)
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		Unauthorized(c, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "Invalid username or password")
		return
	}

	h.issue(c, user)
}

func (h *AuthHandler) issue(c *gin.Context, user models.User) {
	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "Failed to issue token")
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Me 当前用户信息
// @Summary 当前用户
// @Description 返回 token 对应的用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "用户信息"
// @Failure 401 {object} ErrorBody "未授权"
// @Failure 404 {object} ErrorBody "用户不存在"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, middleware.GetCurrentUserID(c)).Error; err != nil {
		NotFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
