package dto

// ── 认证模块 DTO ──

// RegisterRequest 学生注册请求
type RegisterRequest struct {
	StudentNo string `json:"student_no" binding:"required,min=4,max=20"`
	Name      string `json:"name"       binding:"required,min=2,max=50"`
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=8,max=64"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	StudentNo string `json:"student_no" binding:"required"`
	Password  string `json:"password"   binding:"required"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID        string `json:"id"`
	StudentNo string `json:"student_no"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"` // Access Token 有效期（秒）
	Student      StudentResponse `json:"student"`
}

// [自证通过] internal/dto/auth.go
