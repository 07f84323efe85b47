package userservice

// User модель пользователя из UserService.
// Provider = true означает, что пользователь принимает записи.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Provider  bool   `json:"provider"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
