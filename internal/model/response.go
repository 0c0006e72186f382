package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type AuthLogoutResponse struct {
	Status string `json:"status"`
}

type UserResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type MessageResponse struct {
	Data Message `json:"data"`
}

type ChatResponse struct {
	Data Chat `json:"data"`
}

type ChatListResponse struct {
	Data []Chat `json:"data"`
}
