package model

import "time"

// Session - refresh-сессия. RefreshToken хранится хэшем.
type Session struct {
	ID           string
	UserID       int
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthData - токены, выданные при регистрации, входе или обновлении
type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
