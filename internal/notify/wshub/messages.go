package wshub

import "github.com/BlendB5/OnTrackr-sub001/internal/domain"

const (
	TypeNotification      = "notification"
	TypePermissionRequest = "permission_request"
	TypePermission        = "permission"
	TypeWelcome           = "welcome"
)

type serverMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type clientMessage struct {
	Type  string `json:"type"`
	State string `json:"state,omitempty"`
}

type welcomePayload struct {
	Subscriber string            `json:"subscriber"`
	Permission domain.Permission `json:"permission"`
}
