package service

import "context"

// PushMessage is one push notification addressed to a vendor's device.
type PushMessage struct {
	Token string // FCM registration token stored on the account
	Title string
	Body  string
	Data  map[string]string
}

// NotificationService delivers push notifications to vendor devices.
type NotificationService interface {
	Send(ctx context.Context, msg *PushMessage) error
}
