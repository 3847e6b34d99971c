package domain

import "errors"

var (
	ErrRoomNameEmpty    = errors.New("room name is empty")
	ErrRoomFull         = errors.New("room is full")
	ErrAlreadyInRoom    = errors.New("session already belongs to another room")
	ErrUnknownRecipient = errors.New("recipient session is not connected")
)
