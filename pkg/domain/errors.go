package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyPrompt        = errors.New("please enter a prompt to guide the video generation")
	ErrImageRequired      = errors.New("please upload an image to animate")
	ErrUnexpectedResponse = errors.New("unexpected response format: missing video URL")
	ErrNotConfigured      = errors.New("backend is not configured")
	ErrUnsupportedMode    = errors.New("generation mode is not supported by backend")
)
