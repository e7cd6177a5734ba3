package fal

import "github.com/dskvich/video-bot/pkg/domain"

const (
	LongCatTextToVideo720p  = "fal-ai/longcat-video/text-to-video/720p"
	LongCatImageToVideo720p = "fal-ai/longcat-video/image-to-video/720p"
)

var ModeToEndpoint = map[domain.Mode]string{
	domain.ModeTextToVideo:  LongCatTextToVideo720p,
	domain.ModeImageToVideo: LongCatImageToVideo720p,
}

const uploadContentType = "image/png"
