package domain

type Mode string

const (
	ModeTextToVideo  Mode = "text-to-video"
	ModeImageToVideo Mode = "image-to-video"
)

func (m Mode) Valid() bool {
	return m == ModeTextToVideo || m == ModeImageToVideo
}

func (m Mode) DisplayName() string {
	switch m {
	case ModeTextToVideo:
		return "Text-to-Video"
	case ModeImageToVideo:
		return "Image-to-Video"
	default:
		return string(m)
	}
}
