package fal

import (
	"encoding/json"
	"fmt"

	"github.com/dskvich/video-bot/pkg/domain"
)

// videoResult is the documented response: {"video": {"url": ...}}.
type videoResult struct {
	Video *videoFile `json:"video"`
}

// wrappedVideoResult is the undocumented variant: {"data": {"video": {"url": ...}}}.
type wrappedVideoResult struct {
	Data *videoResult `json:"data"`
}

type videoFile struct {
	URL *string `json:"url"`
}

func (f *videoFile) url() (string, bool) {
	if f == nil || f.URL == nil || *f.URL == "" {
		return "", false
	}
	return *f.URL, true
}

// ExtractVideoURL decodes the top-level shape first and the "data" wrapper
// second. A field with the wrong JSON type or an empty url counts as absent.
func ExtractVideoURL(body []byte) (string, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnexpectedResponse, err)
	}

	var direct videoResult
	if decodeField(top, "video", &direct.Video) {
		if u, ok := direct.Video.url(); ok {
			return u, nil
		}
	}

	var wrapped wrappedVideoResult
	if decodeField(top, "data", &wrapped.Data) && wrapped.Data != nil {
		if u, ok := wrapped.Data.Video.url(); ok {
			return u, nil
		}
	}

	return "", domain.ErrUnexpectedResponse
}

func decodeField(fields map[string]json.RawMessage, name string, dst any) bool {
	raw, ok := fields[name]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
