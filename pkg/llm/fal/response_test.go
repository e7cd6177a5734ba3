package fal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/video-bot/pkg/domain"
)

func TestExtractVideoURL(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "top level video",
			body: `{"video":{"url":"https://v3.fal.media/files/a.mp4","content_type":"video/mp4"},"seed":42}`,
			want: "https://v3.fal.media/files/a.mp4",
		},
		{
			name: "nested under data",
			body: `{"data":{"video":{"url":"https://v3.fal.media/files/b.mp4"}},"requestId":"r-1"}`,
			want: "https://v3.fal.media/files/b.mp4",
		},
		{
			name: "top level wins over data",
			body: `{"video":{"url":"https://top/x.mp4"},"data":{"video":{"url":"https://data/x.mp4"}}}`,
			want: "https://top/x.mp4",
		},
		{
			name: "video without url falls back to data",
			body: `{"video":{"file_name":"x.mp4"},"data":{"video":{"url":"https://data/y.mp4"}}}`,
			want: "https://data/y.mp4",
		},
		{
			name: "video is not an object",
			body: `{"video":"https://top/x.mp4","data":{"video":{"url":"https://data/z.mp4"}}}`,
			want: "https://data/z.mp4",
		},
		{
			name: "empty url falls back to data",
			body: `{"video":{"url":""},"data":{"video":{"url":"https://data/e.mp4"}}}`,
			want: "https://data/e.mp4",
		},
		{name: "empty url everywhere", body: `{"video":{"url":""},"data":{"video":{"url":""}}}`, wantErr: true},
		{name: "neither shape", body: `{"images":[{"url":"https://x/y.png"}]}`, wantErr: true},
		{name: "data without video", body: `{"data":{"url":"https://x/y.mp4"}}`, wantErr: true},
		{name: "data not an object", body: `{"data":[1,2,3]}`, wantErr: true},
		{name: "url not a string", body: `{"video":{"url":5}}`, wantErr: true},
		{name: "null video", body: `{"video":null}`, wantErr: true},
		{name: "not json", body: `<html>bad gateway</html>`, wantErr: true},
		{name: "array body", body: `[{"video":{"url":"https://x/y.mp4"}}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoURL([]byte(tt.body))
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnexpectedResponse)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
