package domain

import "errors"

var ErrUnknownMediaKind = errors.New("unknown media kind")

// MediaKind distinguishes the two track kinds a participant sends.
type MediaKind string

const (
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(s) {
	case MediaAudio, MediaVideo:
		return MediaKind(s), nil
	}
	return "", ErrUnknownMediaKind
}
