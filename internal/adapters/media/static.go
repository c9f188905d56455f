// Package media provides local track sources. Real capture devices live
// outside this module; the session only references tracks handed to it.
package media

import (
	"fmt"

	"github.com/pion/webrtc/v4"
)

// StaticSource implements core.MediaSource with sample tracks that are
// attached to every peer link but fed by the caller. It owns nothing:
// stopping capture is the caller's job.
type StaticSource struct {
	audio *webrtc.TrackLocalStaticSample
	video *webrtc.TrackLocalStaticSample
}

func NewStaticSource(streamID string) (*StaticSource, error) {
	audio, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus},
		"audio", streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("audio track: %w", err)
	}
	video, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8},
		"video", streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("video track: %w", err)
	}
	return &StaticSource{audio: audio, video: video}, nil
}

func (s *StaticSource) AudioTrack() webrtc.TrackLocal { return s.audio }
func (s *StaticSource) VideoTrack() webrtc.TrackLocal { return s.video }

// NewVideoTrack builds a standalone video track of the same codec, e.g. a
// screen capture to swap in via the track manager.
func NewVideoTrack(id, streamID string) (*webrtc.TrackLocalStaticSample, error) {
	return webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8},
		id, streamID,
	)
}
