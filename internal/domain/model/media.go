package model

import (
	"strings"

	"telegram-language-bot/internal/domain"
)

// FileType is the closed set of media kinds a stored file reference may carry.
type FileType string

const (
	FileTypePhoto    FileType = "photo"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
	FileTypeDocument FileType = "document"
	FileTypeMusic    FileType = "music"
	FileTypeText     FileType = "text"
)

var fileTypes = map[FileType]struct{}{
	FileTypePhoto: {}, FileTypeVideo: {}, FileTypeAudio: {},
	FileTypeDocument: {}, FileTypeMusic: {}, FileTypeText: {},
}

func (f FileType) Valid() bool {
	_, ok := fileTypes[f]
	return ok
}

// TrackType is the closed set of premium exam-preparation tracks.
type TrackType string

const (
	TrackTopik1 TrackType = "topik1"
	TrackTopik2 TrackType = "topik2"
	TrackJLPT   TrackType = "jlpt"
)

// TrackTypes lists tracks in display order.
var TrackTypes = []TrackType{TrackTopik1, TrackTopik2, TrackJLPT}

func (t TrackType) Valid() bool {
	for _, v := range TrackTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ParseTrackType(s string) (TrackType, error) {
	t := TrackType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", domain.ErrInvalidArgument
	}
	return t, nil
}
