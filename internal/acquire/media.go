package acquire

import (
	"context"
	"path/filepath"
	"strings"

	"tubeclip/internal/fileutil"
	"tubeclip/internal/history"
	"tubeclip/internal/logging"
	"tubeclip/internal/mediapath"
	"tubeclip/internal/services"
	"tubeclip/internal/textutil"
	"tubeclip/internal/youtube"
)

// Music part names, written as <part>.wav inside the song directory.
const (
	PartFullSong     = "full_song"
	PartVocals       = "vocals"
	PartInstrumental = "instrumental"
)

// MediaResult reports where a category download landed.
type MediaResult struct {
	Layout mediapath.Layout  `json:"layout"`
	Info   youtube.VideoInfo `json:"info"`
	Audio  string            `json:"audio,omitempty"`
	Video  string            `json:"video,omitempty"`
}

// MusicResult maps each requested part to its file.
type MusicResult struct {
	Layout mediapath.Layout  `json:"layout"`
	Info   youtube.VideoInfo `json:"info"`
	Parts  map[string]string `json:"parts"`
}

// Media downloads audio and/or video for url into the category's directory.
func (s *Session) Media(ctx context.Context, url string, category mediapath.Category, audio, video bool) (MediaResult, error) {
	const stage = "download"
	ctx = s.context(ctx, stage)
	if !audio && !video {
		return MediaResult{}, services.Wrap(services.ErrValidation, stage, "media", "nothing requested; pass audio and/or video", nil)
	}
	layout, err := s.prepareLayout(stage, category)
	if err != nil {
		return MediaResult{}, err
	}
	if video && !layout.HasVideo() {
		return MediaResult{}, services.Wrap(services.ErrValidation, stage, "media",
			"category "+string(category.Kind)+" does not store video", nil)
	}
	info, err := s.info(ctx, stage, url)
	if err != nil {
		return MediaResult{}, err
	}

	result := MediaResult{Layout: layout, Info: info}
	if audio {
		name := strings.TrimSuffix(mediapath.AudioFile, filepath.Ext(mediapath.AudioFile))
		result.Audio, err = s.downloadAudio(ctx, stage, url, info, category, layout.SubDir, name)
		if err != nil {
			return result, err
		}
	}
	if video {
		name := strings.TrimSuffix(mediapath.VideoFile, filepath.Ext(mediapath.VideoFile))
		result.Video, err = s.track(ctx, s.entry(url, info, category, history.KindVideo, layout.Video), func() (string, error) {
			path, err := s.deps.Downloader.DownloadVideo(ctx, url, layout.SubDir, name)
			if err != nil {
				return "", classifyDownloadError(stage, "video", err)
			}
			return path, nil
		})
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

// Music downloads the song audio once and stores it under each requested
// part name.
func (s *Session) Music(ctx context.Context, url, song string, full, vocals, instrumental bool) (MusicResult, error) {
	const stage = "music"
	ctx = s.context(ctx, stage)

	var parts []string
	if full {
		parts = append(parts, PartFullSong)
	}
	if vocals {
		parts = append(parts, PartVocals)
	}
	if instrumental {
		parts = append(parts, PartInstrumental)
	}
	if len(parts) == 0 {
		return MusicResult{}, services.Wrap(services.ErrValidation, stage, "music", "no parts requested", nil)
	}

	category := mediapath.Music(song)
	layout, err := s.prepareLayout(stage, category)
	if err != nil {
		return MusicResult{}, err
	}
	info, err := s.info(ctx, stage, url)
	if err != nil {
		return MusicResult{}, err
	}

	result := MusicResult{Layout: layout, Info: info, Parts: make(map[string]string, len(parts))}
	first, err := s.downloadAudio(ctx, stage, url, info, category, layout.SubDir, parts[0])
	if err != nil {
		return result, err
	}
	result.Parts[parts[0]] = first
	for _, part := range parts[1:] {
		dst := filepath.Join(layout.SubDir, part+".wav")
		path, err := s.track(ctx, s.entry(url, info, category, history.KindAudio, dst), func() (string, error) {
			if err := fileutil.CopyFile(first, dst); err != nil {
				return "", services.Wrap(services.ErrTransient, stage, "copy", part, err)
			}
			return dst, nil
		})
		if err != nil {
			return result, err
		}
		result.Parts[part] = path
	}
	return result, nil
}

// Speech downloads a speech-dataset sample as <fileName>.wav in the
// speaker's directory.
func (s *Session) Speech(ctx context.Context, url, speaker, fileName string) (MediaResult, error) {
	const stage = "speech"
	ctx = s.context(ctx, stage)

	name := textutil.SanitizeSegment(strings.TrimSuffix(strings.TrimSpace(fileName), ".wav"))
	if name == "" {
		return MediaResult{}, services.Wrap(services.ErrValidation, stage, "speech", "file name is required", nil)
	}
	category := mediapath.Speech(speaker)
	layout, err := s.prepareLayout(stage, category)
	if err != nil {
		return MediaResult{}, err
	}
	info, err := s.info(ctx, stage, url)
	if err != nil {
		return MediaResult{}, err
	}
	result := MediaResult{Layout: layout, Info: info}
	result.Audio, err = s.downloadAudio(ctx, stage, url, info, category, layout.SubDir, name)
	return result, err
}

func (s *Session) prepareLayout(stage string, category mediapath.Category) (mediapath.Layout, error) {
	layout, err := mediapath.Resolve(s.cfg.Paths.DatasetRoot, s.cfg.Templates(), category)
	if err != nil {
		return mediapath.Layout{}, services.Wrap(services.ErrValidation, stage, "layout", "", err)
	}
	if err := mediapath.EnsureDir(layout); err != nil {
		return mediapath.Layout{}, services.Wrap(services.ErrConfiguration, stage, "layout", "", err)
	}
	return layout, nil
}

func (s *Session) info(ctx context.Context, stage, url string) (youtube.VideoInfo, error) {
	if s.deps.Downloader == nil {
		return youtube.VideoInfo{}, services.Wrap(services.ErrConfiguration, stage, "info", "no downloader configured", nil)
	}
	info, err := s.deps.Downloader.Info(ctx, url)
	if err != nil {
		return youtube.VideoInfo{}, classifyDownloadError(stage, "info", err)
	}
	logging.WithContext(ctx, s.logger).Info("video resolved",
		logging.String("video_id", info.ID),
		logging.String("title", info.Title),
		logging.Duration("duration", info.Duration),
	)
	return info, nil
}

func (s *Session) downloadAudio(ctx context.Context, stage, url string, info youtube.VideoInfo, category mediapath.Category, dir, name string) (string, error) {
	target := filepath.Join(dir, name+".wav")
	return s.track(ctx, s.entry(url, info, category, history.KindAudio, target), func() (string, error) {
		path, err := s.deps.Downloader.DownloadAudio(ctx, url, dir, name)
		if err != nil {
			return "", classifyDownloadError(stage, "audio", err)
		}
		return path, nil
	})
}

func (s *Session) entry(url string, info youtube.VideoInfo, category mediapath.Category, kind history.Kind, output string) history.Entry {
	return history.Entry{
		SourceURL:  url,
		VideoID:    info.ID,
		Title:      info.Title,
		Category:   category.Key(),
		Kind:       kind,
		OutputPath: output,
	}
}
