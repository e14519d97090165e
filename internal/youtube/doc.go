// Package youtube downloads media streams and auto-generated captions.
//
// Stream metadata and audio/video downloads go through the
// github.com/kkdai/youtube/v2 client. Captions are fetched with yt-dlp, which
// renders YouTube's timed text as SRT so the caption parser can consume it
// directly. URL helpers normalize the many link shapes users paste.
package youtube
