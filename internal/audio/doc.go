// Package audio connects catalog tracks to the audio files stored beside the
// tables.
//
// # Locating files
//
// Audio files live under a songs directory keyed by zero-padded track id:
//
//	loc := audio.NewLocator("data/songs")
//	loc.Path("2")      // data/songs/000/002.mp3
//	loc.Path("123456") // data/songs/123/456.mp3
//
// # Playback
//
// ProcessPlayer runs an external player (ffplay by default) and suspends it
// to pause. Pausing is only available on Unix systems.
//
// # ID3 Tagging
//
// Tagger writes catalog metadata into the ID3 tags of a track's file and
// ReadMetadata reads tags back:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(loc.Path(track.TrackID), track, nil)
//
// Album covers found under <songs>/covers/<album id>.jpg (or .png) are
// scaled by PrepareCover and embedded as the front cover.
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(audio.AlbumPlaylist(album, tracks, loc, false))
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
