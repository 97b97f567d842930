package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/handiism/tocadiscos/internal/audio"
)

func (c *cli) newPlayCommand() *cobra.Command {
	var album string
	cmd := &cobra.Command{
		Use:     "play <track title>",
		Short:   "Play a track's audio file",
		Long:    "Play a track's audio file. While playing, enter p to pause or resume, s to stop.",
		GroupID: "catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			track, err := c.app.PlayTrack(cmd.Context(), args[0], album)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Playing %q by %s (p: pause/resume, s: stop)\n", track.Title, track.ArtistName)
			return c.controlPlayback(cmd, out)
		},
	}
	cmd.Flags().StringVar(&album, "album", "", "only match tracks of this album")
	return cmd
}

// controlPlayback relays stdin commands to the player until playback ends
// or the operator stops it.
func (c *cli) controlPlayback(cmd *cobra.Command, out io.Writer) error {
	player := c.app.Player
	defer player.Stop()

	commands := make(chan string)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			commands <- strings.ToLower(strings.TrimSpace(scanner.Text()))
		}
		close(commands)
	}()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	paused := false
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case line, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			switch line {
			case "p":
				var err error
				if paused {
					err = player.Resume()
				} else {
					err = player.Pause()
				}
				if err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
					continue
				}
				paused = !paused
			case "s", "q":
				return nil
			}
		case <-ticker.C:
			if !paused && !player.IsPlaying() {
				return nil
			}
		}
	}
}

func (c *cli) newAudioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "audio",
		Short:   "Tag audio files and write playlists",
		GroupID: "management",
	}

	tag := &cobra.Command{
		Use:   "tag <album id>",
		Short: "Write catalog metadata into an album's audio files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("album id %q is not a number", args[0])
			}
			n, err := c.app.TagAlbum(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %d file(s)\n", n)
			return nil
		},
	}

	playlist := &cobra.Command{
		Use:   "playlist <album id>",
		Short: "Write a playlist of an album's audio files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("album id %q is not a number", args[0])
			}
			path, err := c.app.WritePlaylist(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	info := &cobra.Command{
		Use:   "info <track id>",
		Short: "Show the tags stored in a track's audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.app.Locator.Path(args[0])
			meta, err := audio.ReadMetadata(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:   %s\n", path)
			fmt.Fprintf(out, "Format: %s\n", meta.Format)
			fmt.Fprintf(out, "Title:  %s\n", meta.Title)
			fmt.Fprintf(out, "Artist: %s\n", meta.Artist)
			fmt.Fprintf(out, "Album:  %s\n", meta.Album)
			fmt.Fprintf(out, "Genre:  %s\n", meta.Genre)
			if meta.Year > 0 {
				fmt.Fprintf(out, "Year:   %d\n", meta.Year)
			}
			if meta.Track > 0 {
				fmt.Fprintf(out, "Track:  %d\n", meta.Track)
			}
			if meta.CoverMIME != "" {
				fmt.Fprintf(out, "Cover:  %s\n", meta.CoverMIME)
			}
			return nil
		},
	}

	cmd.AddCommand(tag, playlist, info)
	return cmd
}
