package cmd

import (
	"scpod/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the feed server",
	Long:  `Start the HTTP server that converts SoundCloud tracks, likes, reposts and playlists into podcast RSS feeds.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
