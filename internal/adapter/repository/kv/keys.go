// Package kv implements the repository ports on top of a KeyValueStore.
// Every state slice is serialized to JSON and written whole under one key,
// matching how the fan site kept its state in browser localStorage. The key
// names are kept verbatim so an imported state dump loads unchanged.
package kv

const (
	keySongs        = "3h_songs_v4"
	keySongsVersion = "3h_songs_version"
	keyPlaylists    = "3h_playlists_v1"
	keyQueue        = "3h_queue_v1"
	keyHistory      = "3h_history_v1"
	keyVolume       = "3h_volume_v1"
	keyMuted        = "3h_muted_v1"
	keySetlistMode  = "3h_setlist_mode_v1"
	keySetlistNotes = "3h_setlist_notes_v1"
)
