package main

// playerStatus builds the status object for one player group: the loaded
// track (or null) plus the standard control readings. A control the engine
// does not define reads as null rather than failing the whole object. The
// bool is false when the group is entirely unknown - no track and none of
// the standard controls - which the HTTP layer reports as 404.
func (s *RestServer) playerStatus(group string) (map[string]any, bool) {
	status := make(map[string]any, len(playerControls)+1)
	known := false

	if track := s.tracks.LoadedTrack(group); track != nil {
		status["track"] = trackMetadata(track)
		known = true
	} else {
		status["track"] = nil
	}

	for _, item := range playerControls {
		if value, ok := s.registry.Get(group, item); ok {
			status[item] = value
			known = true
		} else {
			status[item] = nil
		}
	}

	return status, known
}

// trackMetadata flattens a track into the wire object. String fields that
// were never tagged serialize as "", not null.
func trackMetadata(track *Track) map[string]any {
	return map[string]any{
		"artist":       track.Artist,
		"title":        track.Title,
		"album":        track.Album,
		"album_artist": track.AlbumArtist,
		"genre":        track.Genre,
		"composer":     track.Composer,
		"year":         track.Year,
		"comment":      track.Comment,
		"duration":     track.Duration,
		"bpm":          track.BPM,
		"key":          track.Key,
		"location":     track.Location,
		"file_type":    track.FileType,
	}
}

// allPlayersStatus builds the aggregate status: one entry per player with a
// loaded track, in the engine's enumeration order, plus the master mix
// controls.
func (s *RestServer) allPlayersStatus() map[string]any {
	players := []map[string]any{} // marshals as [], never null

	for _, group := range s.tracks.LoadedGroups() {
		playerJSON, _ := s.playerStatus(group)
		playerJSON["group"] = group
		players = append(players, playerJSON)
	}

	master := make(map[string]any, 4)
	for _, item := range []string{"volume", "balance", "headVolume", "headMix"} {
		if value, ok := s.registry.Get("[Master]", item); ok {
			master[item] = value
		} else {
			master[item] = nil
		}
	}

	return map[string]any{
		"players": players,
		"master":  master,
	}
}
