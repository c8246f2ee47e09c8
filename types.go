package main

// Track holds the metadata for a track loaded into a player deck.
// String fields default to "" when the source file carries no tag, which is
// also how they serialize; clients should not expect null for missing tags.
type Track struct {
	Artist      string  `json:"artist" yaml:"artist"`
	Title       string  `json:"title" yaml:"title"`
	Album       string  `json:"album" yaml:"album"`
	AlbumArtist string  `json:"album_artist" yaml:"album_artist"`
	Genre       string  `json:"genre" yaml:"genre"`
	Composer    string  `json:"composer" yaml:"composer"`
	Year        string  `json:"year" yaml:"year"`
	Comment     string  `json:"comment" yaml:"comment"`
	Duration    float64 `json:"duration" yaml:"duration"` // seconds
	BPM         float64 `json:"bpm" yaml:"bpm"`
	Key         string  `json:"key" yaml:"key"` // musical key, e.g. "8A"
	Location    string  `json:"location" yaml:"location"`
	FileType    string  `json:"file_type" yaml:"file_type"`
}

// httpRequest is the parsed form of the single byte chunk read per connection.
type httpRequest struct {
	method  string
	path    string
	headers map[string]string // keys lower-cased
	body    []byte
}

// httpResponse is assembled by a handler and flattened onto the wire by
// buildHTTPResponse. Zero statusCode means 200 OK.
type httpResponse struct {
	statusCode int
	statusText string
	headers    map[string]string
	body       []byte
}
