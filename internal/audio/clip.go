package audio

// Clip is one synthesized audio payload. It is written to a transient file
// before playback and removed once the session that produced it is done,
// unless the clip cache has taken ownership of the file.
type Clip struct {
	Data   []byte // Raw audio bytes as returned by the provider
	Format string // Container format, e.g. "mp3" or "wav"

	// SpeedApplied is true when the provider already rendered the audio at
	// the requested speed. Otherwise playback applies the factor.
	SpeedApplied bool

	// Path is the transient file backing this clip, set once stored.
	Path string
}
