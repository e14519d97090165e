// Package highlights runs the laughter-clip workflow: fetch captions, parse
// them, locate marker cues, probe the source duration, compute clip windows,
// and hand the windows to a clip writer.
//
// Only the collaborators touch the network or spawn processes; the core steps
// come from the captions and clips packages and are pure.
package highlights
