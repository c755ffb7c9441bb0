// Package sync resolves which assets of a song exist in its local folder.
//
// # The Marker File
//
// Resolution is gated on the sync marker file "<id>.usdb": a folder
// without the marker never completed a sync and reports no local files,
// regardless of what it contains. The download manager writes the marker
// as its final step, so a crashed or cancelled sync leaves the folder
// unstamped and it resolves as not synced.
//
// # Resolution
//
// With the marker present, the notes file is read (tolerating legacy
// encodings), parsed, and each media header is checked against the
// folder:
//
//	files, songTxt := sync.Resolve(song, settings.SongDir, logger)
//	if files.Txt {
//	    // songTxt is the parsed notes document
//	}
//	if files.Audio {
//	    // the file named by #MP3 exists in the folder
//	}
//
// Resolution never fails: an unreadable or unparsable notes file degrades
// to absent flags, with the cause logged.
package sync
