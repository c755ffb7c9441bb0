// Package audio writes ID3 tags to downloaded audio files.
//
// Use the Tagger to tag a file with the values from its notes file
// headers:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(mp3Path, &songTxt.Headers, artworkBytes)
//
// The tagger supports:
//   - Artist, Title
//   - Album (from the edition), Genre, Year, Language
//   - Cover Art (embedded in the file)
package audio
