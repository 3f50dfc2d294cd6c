// Package text provides the string-level helpers used when paragraph text is
// assembled from positioned fragments.
//
// # Ligatures
//
// PDF fonts often encode "fi", "fl" and friends as single presentation-form
// code points. [FoldLigatures] maps the U+FB00 block back to plain letters
// using a Unicode compatibility normalization restricted to that block:
//
//	text.FoldLigatures("ﬁnal ﬂow") // "final flow"
//
// # Line joins
//
// Inside a paragraph, visual line breaks are discarded:
//
//   - [FlattenBreaks] - turns stray line breaks inside a fragment into spaces
//   - [Dehyphenate] - rejoins a word hyphenated across two lines
//   - [StartsWithSpace], [EndsWithSpace] - boundary checks used to avoid
//     doubling an existing space
package text
