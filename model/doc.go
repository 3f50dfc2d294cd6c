// Package model provides the intermediate representation shared by the
// pdf2html packages.
//
// # Input
//
// The extractor reports pages of positioned text. Each record arrives as a
// [RawText] with unparsed geometry; the layout package normalizes records
// into [Fragment] values with top, bottom, left and right edges in points
// and a per-run [FontID].
//
// # Thresholds
//
// [Thresholds] holds the scalars that drive paragraph segmentation: line
// leading, first-line indent, left margin, horizontal leeway and the
// header/footer cutoffs. [Disabled] (-1) turns a cutoff off; other negative
// footer values are offsets from the page bottom:
//
//	t := model.Thresholds{HeaderPos: 72, FooterPos: -60}
//	cutoff, ok := t.FooterCutoff(792) // 732, true
//
// # Output
//
// A conversion produces a [Document]: ordered [Paragraph] values plus
// [Metadata] (title, subtitle, declared encoding, generator) for the
// serializer.
//
// # Geometry
//
// [BBox] uses the extractor's coordinate system: the origin is the top-left
// corner of the page and Y increases downward.
package model
