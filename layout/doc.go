// Package layout reconstructs paragraphs from positioned text fragments.
//
// Input is a stream of fragments in reading order, each a run of text with
// a bounding box, page number and font. Output is a [model.Document] whose
// paragraphs hold the source fragments and their normalized text.
//
// # Conversion
//
// The [Engine] runs every stage in order:
//
//	engine := layout.NewEngine()
//	doc, warnings, err := engine.Convert(fragments, fonts)
//
// Raw extractor records can be converted directly:
//
//	doc, warnings, err := engine.ConvertRecords(records, fontSpecs)
//
// # Stages
//
//   - [FontIndex] - parses raw records into fragments and interns fonts
//   - [Calibrator] - derives leading, indent, left margin and leeway from
//     binned histograms ([Histogram])
//   - [HeaderFooterFilter] - drops text outside the header and footer cutoffs
//   - [Segmenter] - a two-state machine that opens and closes paragraphs
//   - [TextNormalizer] - joins a paragraph's fragments into one text run
//   - [HeadingClassifier] - marks short large-font paragraphs as headings
//
// # Configuration
//
// Any calibrated threshold can be pinned:
//
//	config := layout.DefaultConfig()
//	config.Overrides.Indent = layout.Float(12)
//	config.HeaderPos = 60
//	engine := layout.NewEngineWithConfig(config)
//
// # Warnings
//
// Dropped records ([MalformedInputError]) and defaulted thresholds
// ([DegenerateCalibrationWarning]) are returned as warnings. Contradictory
// settings fail with [ConfigurationConflictError] before any work is done.
package layout
