// Package config resolves conversion options from layered sources.
//
// Each source produces an [Options] value whose unset fields are nil.
// Sources are combined with [Options.Merge], later layers winning, and
// [Options.Resolve] fills the remaining gaps with defaults:
//
//	opts := config.Defaults().
//		Merge(global).
//		Merge(rcSections).
//		Merge(flags)
//	resolved := opts.Resolve()
//
// # Per-directory rc files
//
// A [RCFileName] file next to an input PDF maps shell glob patterns to
// option blocks. Every section whose pattern matches the input file name is
// applied in file order, so later sections refine earlier ones:
//
//	"*":
//	  skip_generator: true
//	"scan-*.pdf":
//	  skip_initial_pages: 2
//	  footer_pos: -40
//
// [RCCache] keeps parsed rc files in memory for batch runs.
package config
