package cli

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/tsawler/pdf2html/config"
)

// optionKey maps a flag name to its config-file and environment key
func optionKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// layerFrom collects the options explicitly set in v. Flag defaults do not
// count as set.
func layerFrom(v *viper.Viper) config.Options {
	var o config.Options
	setBool(v, "debug", &o.Debug)
	setBool(v, "keep", &o.Keep)
	setString(v, "title", &o.Title)
	setString(v, "subtitle", &o.Subtitle)
	setFloat(v, "header_pos", &o.HeaderPos)
	setFloat(v, "footer_pos", &o.FooterPos)
	setInt(v, "skip_initial_pages", &o.SkipInitialPages)
	setBool(v, "skip_generator", &o.SkipGenerator)
	setFloat(v, "leading", &o.Leading)
	setFloat(v, "indent", &o.Indent)
	setFloat(v, "left_margin", &o.LeftMargin)
	setFloat(v, "horiz_leeway", &o.HorizLeeway)
	setFloat(v, "min_line_width", &o.MinLineWidth)
	setBool(v, "guess_min_line_width", &o.GuessMinLineWidth)
	setBool(v, "mirror_margins", &o.MirrorMargins)
	setBool(v, "join_hyphenated", &o.JoinHyphenated)
	setBool(v, "detect_headings", &o.DetectHeadings)
	setBool(v, "sort_by_position", &o.SortByPosition)
	setString(v, "encoding", &o.Encoding)
	return o
}

func setBool(v *viper.Viper, key string, dst **bool) {
	if v.IsSet(key) {
		*dst = config.Bool(v.GetBool(key))
	}
}

func setInt(v *viper.Viper, key string, dst **int) {
	if v.IsSet(key) {
		*dst = config.Int(v.GetInt(key))
	}
}

func setFloat(v *viper.Viper, key string, dst **float64) {
	if v.IsSet(key) {
		*dst = config.Float(v.GetFloat64(key))
	}
}

func setString(v *viper.Viper, key string, dst **string) {
	if v.IsSet(key) {
		*dst = config.String(v.GetString(key))
	}
}
