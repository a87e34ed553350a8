// Package scanner walks a source tree and extracts the import declarations
// that link its files together.
//
// Scanning is sequential and has no cache: every call reads every file.
// Identifiers are paths relative to the root with forward slashes, which is
// also the form imports use (`package:manim_web/util/color.dart` names the
// file util/color.dart), so extracted dependencies and walked files share one
// namespace.
package scanner
