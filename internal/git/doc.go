// Package git provides Git operations via exec for the proact CLI.
//
// proact only reads from Git: it asks the local configuration for the
// author identity used in generated legal files. Commands shell out to the
// git executable, capture stdout, and translate failures into
// *output.ExitError values:
//
//	name, err := git.ConfigValue(ctx, projectDir, "user.name")
//	out, err := git.RunIn(ctx, projectDir, "version")
//
// A missing git binary, a non-zero exit and output that is not valid UTF-8
// are all reported as errors; callers decide whether that is fatal.
package git
