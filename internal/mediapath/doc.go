// Package mediapath maps content categories onto the dataset directory
// taxonomy.
//
// A Category is a tagged union: its Kind selects which key fields matter
// (episode, subject and name, speaker, song) and which files the resulting
// Layout carries. Resolve is pure; EnsureDir is the only function that
// touches the filesystem.
package mediapath
