// Package textutil provides filename sanitization and display labels.
//
// Path segments built from user input (episode numbers, speakers, song
// names) go through SanitizeSegment so they can never escape the dataset
// root. DisplayLabel turns identifiers such as "speech_dataset" into
// title-cased text for tables.
package textutil
