// Package setting provides key/value application settings for HomeHub Core.
//
// Settings are identified by key and written only through Upsert, a single
// INSERT ... ON CONFLICT statement. Repeating the same Upsert always leaves
// the same row state, whether or not the key existed beforehand.
package setting
