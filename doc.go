// FILE: lixenwraith/gameini/doc.go

// Package gameini parses, edits and writes the INI dialect used by game server
// configuration files, keeping key order and value representation so that a
// parse followed by String reproduces the file in canonical form.
//
// Features:
//   - Typed values: 32-bit integers and floats, booleans that remember their
//     capitalization, strings and nested parenthesized structs
//   - Array forms: comma lists, repeated keys, indexed (Key[0]) and named
//     (Key[Name]) families, merged per key as the file is read
//   - Thread-safe Section and File with a context-aware Async accessor set
//   - Atomic save, struct decode/encode, TOML/YAML/JSON export
//   - Polling file watcher with debounce for hot reload
//   - Check reports skipped lines as warnings apart from fatal errors
//   - FindFile locates Game.ini inside a dedicated server install
//
// Quick Start:
//
//	f, err := gameini.ParseFile("GameUserSettings.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	players, _ := f.GetInt("ServerSettings", "MaxPlayers")
//	_ = f.SetFloat("ServerSettings", "XPMultiplier", 2.5)
//
//	if err := f.Save("GameUserSettings.ini"); err != nil {
//	    log.Fatal(err)
//	}
//
// Value classification:
// A bare value is a boolean if it equals true or false in any case, else a
// 32-bit integer, else a 32-bit float, else a string. Quoted values are always
// strings. A ';' outside quotes starts a comment running to the end of the
// line, so it also ends an unquoted value.
//
// Thread Safety:
// Plain methods lock a reader/writer mutex. Methods of Async take a context and
// are serialized by a separate single-owner lock; a context already cancelled
// when the lock is requested aborts the call with no effect. The two sets do
// not exclude each other: racing writes to one key resolve to one of them, and
// writes to different keys are both kept.
package gameini
