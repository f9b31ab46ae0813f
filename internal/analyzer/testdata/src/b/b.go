package b

var fooCount = 1 // want "f.oCount. may be insensitive. Consider alternatives: barCount"

// The master key stays, this config only bans one term.
var masterKey = 2
