package a

var blacklist = 1 // want "b.acklist. may be insensitive. Consider alternatives: banlist, blocklist, denylist"

func useSlave() {} // want "useS.ave. may be insensitive. Consider alternatives: useSecondary, useReplica"

const greeting = "whitelist" // want "w.itelist"

/* master copy */ // want "m.ster. may be insensitive"
