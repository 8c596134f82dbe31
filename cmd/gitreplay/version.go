package main

// BinaryVersion identifies this build of gitreplay.
const BinaryVersion = "dev"

// BinaryGitHash is the Git commit this binary was built from, set via
// -ldflags by release builds; "<unknown>" otherwise.
var BinaryGitHash = "<unknown>"
