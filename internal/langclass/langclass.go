// Package langclass classifies a path's programming language from its name
// and content, populating the informational PathStats.Language facet the
// teacher's devs analysis also carries.
package langclass

import enry "github.com/src-d/enry/v2"

// Of returns the classified language for a path given its content, or the
// empty string if enry cannot classify it (binary content, unrecognised
// extension, etc).
func Of(path string, content []byte) string {
	return enry.GetLanguage(path, content)
}
