// Package app wires the catalog collaborators together for the command line
// and terminal front-ends.
//
// New builds, from one Settings value, the catalog store, the history
// manager that snapshots the store's tables, the search index the store
// rebuilds after every mutation, the credential session that gates financial
// data, and the audio services. Front-ends call the App methods or reach the
// collaborators through its fields.
package app
