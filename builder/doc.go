// Package builder composes independently authored plugins into one
// validated, ordered workload installed on a shared world.
//
// A Builder is constructed once, fed plugin, system, and unique
// registrations (plugins recursively registering more plugins through the
// same Builder), and then consumed by Finish, which runs deferred
// validation and installs the assembled workload.
//
// Registration-time misuse (duplicate plugin, plugin cycle, missing plugin
// dependency, stage-name misuse) panics with one of the typed error values
// in this package, modeling a fail-fast startup step. A host that would
// rather report than abort can recover the panic and inspect the value.
// Unmet unique dependencies are only detectable once every plugin has run,
// so Finish returns those as an ordinary aggregate error.
package builder
