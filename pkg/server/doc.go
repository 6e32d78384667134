// Package server hosts the console over HTTP.
//
// Every page request is resolved against the shared route table by a
// request-scoped Navigator and rendered inside the document shell.
// Non-canonical paths are redirected to their canonical form and unknown
// paths render the not-found view with status 404.
//
// Browsers that load the client script open a live navigation socket at
// {base}/_nav. Each socket is a session with its own history and
// Navigator. Link clicks and back/forward are sent as frames and answered
// with the markup of the newly mounted view, so the page never reloads.
package server
