// Package git answers the version-control questions the build command asks
// about the host checkout before anything is mounted into the container:
//
//   - which repository root encloses a documentation file (mounted at /doc)
//   - which commit that checkout is on (logged for diagnostics)
//   - whether the user's global git config carries a committer identity
//     (needed when the inner tool pushes)
//
// All queries go through go-git so no git binary is required on the host.
package git
