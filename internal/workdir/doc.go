// Package workdir resolves and manages the directory where SYNSPEC exchange
// files are staged.
//
// Four strategies are supported: the process working directory, an explicitly
// specified path, a freshly created temporary directory, and a per-user data
// directory. An optional flock-based lock prevents two sessions from sharing
// the same directory, since the exchange files carry fixed names.
package workdir
