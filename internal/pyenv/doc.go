// Package pyenv locates the local Python interpreter and probes its
// environment. It resolves the interpreter binary from PATH (honoring the
// DPO_PYTHON override), queries its version, and checks whether individual
// libraries are importable. All probes shell out to the interpreter itself so
// the answer reflects the environment the application host will actually run in.
package pyenv
